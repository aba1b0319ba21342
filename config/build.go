// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/build.go
// Summary: Turns a validated layout into a canvas and the commands to run.

package config

import (
	"github.com/pkg/errors"

	"github.com/framegrace/texelout/texel"
)

// Job is a command whose output feeds one pane.
type Job struct {
	PaneID  int
	Name    string
	Command string
	Dir     string
}

// Build validates l, creates its canvas by replaying the splits in order and
// returns a Job for every pane that declares a command. Extra options are
// passed to texel.NewCanvas after the layout's own.
func Build(l *Layout, opts ...texel.Option) (*texel.Canvas, []Job, error) {
	if errs := Validate(l); len(errs) > 0 {
		return nil, nil, errs
	}

	var canvasOpts []texel.Option
	if l.Color != "" {
		c, _ := texel.ParseColor(l.Color)
		canvasOpts = append(canvasOpts, texel.WithColor(c))
	}
	if l.Root.Name != "" {
		canvasOpts = append(canvasOpts, texel.WithRootName(l.Root.Name))
	}
	if l.Root.Color != "" {
		c, _ := texel.ParseColor(l.Root.Color)
		canvasOpts = append(canvasOpts, texel.WithRootColor(c))
	}
	canvas, err := texel.NewCanvas(l.Name, append(canvasOpts, opts...)...)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "build layout %q", l.Name)
	}

	var jobs []Job
	addJob := func(id int, p PaneSpec) {
		if p.Command != "" {
			jobs = append(jobs, Job{PaneID: id, Name: p.Name, Command: p.Command, Dir: p.Dir})
		}
	}
	addJob(0, l.Root)

	for i, p := range l.Panes {
		split := canvas.SplitLeft
		if p.Split == SplitDown {
			split = canvas.SplitDown
		}
		id, err := split(p.Parent)
		if err != nil {
			canvas.Close()
			return nil, nil, errors.Wrapf(err, "panes[%d]", i)
		}
		if p.Name != "" {
			if err := canvas.SetPaneName(id, p.Name); err != nil {
				canvas.Close()
				return nil, nil, err
			}
		}
		if p.Color != "" {
			c, _ := texel.ParseColor(p.Color)
			if err := canvas.SetPaneColor(id, c); err != nil {
				canvas.Close()
				return nil, nil, err
			}
		}
		addJob(id, p)
	}

	if err := canvas.Render(); err != nil {
		canvas.Close()
		return nil, nil, err
	}
	return canvas, jobs, nil
}
