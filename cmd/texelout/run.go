// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelout/run.go
// Summary: run subcommand: build a layout and stream its commands.

package main

import (
	"github.com/spf13/cobra"

	"github.com/framegrace/texelout/config"
	"github.com/framegrace/texelout/internal/runner"
	"github.com/framegrace/texelout/texel"
)

var runExitWhenDone bool

var runCmd = &cobra.Command{
	Use:   "run [LAYOUT]",
	Short: "Build a layout and stream each pane's command into it",
	Long: `Build the panes declared in LAYOUT (.toml, .yaml or .yml) and run every
pane command under a pseudo terminal. Without LAYOUT the file
<config dir>/texelout/layout.toml is used.

Examples:
  texelout run examples/layout.toml
  texelout run --driver tcell --record /tmp/history.db build.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runExitWhenDone, "exit-when-done", false, "Exit once every pane command has ended")
}

func runRun(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		p, err := config.DefaultLayoutPath()
		if err != nil {
			return err
		}
		path = p
	}
	layout, err := config.ParseFile(path)
	if err != nil {
		return err
	}

	var jobs []config.Job
	s, ctx, err := startSession(cmd.Context(), func(opts ...texel.Option) (*texel.Canvas, error) {
		canvas, built, err := config.Build(layout, opts...)
		jobs = built
		return canvas, err
	})
	if err != nil {
		return err
	}
	defer s.finish()

	if err := runner.New(s.bridge).Run(ctx, jobs); err != nil {
		return err
	}
	if !runExitWhenDone {
		<-ctx.Done()
	}
	return nil
}
