// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/layout.go
// Summary: Layout file schema, decoding and validation.
// Usage: ParseFile a .toml/.yaml layout, then Build it into a canvas.

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/texelout/texel"
)

// Split directions accepted by PaneSpec.Split.
const (
	SplitLeft = "left"
	SplitDown = "down"
)

// Layout describes a canvas and the pane tree built on it. Pane i of Panes
// receives identity i+1; the root pane is identity 0.
type Layout struct {
	Name  string     `toml:"name" yaml:"name"`
	Color string     `toml:"color" yaml:"color"`
	Root  PaneSpec   `toml:"root" yaml:"root"`
	Panes []PaneSpec `toml:"panes" yaml:"panes"`
}

// PaneSpec describes one pane. Parent and Split are ignored for the root.
type PaneSpec struct {
	Name    string `toml:"name" yaml:"name"`
	Color   string `toml:"color" yaml:"color"`
	Parent  int    `toml:"parent" yaml:"parent"`
	Split   string `toml:"split" yaml:"split"`
	Command string `toml:"command" yaml:"command"`
	Dir     string `toml:"dir" yaml:"dir"`
}

// ValidationError locates one problem in a layout.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// ValidationErrors is every problem found in a layout.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return "invalid layout: " + strings.Join(parts, "; ")
}

// ParseFile reads a layout, choosing the decoder from the file extension.
func ParseFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read layout %s", path)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	layout, err := Parse(data, ext)
	if err != nil {
		return nil, errors.Wrapf(err, "layout %s", path)
	}
	return layout, nil
}

// Parse decodes an in-memory layout. Format is "toml", "yaml" or "yml".
// Unknown keys are rejected in both formats.
func Parse(data []byte, format string) (*Layout, error) {
	var layout Layout
	switch strings.ToLower(format) {
	case "toml":
		md, err := toml.Decode(string(data), &layout)
		if err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("decode toml: unknown key %q", undecoded[0].String())
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&layout); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "decode yaml")
		}
	default:
		return nil, errors.Errorf("unsupported layout format %q (use toml or yaml)", format)
	}
	return &layout, nil
}

// Validate returns every problem in l, or nil when it can be built.
func Validate(l *Layout) ValidationErrors {
	var errs ValidationErrors
	add := func(field, msg, hint string) {
		errs = append(errs, ValidationError{Field: field, Message: msg, Hint: hint})
	}

	checkColor := func(field, name string) {
		if name == "" {
			return
		}
		if _, err := texel.ParseColor(name); err != nil {
			add(field, err.Error(), "use none, black, red, green, yellow, blue, magenta, cyan, white or a light_ variant")
		}
	}
	checkColor("color", l.Color)
	checkColor("root.color", l.Root.Color)

	if n := len(l.Panes); n > texel.MaxPanes-1 {
		add("panes", fmt.Sprintf("%d panes declared", n), fmt.Sprintf("at most %d panes besides the root", texel.MaxPanes-1))
	}

	taken := make(map[string]bool)
	for i, p := range l.Panes {
		field := fmt.Sprintf("panes[%d]", i)
		id := i + 1
		if p.Parent < 0 || p.Parent >= id {
			add(field+".parent", fmt.Sprintf("pane %d does not exist yet", p.Parent), "parent must be 0 or an earlier pane")
		}
		switch p.Split {
		case SplitLeft, SplitDown:
			key := fmt.Sprintf("%d/%s", p.Parent, p.Split)
			if taken[key] {
				add(field+".split", fmt.Sprintf("pane %d already has a %s child", p.Parent, p.Split), "")
			}
			taken[key] = true
		default:
			add(field+".split", fmt.Sprintf("unknown split %q", p.Split), `use "left" or "down"`)
		}
		checkColor(field+".color", p.Color)
	}
	return errs
}
