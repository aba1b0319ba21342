// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelout/demo.go
// Summary: demo subcommand: a root pane plus two panes fed by periodic producers.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelout/internal/runner"
	"github.com/framegrace/texelout/texel"
)

var (
	demoInterval time.Duration
	demoCount    int
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show a root pane above two panes fed by concurrent producers",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().DurationVar(&demoInterval, "interval", 2*time.Second, "Delay between messages of each producer")
	demoCmd.Flags().IntVar(&demoCount, "count", 5, "Messages sent by each producer (0: until interrupted)")
}

// buildDemo splits the root downward and then to the left, giving one pane
// per producer.
func buildDemo(opts ...texel.Option) (*texel.Canvas, error) {
	canvas, err := texel.NewCanvas("texelout demo", opts...)
	if err != nil {
		return nil, err
	}
	if _, err := canvas.SplitDown(0); err != nil {
		canvas.Close()
		return nil, err
	}
	right, err := canvas.SplitLeft(0)
	if err != nil {
		canvas.Close()
		return nil, err
	}
	if err := canvas.SetPaneColor(right, texel.ColorBlue); err != nil {
		canvas.Close()
		return nil, err
	}
	if err := canvas.Render(); err != nil {
		canvas.Close()
		return nil, err
	}
	return canvas, nil
}

// demoProducers lists the panes fed by producers: every pane but the root.
func demoProducers(canvas *texel.Canvas) []int {
	return canvas.IDs()[1:]
}

func runDemo(cmd *cobra.Command, args []string) error {
	if demoInterval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", demoInterval)
	}
	if demoCount < 0 {
		return fmt.Errorf("count must not be negative, got %d", demoCount)
	}
	var ids []int
	s, ctx, err := startSession(cmd.Context(), func(opts ...texel.Option) (*texel.Canvas, error) {
		canvas, err := buildDemo(opts...)
		if err == nil {
			ids = demoProducers(canvas)
		}
		return canvas, err
	})
	if err != nil {
		return err
	}
	defer s.finish()

	producer := s.bridge.Clone()
	defer producer.Close()
	return runner.Tick(ctx, producer, ids, demoInterval, demoCount)
}
