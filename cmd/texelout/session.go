// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelout/session.go
// Summary: Terminal setup and teardown shared by the subcommands.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"

	"github.com/framegrace/texelout/internal/transcript"
	"github.com/framegrace/texelout/texel"
)

// canvasBuilder creates the canvas for a session on the chosen driver.
type canvasBuilder func(opts ...texel.Option) (*texel.Canvas, error)

type session struct {
	canvas   *texel.Canvas
	bridge   *texel.Bridge
	recorder *transcript.Recorder
	stop     context.CancelFunc
}

func newDriver(name string) (texel.ScreenDriver, error) {
	switch name {
	case "ansi":
		return texel.NewANSIDriver(os.Stdout), nil
	case "tcell":
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		return texel.NewTcellScreenDriver(screen), nil
	default:
		return nil, fmt.Errorf("unknown driver %q (use ansi or tcell)", name)
	}
}

// startSession takes over the terminal. The returned context ends on
// SIGINT, SIGTERM or, with the tcell driver, a quit key.
func startSession(parent context.Context, build canvasBuilder) (*session, context.Context, error) {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, nil, fmt.Errorf("stdout is not a terminal")
	}

	driver, err := newDriver(driverName)
	if err != nil {
		return nil, nil, err
	}

	var recorder *transcript.Recorder
	if recordPath != "" {
		recorder, err = transcript.Open(recordPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open transcript: %w", err)
		}
	}

	canvas, err := build(texel.WithDriver(driver))
	if err != nil {
		if recorder != nil {
			recorder.Close()
		}
		return nil, nil, err
	}
	if recorder != nil {
		canvas.Subscribe(recorder)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if td, ok := driver.(*texel.TcellScreenDriver); ok {
		go pollKeys(td.Underlying(), stop)
	}

	log.Printf("Session: started %q on the %s driver", canvas.Name(), driverName)
	return &session{
		canvas:   canvas,
		bridge:   texel.NewBridge(canvas),
		recorder: recorder,
		stop:     stop,
	}, ctx, nil
}

// pollKeys cancels the session on Ctrl-C, Esc or q. It returns once the
// screen is finalized.
func pollKeys(screen tcell.Screen, cancel context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if key.Key() == tcell.KeyCtrlC || key.Key() == tcell.KeyEscape || (key.Key() == tcell.KeyRune && key.Rune() == 'q') {
			cancel()
			return
		}
	}
}

// finish terminates the bridge, waits for the terminal to be restored and
// closes the transcript.
func (s *session) finish() {
	s.bridge.Kill()
	<-s.bridge.Done()
	s.stop()
	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			log.Printf("Session: close transcript: %v", err)
		}
	}
	if dumpFrame {
		fmt.Print(s.canvas.Snapshot().String())
	}
	log.Printf("Session: finished %q", s.canvas.Name())
}
