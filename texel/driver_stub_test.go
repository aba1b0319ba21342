// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/driver_stub_test.go
// Summary: In-memory ScreenDriver shared by the canvas tests.

package texel

import (
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

type stubScreenDriver struct {
	mu            sync.Mutex
	width, height int
	initCalled    bool
	finiCalls     int
	shows         int
	cells         map[[2]int]rune
}

func newStubDriver(width, height int) *stubScreenDriver {
	return &stubScreenDriver{width: width, height: height, cells: make(map[[2]int]rune)}
}

func (s *stubScreenDriver) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initCalled = true
	return nil
}

func (s *stubScreenDriver) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finiCalls++
}

func (s *stubScreenDriver) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *stubScreenDriver) setSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

func (s *stubScreenDriver) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shows++
}

func (s *stubScreenDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[[2]int{x, y}] = mainc
}

func (s *stubScreenDriver) GetContent(x, y int) (rune, []rune, tcell.Style, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.cells[[2]int{x, y}]; ok {
		return r, nil, tcell.StyleDefault, 1
	}
	return ' ', nil, tcell.StyleDefault, 1
}

func (s *stubScreenDriver) stats() (shows, finiCalls int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shows, s.finiCalls
}

func newTestCanvas(t *testing.T, width, height int) (*Canvas, *stubScreenDriver) {
	t.Helper()
	driver := newStubDriver(width, height)
	canvas, err := NewCanvas("", WithDriver(driver))
	require.NoError(t, err)
	return canvas, driver
}

// eventRecorder collects canvas events; it is safe to read from the test
// goroutine while a bridge goroutine broadcasts.
type eventRecorder struct {
	mu      sync.Mutex
	events  []Event
	flushed chan FlushPayload
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{flushed: make(chan FlushPayload, 256)}
}

func (r *eventRecorder) OnEvent(event Event) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	if p, ok := event.Payload.(FlushPayload); ok {
		r.flushed <- p
	}
}

func (r *eventRecorder) ofType(typ EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
