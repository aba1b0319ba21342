// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/buffer_store.go
// Summary: Rendered frame type and the in-memory store holding the latest one.

package texel

import "strings"

// Cell is one terminal cell of the render grid.
type Cell struct {
	Ch    rune
	Color Color
}

// Frame is a rendered screen, row-major. Row 0 is the canvas title.
type Frame [][]Cell

// Row returns row y as plain text, or "" when y is out of range.
func (f Frame) Row(y int) string {
	if y < 0 || y >= len(f) {
		return ""
	}
	var sb strings.Builder
	for _, c := range f[y] {
		sb.WriteRune(c.Ch)
	}
	return sb.String()
}

// String renders the frame as plain text, one line per row.
func (f Frame) String() string {
	var sb strings.Builder
	for y := range f {
		sb.WriteString(strings.TrimRight(f.Row(y), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// InMemoryBufferStore is a BufferStore holding a single frame reference.
type InMemoryBufferStore struct {
	frame Frame
}

// Snapshot returns the last saved frame. Callers should treat it as read-only.
func (s *InMemoryBufferStore) Snapshot() Frame {
	return s.frame
}

// Save stores the given frame.
func (s *InMemoryBufferStore) Save(frame Frame) {
	s.frame = frame
}

// Clear drops the stored frame.
func (s *InMemoryBufferStore) Clear() {
	s.frame = nil
}

// NewInMemoryBufferStore constructs an empty buffer store.
func NewInMemoryBufferStore() BufferStore {
	return &InMemoryBufferStore{}
}
