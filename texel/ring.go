// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/ring.go
// Summary: Fixed-capacity circular line store backing every pane.

package texel

import (
	"iter"
	"slices"
	"strings"
)

// BufferCapacity is the number of sealed lines a pane keeps.
const BufferCapacity = 64

// ringSlots leaves room for the open line next to a full set of sealed lines.
const ringSlots = BufferCapacity + 1

// RingBuffer stores the most recent lines written to a pane. Sealed lines
// occupy the circular range [start, end); the slot at end holds the line
// currently being composed.
type RingBuffer struct {
	lines [ringSlots]string
	used  [ringSlots]bool
	start int
	end   int
}

// NewRingBuffer returns an empty buffer.
func NewRingBuffer() *RingBuffer {
	return &RingBuffer{}
}

// sanitize strips characters that would break cell rendering. A carriage
// return discards everything composed so far in this call.
func sanitize(raw string) string {
	var out strings.Builder
	for _, r := range raw {
		switch r {
		case '\n', 0:
		case '\t':
			out.WriteString("    ")
		case '\r':
			out.Reset()
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// Append extends the open line with the sanitized text, starting a new line
// if none is open.
func (b *RingBuffer) Append(text string) {
	clean := sanitize(text)
	if b.used[b.end] {
		b.lines[b.end] += clean
		return
	}
	b.lines[b.end] = clean
	b.used[b.end] = true
}

// Flush seals the open line and opens the next one, evicting the oldest
// sealed line when the buffer is full.
func (b *RingBuffer) Flush() {
	b.end = (b.end + 1) % ringSlots
	if b.end == b.start {
		b.lines[b.end] = ""
		b.used[b.end] = false
		b.start = (b.start + 1) % ringSlots
	}
}

// Len returns the number of sealed lines.
func (b *RingBuffer) Len() int {
	return (b.end - b.start + ringSlots) % ringSlots
}

// Pending returns the open line, which is not yet visible.
func (b *RingBuffer) Pending() string {
	return b.lines[b.end]
}

// All yields sealed lines oldest first. The sequence is restartable and does
// not modify the buffer; a line flushed without any text yields "".
func (b *RingBuffer) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := b.start; i != b.end; i = (i + 1) % ringSlots {
			if !yield(b.lines[i]) {
				return
			}
		}
	}
}

// Lines collects All into a slice.
func (b *RingBuffer) Lines() []string {
	return slices.Collect(b.All())
}
