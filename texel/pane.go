// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/pane.go
// Summary: Pane nodes of the canvas layout tree.
// Usage: Panes are created by Canvas splits and referenced by identity; the
// tree links children by index into the canvas table, never by pointer.

package texel

import "fmt"

// Orientation records how a pane was first divided.
type Orientation int

const (
	// OrientationNone marks a pane that has never been split.
	OrientationNone Orientation = iota
	// Vertical places the first child side by side (split to the left).
	Vertical
	// Horizontal stacks the first child below (split downward).
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	default:
		return "None"
	}
}

const noChild = -1

// Pane is one independently buffered output region.
type Pane struct {
	id          int
	name        string
	color       Color
	buffer      *RingBuffer
	left        int
	down        int
	orientation Orientation
}

func newPane(id int) *Pane {
	return &Pane{
		id:     id,
		name:   fmt.Sprintf("Window %d", id),
		color:  ColorGreen,
		buffer: NewRingBuffer(),
		left:   noChild,
		down:   noChild,
	}
}

// ID returns the pane identity.
func (p *Pane) ID() int { return p.id }

// Name returns the display label.
func (p *Pane) Name() string { return p.name }

// Color returns the title bar colour.
func (p *Pane) Color() Color { return p.color }

// Orientation returns the orientation locked by the first split.
func (p *Pane) Orientation() Orientation { return p.orientation }

// LeftChild returns the identity created by SplitLeft, if any.
func (p *Pane) LeftChild() (int, bool) {
	return p.left, p.left != noChild
}

// DownChild returns the identity created by SplitDown, if any.
func (p *Pane) DownChild() (int, bool) {
	return p.down, p.down != noChild
}

// Lines returns the sealed lines, oldest first.
func (p *Pane) Lines() []string {
	return p.buffer.Lines()
}

func (p *Pane) title() string {
	return fmt.Sprintf("%s ID: %d", p.name, p.id)
}
