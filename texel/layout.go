// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/layout.go
// Summary: Recursive pane partitioning and grid rendering.
// Usage: Render runs on every Flush; Layout exposes the same partition for
// inspection without drawing.

package texel

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Largest terminal area the grid can hold; bigger terminals are clipped.
const (
	MaxWidth  = 512
	MaxHeight = 254
)

const emptyLine = "-- "

// Rect is a rectangle in grid cells. Row 0 is the first row below the canvas
// title.
type Rect struct {
	X, Y, W, H int
}

// Layout returns the rectangle each pane keeps for its own content on a
// terminal of the given size, after its children have taken their halves.
func (c *Canvas) Layout(width, height int) map[int]Rect {
	rects := make(map[int]Rect, c.count)
	width, rows := clampSize(width, height)
	c.arrange(0, 0, width, 0, rows, func(p *Pane, x0, x1, y0, y1 int) {
		rects[p.id] = Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	})
	return rects
}

func clampSize(width, height int) (int, int) {
	rows := height - 1
	width = max(0, min(width, MaxWidth))
	rows = max(0, min(rows, MaxHeight))
	return width, rows
}

// arrange partitions [x0,x1) x [y0,y1) post-order: children claim the far
// half first, then visit receives what is left for pane id.
func (c *Canvas) arrange(id, x0, x1, y0, y1 int, visit func(p *Pane, x0, x1, y0, y1 int)) {
	p := c.panes[id]
	switch p.orientation {
	case Vertical:
		wm := (x0 + x1) / 2
		c.arrange(p.left, wm, x1, y0, y1, visit)
		x1 = wm
		if p.down != noChild {
			hm := (y0 + y1) / 2
			c.arrange(p.down, x0, x1, hm, y1, visit)
			y1 = hm
		}
	case Horizontal:
		hm := (y0 + y1) / 2
		c.arrange(p.down, x0, x1, hm, y1, visit)
		y1 = hm
		if p.left != noChild {
			wm := (x0 + x1) / 2
			c.arrange(p.left, wm, x1, y0, y1, visit)
			x1 = wm
		}
	}
	visit(p, x0, x1, y0, y1)
}

// paint draws pane p into its rectangle: visible lines, then the title bar on
// the last row. A rectangle without room for a content row is left blank.
func (c *Canvas) paint(p *Pane, x0, x1, y0, y1 int) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	rows := y1 - y0 - 1
	if rows < 1 {
		for y := y0; y < y1; y++ {
			fillRow(&c.grid[y], x0, x1, "", ColorNone)
		}
		return
	}

	skip := max(0, p.buffer.Len()-rows)
	visible := make([]string, 0, rows)
	i := 0
	for line := range p.buffer.All() {
		if i >= skip {
			visible = append(visible, line)
		}
		i++
	}

	for r := 0; r < rows; r++ {
		line := emptyLine
		if r < len(visible) {
			line = visible[r]
		}
		row := &c.grid[y0+r]
		text := []rune(line)
		for x := x0; x < x1; x++ {
			switch {
			case x == x1-1:
				row[x] = Cell{Ch: ' ', Color: p.color}
			case x-x0 < len(text):
				row[x] = Cell{Ch: cellRune(text[x-x0])}
			default:
				row[x] = Cell{Ch: ' '}
			}
		}
	}

	fillRow(&c.grid[y1-1], x0, x1, p.title(), p.color)
}

func fillRow(row *[MaxWidth]Cell, x0, x1 int, text string, color Color) {
	runes := []rune(text)
	for x := x0; x < x1; x++ {
		ch := ' '
		if x-x0 < len(runes) {
			ch = cellRune(runes[x-x0])
		}
		row[x] = Cell{Ch: ch, Color: color}
	}
}

// cellRune keeps one character per cell: anything not exactly one column
// wide is drawn as '?'.
func cellRune(r rune) rune {
	if runewidth.RuneWidth(r) != 1 {
		return '?'
	}
	return r
}

// Render lays out every pane over the current terminal size, writes the
// frame to the driver and keeps a copy for Snapshot.
func (c *Canvas) Render() error {
	termWidth, termHeight := c.driver.Size()
	if termWidth <= 0 || termHeight <= 0 {
		return fmt.Errorf("render %q: %w", c.name, ErrNoTerminal)
	}
	width, rows := clampSize(termWidth, termHeight)

	c.arrange(0, 0, width, 0, rows, c.paint)

	frame := make(Frame, rows+1)
	var title [MaxWidth]Cell
	fillRow(&title, 0, width, "Screen: "+c.name, c.color)
	frame[0] = append([]Cell(nil), title[:width]...)
	for y := 0; y < rows; y++ {
		frame[y+1] = append([]Cell(nil), c.grid[y][:width]...)
	}

	for y, row := range frame {
		for x, cell := range row {
			c.driver.SetContent(x, y, cell.Ch, nil, cell.Color.Style())
		}
	}
	c.driver.Show()
	c.frames.Save(frame)

	c.events.Broadcast(Event{
		Type:    EventRendered,
		Payload: RenderPayload{Width: width, Height: rows + 1},
	})
	return nil
}

// Snapshot returns the most recently rendered frame.
func (c *Canvas) Snapshot() Frame {
	return c.frames.Snapshot()
}
