// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/canvas.go
// Summary: Canvas construction, pane table and tree mutation.
// Usage: Build a Canvas synchronously (splits, names, colours), then either
// drive it directly from one goroutine or hand it to NewBridge.

package texel

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// MaxPanes is the size of the pane table, root included.
const MaxPanes = 6

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the tcell screen used by canvases created without
// WithDriver. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Canvas owns the pane tree and the render grid. It is not safe for
// concurrent use; share it through a Bridge instead.
type Canvas struct {
	name   string
	color  Color
	panes  [MaxPanes]*Pane
	count  int
	grid   *[MaxHeight][MaxWidth]Cell
	driver ScreenDriver
	frames BufferStore
	events *EventDispatcher

	closeOnce sync.Once
}

type canvasOptions struct {
	color     Color
	driver    ScreenDriver
	rootName  string
	rootColor Color
	hasRoot   bool
}

// Option configures NewCanvas.
type Option func(*canvasOptions)

// WithColor sets the canvas title colour.
func WithColor(c Color) Option {
	return func(o *canvasOptions) { o.color = c }
}

// WithDriver draws on the given driver instead of a new tcell screen.
func WithDriver(d ScreenDriver) Option {
	return func(o *canvasOptions) { o.driver = d }
}

// WithRootName names pane 0.
func WithRootName(name string) Option {
	return func(o *canvasOptions) { o.rootName = name }
}

// WithRootColor colours pane 0.
func WithRootColor(c Color) Option {
	return func(o *canvasOptions) {
		o.rootColor = c
		o.hasRoot = true
	}
}

// NewCanvas creates a canvas holding the root pane 0, switches the driver to
// the alternate screen and draws the first frame. An empty name defaults to
// "Screen".
func NewCanvas(name string, opts ...Option) (*Canvas, error) {
	o := canvasOptions{color: ColorGreen}
	for _, opt := range opts {
		opt(&o)
	}
	if name == "" {
		name = "Screen"
	}

	driver := o.driver
	if driver == nil {
		screen, err := screenFactory()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		driver = NewTcellScreenDriver(screen)
	}
	if err := driver.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}

	c := &Canvas{
		name:   name,
		color:  o.color,
		count:  1,
		grid:   new([MaxHeight][MaxWidth]Cell),
		driver: driver,
		frames: NewInMemoryBufferStore(),
		events: NewEventDispatcher(),
	}
	root := newPane(0)
	if o.rootName != "" {
		root.name = o.rootName
	}
	if o.hasRoot {
		root.color = o.rootColor
	}
	c.panes[0] = root

	if err := c.Render(); err != nil {
		driver.Fini()
		return nil, err
	}
	return c, nil
}

// Close restores the terminal. It is safe to call more than once.
func (c *Canvas) Close() {
	c.closeOnce.Do(c.driver.Fini)
}

// Subscribe registers a listener for canvas events.
func (c *Canvas) Subscribe(l Listener) { c.events.Subscribe(l) }

// Unsubscribe removes a listener registered with Subscribe.
func (c *Canvas) Unsubscribe(l Listener) { c.events.Unsubscribe(l) }

// Name returns the canvas title.
func (c *Canvas) Name() string { return c.name }

// Color returns the canvas title colour.
func (c *Canvas) Color() Color { return c.color }

// SetName changes the canvas title.
func (c *Canvas) SetName(name string) { c.name = name }

// SetColor changes the canvas title colour.
func (c *Canvas) SetColor(color Color) { c.color = color }

func (c *Canvas) pane(id int) (*Pane, error) {
	if id < 0 || id >= MaxPanes || c.panes[id] == nil {
		return nil, fmt.Errorf("pane %d: %w", id, ErrNotFound)
	}
	return c.panes[id], nil
}

// Pane returns the pane with the given identity.
func (c *Canvas) Pane(id int) (*Pane, error) {
	return c.pane(id)
}

// IDs returns every allocated identity in ascending order.
func (c *Canvas) IDs() []int {
	ids := make([]int, 0, c.count)
	for id, p := range c.panes {
		if p != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// SetPaneName renames a pane.
func (c *Canvas) SetPaneName(id int, name string) error {
	p, err := c.pane(id)
	if err != nil {
		return err
	}
	p.name = name
	return nil
}

// SetPaneColor changes a pane's title colour.
func (c *Canvas) SetPaneColor(id int, color Color) error {
	p, err := c.pane(id)
	if err != nil {
		return err
	}
	p.color = color
	return nil
}

// SplitLeft gives pane id a child on its far (right) side and returns the
// child's identity.
func (c *Canvas) SplitLeft(id int) (int, error) {
	return c.split(id, Vertical)
}

// SplitDown gives pane id a child on its far (bottom) side and returns the
// child's identity.
func (c *Canvas) SplitDown(id int) (int, error) {
	return c.split(id, Horizontal)
}

func (c *Canvas) split(id int, dir Orientation) (int, error) {
	p, err := c.pane(id)
	if err != nil {
		return 0, err
	}
	if c.count >= MaxPanes {
		return 0, fmt.Errorf("split pane %d: %w", id, ErrOutOfCapacity)
	}
	slot := &p.left
	if dir == Horizontal {
		slot = &p.down
	}
	if *slot != noChild {
		return 0, fmt.Errorf("split pane %d %s: %w", id, dir, ErrAlreadyExists)
	}

	child := c.count
	c.panes[child] = newPane(child)
	*slot = child
	// The first split decides the layout order for good.
	if p.orientation == OrientationNone {
		p.orientation = dir
	}
	c.count++

	c.events.Broadcast(Event{
		Type:    EventPaneSplit,
		Payload: SplitPayload{Parent: id, Child: child, Orientation: dir},
	})
	return child, nil
}

// Print appends text to the open line of pane id without redrawing.
func (c *Canvas) Print(id int, text string) error {
	p, err := c.pane(id)
	if err != nil {
		return err
	}
	p.buffer.Append(text)
	return nil
}

// Flush seals the open line of pane id and redraws the whole canvas.
func (c *Canvas) Flush(id int) error {
	p, err := c.pane(id)
	if err != nil {
		return err
	}
	line := p.buffer.Pending()
	p.buffer.Flush()
	c.events.Broadcast(Event{
		Type:    EventPaneFlushed,
		Payload: FlushPayload{PaneID: id, PaneName: p.name, Line: line},
	})
	return c.Render()
}

// Println prints text to pane id and flushes it.
func (c *Canvas) Println(id int, text string) error {
	if err := c.Print(id, text); err != nil {
		return err
	}
	return c.Flush(id)
}
