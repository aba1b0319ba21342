// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/canvas_test.go
// Summary: Exercises canvas construction, splitting and pane operations.
// Usage: Executed during `go test` to guard against regressions.

package texel

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCanvas(t *testing.T) {
	canvas, _ := newTestCanvas(t, 80, 24)
	id1, err := canvas.SplitLeft(0)
	require.NoError(t, err)
	id2, err := canvas.SplitDown(0)
	require.NoError(t, err)
	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, id2)

	require.NoError(t, canvas.Println(id1, "Hello World"))
	require.NoError(t, canvas.Println(id2, "Hello World"))

	for _, id := range []int{id1, id2} {
		p, err := canvas.Pane(id)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hello World"}, p.Lines())
	}
}

func TestCanvasDefaults(t *testing.T) {
	canvas, driver := newTestCanvas(t, 40, 10)
	assert.Equal(t, "Screen", canvas.Name())
	assert.Equal(t, ColorGreen, canvas.Color())
	assert.Equal(t, []int{0}, canvas.IDs())
	assert.True(t, driver.initCalled)

	root, err := canvas.Pane(0)
	require.NoError(t, err)
	assert.Equal(t, "Window 0", root.Name())
	assert.Equal(t, ColorGreen, root.Color())
	assert.Equal(t, OrientationNone, root.Orientation())
	_, ok := root.LeftChild()
	assert.False(t, ok)

	shows, _ := driver.stats()
	assert.Equal(t, 1, shows, "construction draws the first frame")
}

func TestCanvasOptions(t *testing.T) {
	driver := newStubDriver(40, 10)
	canvas, err := NewCanvas("My New Screen",
		WithDriver(driver),
		WithColor(ColorLightBlack),
		WithRootName("main"),
		WithRootColor(ColorBlue),
	)
	require.NoError(t, err)
	assert.Equal(t, "My New Screen", canvas.Name())
	assert.Equal(t, ColorLightBlack, canvas.Color())

	root, err := canvas.Pane(0)
	require.NoError(t, err)
	assert.Equal(t, "main", root.Name())
	assert.Equal(t, ColorBlue, root.Color())
}

func TestCanvasUsesScreenFactory(t *testing.T) {
	defer SetScreenFactory(nil)
	screen := tcell.NewSimulationScreen("UTF-8")
	SetScreenFactory(func() (tcell.Screen, error) { return screen, nil })

	canvas, err := NewCanvas("sim")
	require.NoError(t, err)
	defer canvas.Close()

	require.NoError(t, canvas.Println(0, "hi"))
	frame := canvas.Snapshot()
	require.NotEmpty(t, frame)
	mainc, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, 'S', mainc)
	mainc, _, _, _ = screen.GetContent(0, 1)
	assert.Equal(t, 'h', mainc)
}

func TestCanvasScreenFactoryError(t *testing.T) {
	defer SetScreenFactory(nil)
	boom := errors.New("no tty")
	SetScreenFactory(func() (tcell.Screen, error) { return nil, boom })

	_, err := NewCanvas("x")
	assert.ErrorIs(t, err, boom)
}

func TestFirstSplitLocksOrientation(t *testing.T) {
	canvas, _ := newTestCanvas(t, 80, 24)
	_, err := canvas.SplitLeft(0)
	require.NoError(t, err)
	_, err = canvas.SplitDown(0)
	require.NoError(t, err)
	root, _ := canvas.Pane(0)
	assert.Equal(t, Vertical, root.Orientation())

	fresh, _ := newTestCanvas(t, 80, 24)
	_, err = fresh.SplitDown(0)
	require.NoError(t, err)
	_, err = fresh.SplitLeft(0)
	require.NoError(t, err)
	root, _ = fresh.Pane(0)
	assert.Equal(t, Horizontal, root.Orientation())

	left, ok := root.LeftChild()
	require.True(t, ok)
	down, ok := root.DownChild()
	require.True(t, ok)
	assert.Equal(t, 2, left)
	assert.Equal(t, 1, down)
}

func TestSplitAlreadyExists(t *testing.T) {
	canvas, _ := newTestCanvas(t, 80, 24)
	_, err := canvas.SplitLeft(0)
	require.NoError(t, err)

	_, err = canvas.SplitLeft(0)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, []int{0, 1}, canvas.IDs())

	root, _ := canvas.Pane(0)
	left, _ := root.LeftChild()
	assert.Equal(t, 1, left)
	_, ok := root.DownChild()
	assert.False(t, ok)
}

func TestSplitOutOfCapacity(t *testing.T) {
	canvas, _ := newTestCanvas(t, 80, 24)
	id := 0
	for i := 0; i < MaxPanes-1; i++ {
		var err error
		id, err = canvas.SplitLeft(id)
		require.NoError(t, err)
	}
	require.Len(t, canvas.IDs(), MaxPanes)

	_, err := canvas.SplitDown(0)
	assert.ErrorIs(t, err, ErrOutOfCapacity)
	_, err = canvas.SplitLeft(id)
	assert.ErrorIs(t, err, ErrOutOfCapacity)
	assert.Len(t, canvas.IDs(), MaxPanes)
}

func TestInvalidIdentityNotFound(t *testing.T) {
	canvas, _ := newTestCanvas(t, 80, 24)
	assert.ErrorIs(t, canvas.Flush(3), ErrNotFound)
	assert.ErrorIs(t, canvas.Flush(MaxPanes), ErrNotFound)
	assert.ErrorIs(t, canvas.Print(-1, "x"), ErrNotFound)
	assert.ErrorIs(t, canvas.Println(MaxPanes, "x"), ErrNotFound)
	assert.ErrorIs(t, canvas.SetPaneName(4, "x"), ErrNotFound)
	assert.ErrorIs(t, canvas.SetPaneColor(4, ColorRed), ErrNotFound)
	_, err := canvas.SplitLeft(MaxPanes)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = canvas.SplitDown(2)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = canvas.Pane(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrintlnStopsOnPrintError(t *testing.T) {
	canvas, driver := newTestCanvas(t, 80, 24)
	before, _ := driver.stats()
	assert.ErrorIs(t, canvas.Println(5, "x"), ErrNotFound)
	after, _ := driver.stats()
	assert.Equal(t, before, after, "no render after a failed print")
}

func TestPrintDoesNotRender(t *testing.T) {
	canvas, driver := newTestCanvas(t, 80, 24)
	before, _ := driver.stats()
	require.NoError(t, canvas.Print(0, "pending"))
	after, _ := driver.stats()
	assert.Equal(t, before, after)

	require.NoError(t, canvas.Flush(0))
	after, _ = driver.stats()
	assert.Equal(t, before+1, after)
	root, _ := canvas.Pane(0)
	assert.Equal(t, []string{"pending"}, root.Lines())
}

func TestNamesAndColors(t *testing.T) {
	canvas, _ := newTestCanvas(t, 80, 24)
	third, err := canvas.SplitDown(0)
	require.NoError(t, err)

	canvas.SetName("Change the name")
	canvas.SetColor(ColorBlue)
	require.NoError(t, canvas.SetPaneName(third, "This is the third window"))
	require.NoError(t, canvas.SetPaneColor(0, ColorYellow))

	assert.Equal(t, "Change the name", canvas.Name())
	assert.Equal(t, ColorBlue, canvas.Color())
	p, _ := canvas.Pane(third)
	assert.Equal(t, "This is the third window", p.Name())
	root, _ := canvas.Pane(0)
	assert.Equal(t, ColorYellow, root.Color())
}

func TestCanvasBroadcastsEvents(t *testing.T) {
	canvas, _ := newTestCanvas(t, 80, 24)
	rec := newEventRecorder()
	canvas.Subscribe(rec)

	child, err := canvas.SplitDown(0)
	require.NoError(t, err)
	require.NoError(t, canvas.Print(child, "one "))
	require.NoError(t, canvas.Println(child, "two"))

	splits := rec.ofType(EventPaneSplit)
	require.Len(t, splits, 1)
	assert.Equal(t, SplitPayload{Parent: 0, Child: child, Orientation: Horizontal}, splits[0].Payload)

	flushed := <-rec.flushed
	assert.Equal(t, FlushPayload{PaneID: child, PaneName: "Window 1", Line: "one two"}, flushed)

	rendered := rec.ofType(EventRendered)
	require.Len(t, rendered, 1)
	assert.Equal(t, RenderPayload{Width: 80, Height: 24}, rendered[0].Payload)

	canvas.Unsubscribe(rec)
	require.NoError(t, canvas.Println(0, "quiet"))
	assert.Len(t, rec.ofType(EventRendered), 1)
}

func TestCanvasCloseIsIdempotent(t *testing.T) {
	canvas, driver := newTestCanvas(t, 80, 24)
	canvas.Close()
	canvas.Close()
	_, fini := driver.stats()
	assert.Equal(t, 1, fini)
}
