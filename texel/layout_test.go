// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/layout_test.go
// Summary: Exercises pane partitioning and frame rendering.
// Usage: Executed during `go test` to guard against regressions.

package texel

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutVerticalRoot(t *testing.T) {
	canvas, _ := newTestCanvas(t, 20, 11)
	left, _ := canvas.SplitLeft(0)
	down, _ := canvas.SplitDown(0)
	under, _ := canvas.SplitDown(left)

	rects := canvas.Layout(20, 11)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 10, H: 5}, rects[0])
	assert.Equal(t, Rect{X: 10, Y: 0, W: 10, H: 5}, rects[left])
	assert.Equal(t, Rect{X: 0, Y: 5, W: 10, H: 5}, rects[down])
	assert.Equal(t, Rect{X: 10, Y: 5, W: 10, H: 5}, rects[under])
}

func TestLayoutHorizontalRoot(t *testing.T) {
	canvas, _ := newTestCanvas(t, 20, 11)
	down, _ := canvas.SplitDown(0)
	left, _ := canvas.SplitLeft(0)

	rects := canvas.Layout(20, 11)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 10, H: 5}, rects[0])
	assert.Equal(t, Rect{X: 0, Y: 5, W: 20, H: 5}, rects[down])
	assert.Equal(t, Rect{X: 10, Y: 0, W: 10, H: 5}, rects[left])
}

func TestLayoutChainStacksAwayFromOrigin(t *testing.T) {
	canvas, _ := newTestCanvas(t, 40, 11)
	id := 0
	for i := 0; i < 3; i++ {
		var err error
		id, err = canvas.SplitLeft(id)
		require.NoError(t, err)
	}
	rects := canvas.Layout(40, 11)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 20, H: 10}, rects[0])
	assert.Equal(t, Rect{X: 20, Y: 0, W: 10, H: 10}, rects[1])
	assert.Equal(t, Rect{X: 30, Y: 0, W: 5, H: 10}, rects[2])
	assert.Equal(t, Rect{X: 35, Y: 0, W: 5, H: 10}, rects[3])
}

func TestRenderSinglePane(t *testing.T) {
	canvas, driver := newTestCanvas(t, 20, 11)
	frame := canvas.Snapshot()
	require.Len(t, frame, 11)

	assert.Equal(t, "Screen: Screen      ", frame.Row(0))
	for _, cell := range frame[0] {
		assert.Equal(t, ColorGreen, cell.Color)
	}

	for y := 1; y <= 9; y++ {
		assert.Equal(t, "--                  ", frame.Row(y), "row %d", y)
		assert.Equal(t, ColorNone, frame[y][0].Color)
		assert.Equal(t, ColorGreen, frame[y][19].Color, "separator column")
	}
	assert.Equal(t, "Window 0 ID: 0      ", frame.Row(10))
	assert.Equal(t, ColorGreen, frame[10][0].Color)

	mainc, _, _, _ := driver.GetContent(0, 10)
	assert.Equal(t, 'W', mainc)
}

func TestRenderShowsNewestLines(t *testing.T) {
	// 5 rows for panes: 4 content rows plus the title bar.
	canvas, _ := newTestCanvas(t, 12, 6)
	for i := 0; i < 7; i++ {
		require.NoError(t, canvas.Println(0, fmt.Sprintf("line %d", i)))
	}
	frame := canvas.Snapshot()
	assert.Equal(t, "line 3     ", frame.Row(1)[:11])
	assert.Equal(t, "line 6     ", frame.Row(4)[:11])
	assert.True(t, strings.HasPrefix(frame.Row(5), "Window 0 ID"))
}

func TestRenderPadsShortBufferWithPlaceholder(t *testing.T) {
	canvas, _ := newTestCanvas(t, 12, 6)
	require.NoError(t, canvas.Println(0, "only"))
	frame := canvas.Snapshot()
	assert.Equal(t, "only", strings.TrimSpace(frame.Row(1)))
	assert.Equal(t, "--", strings.TrimSpace(frame.Row(2)))
}

func TestRenderTruncatesLongLines(t *testing.T) {
	canvas, _ := newTestCanvas(t, 8, 4)
	require.NoError(t, canvas.Println(0, "abcdefghijkl"))
	frame := canvas.Snapshot()
	assert.Equal(t, "abcdefg ", frame.Row(1))
	assert.Equal(t, ColorGreen, frame[1][7].Color)
}

func TestRenderSplitPanes(t *testing.T) {
	canvas, _ := newTestCanvas(t, 20, 7)
	right, _ := canvas.SplitLeft(0)
	require.NoError(t, canvas.SetPaneName(right, "R"))
	require.NoError(t, canvas.SetPaneColor(right, ColorBlue))
	require.NoError(t, canvas.Println(right, "hello"))

	frame := canvas.Snapshot()
	assert.Equal(t, "--        hello     ", frame.Row(1))
	assert.Equal(t, "Window 0 IR ID: 1   ", frame.Row(6))
	assert.Equal(t, ColorGreen, frame[1][9].Color)
	assert.Equal(t, ColorBlue, frame[1][19].Color)
	assert.Equal(t, ColorBlue, frame[6][10].Color)
}

func TestRenderReplacesWideRunes(t *testing.T) {
	canvas, _ := newTestCanvas(t, 10, 4)
	require.NoError(t, canvas.Println(0, "a世b"))
	frame := canvas.Snapshot()
	assert.Equal(t, "a?b", frame.Row(1)[:3])
}

func TestRenderDegenerateSizesDoNotPanic(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 2}, {2, 2}, {3, 3}, {4, 5}}
	for _, size := range sizes {
		canvas, _ := newTestCanvas(t, size[0], size[1])
		id := 0
		for i := 0; i < MaxPanes-1; i++ {
			var err error
			if i%2 == 0 {
				id, err = canvas.SplitLeft(id)
			} else {
				id, err = canvas.SplitDown(id)
			}
			require.NoError(t, err)
		}
		for _, pid := range canvas.IDs() {
			assert.NotPanics(t, func() {
				require.NoError(t, canvas.Println(pid, "x"))
			}, "size %v", size)
		}
	}
}

func TestRenderClipsToMaximumGrid(t *testing.T) {
	canvas, _ := newTestCanvas(t, MaxWidth+100, MaxHeight+100)
	frame := canvas.Snapshot()
	require.Len(t, frame, MaxHeight+1)
	assert.Len(t, frame[0], MaxWidth)
}

func TestRenderWithoutTerminal(t *testing.T) {
	driver := newStubDriver(0, 0)
	_, err := NewCanvas("none", WithDriver(driver))
	assert.ErrorIs(t, err, ErrNoTerminal)
	_, fini := driver.stats()
	assert.Equal(t, 1, fini, "screen restored after failed first render")

	canvas, driver := newTestCanvas(t, 10, 5)
	driver.setSize(0, 0)
	assert.ErrorIs(t, canvas.Println(0, "x"), ErrNoTerminal)
	root, _ := canvas.Pane(0)
	assert.Equal(t, []string{"x"}, root.Lines(), "line is kept even when drawing fails")
}

func TestFrameString(t *testing.T) {
	canvas, _ := newTestCanvas(t, 12, 3)
	require.NoError(t, canvas.Println(0, "hi"))
	assert.Equal(t, "Screen: Scre\nhi\nWindow 0 ID:\n", canvas.Snapshot().String())
}

func TestRenderLeavesRowlessPaneBlank(t *testing.T) {
	// Three grid rows: the down child takes two, leaving the root a single row.
	canvas, _ := newTestCanvas(t, 10, 4)
	down, err := canvas.SplitDown(0)
	require.NoError(t, err)
	require.NoError(t, canvas.Println(down, "x"))

	rects := canvas.Layout(10, 4)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 10, H: 1}, rects[0])
	assert.Equal(t, Rect{X: 0, Y: 1, W: 10, H: 2}, rects[down])

	frame := canvas.Snapshot()
	assert.Equal(t, "          ", frame.Row(1))
	assert.Equal(t, ColorNone, frame[1][9].Color)
	assert.Equal(t, "x", strings.TrimSpace(frame.Row(2)))
	assert.Equal(t, "Window 1 I", frame.Row(3), "title cut at the terminal width")
}
