// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/driver_ansi.go
// Summary: ScreenDriver that writes raw ANSI sequences without raw mode.
// Usage: Default driver of the texelout command. The terminal keeps cooked
// input, so Ctrl-C still raises SIGINT while panes are displayed.

package texel

import (
	"bufio"
	"io"
	"log"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type ansiCell struct {
	ch rune
	bg Color
}

// ANSIDriver keeps a shadow frame and repaints it on Show.
type ANSIDriver struct {
	mu       sync.Mutex
	w        *bufio.Writer
	out      *termenv.Output
	size     func() (int, int, error)
	rows     [][]ansiCell
	lastW    int
	lastH    int
	finiOnce sync.Once
}

// NewANSIDriver draws on f, which must be a terminal for Size to succeed.
func NewANSIDriver(f *os.File) *ANSIDriver {
	fd := int(f.Fd())
	return newANSIDriver(f, func() (int, int, error) {
		return term.GetSize(fd)
	})
}

func newANSIDriver(w io.Writer, size func() (int, int, error)) *ANSIDriver {
	bw := bufio.NewWriter(w)
	return &ANSIDriver{
		w:    bw,
		out:  termenv.NewOutput(bw, termenv.WithProfile(termenv.ANSI)),
		size: size,
	}
}

func (d *ANSIDriver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out.AltScreen()
	d.out.HideCursor()
	d.out.ClearScreen()
	return d.w.Flush()
}

func (d *ANSIDriver) Fini() {
	d.finiOnce.Do(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.out.ShowCursor()
		d.out.ExitAltScreen()
		if err := d.w.Flush(); err != nil {
			log.Printf("ANSIDriver: restore screen: %v", err)
		}
	})
}

func (d *ANSIDriver) Size() (int, int) {
	w, h, err := d.size()
	if err != nil {
		log.Printf("ANSIDriver: terminal size: %v", err)
		return 0, 0
	}
	return w, h
}

func (d *ANSIDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	if x < 0 || y < 0 {
		return
	}
	_, bg, _ := style.Decompose()
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.rows) <= y {
		d.rows = append(d.rows, nil)
	}
	row := d.rows[y]
	for len(row) <= x {
		row = append(row, ansiCell{ch: ' '})
	}
	row[x] = ansiCell{ch: mainc, bg: colorFromTcell(bg)}
	d.rows[y] = row
}

func (d *ANSIDriver) GetContent(x, y int) (rune, []rune, tcell.Style, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if y < 0 || y >= len(d.rows) || x < 0 || x >= len(d.rows[y]) {
		return ' ', nil, tcell.StyleDefault, 1
	}
	cell := d.rows[y][x]
	return cell.ch, nil, cell.bg.Style(), 1
}

// Show repaints every stored row that fits the terminal from the top-left
// corner, switching the background only where it changes. The screen is
// cleared first whenever the terminal size changed.
func (d *ANSIDriver) Show() {
	w, h := d.Size()
	d.mu.Lock()
	defer d.mu.Unlock()
	if w != d.lastW || h != d.lastH {
		d.out.ClearScreen()
		d.lastW, d.lastH = w, h
	}
	for y, row := range d.rows {
		if y >= h {
			break
		}
		if len(row) > w {
			row = row[:w]
		}
		d.out.MoveCursor(y+1, 1)
		current := ColorNone
		for _, cell := range row {
			if cell.bg != current {
				d.w.WriteString(ResetCode())
				d.w.WriteString(cell.bg.Code())
				current = cell.bg
			}
			d.w.WriteRune(cell.ch)
		}
		if current != ColorNone {
			d.w.WriteString(ResetCode())
		}
	}
	if err := d.w.Flush(); err != nil {
		log.Printf("ANSIDriver: write frame: %v", err)
	}
}

func colorFromTcell(c tcell.Color) Color {
	if c == tcell.ColorDefault {
		return ColorNone
	}
	for i, info := range colorTable {
		if info.palette >= 0 && tcell.PaletteColor(info.palette) == c {
			return Color(i)
		}
	}
	return ColorNone
}
