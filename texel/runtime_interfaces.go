// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/runtime_interfaces.go
// Summary: Interfaces separating the canvas from terminal and storage backends.

package texel

import "github.com/gdamore/tcell/v2"

// ScreenDriver abstracts the terminal the canvas draws on. It mirrors the
// subset of tcell.Screen the canvas needs so a raw ANSI writer can stand in.
type ScreenDriver interface {
	// Init switches to the alternate screen.
	Init() error
	// Fini restores the previous screen. Safe to call more than once.
	Fini()
	// Size reports columns and rows; zero means no terminal is attached.
	Size() (int, int)
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	GetContent(x, y int) (rune, []rune, tcell.Style, int)
	// Show flushes pending content to the terminal.
	Show()
}

// BufferStore keeps the last rendered frame so it can be inspected after the
// terminal has been released.
type BufferStore interface {
	Snapshot() Frame
	Save(frame Frame)
	Clear()
}
