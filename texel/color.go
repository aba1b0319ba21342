// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/color.go
// Summary: Closed background colour palette shared by canvases, panes and drivers.
// Usage: Passed to SetColor/SetPaneColor; drivers translate it to tcell styles
// or raw ANSI background sequences.

package texel

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
)

// Color is a background colour tag. The zero value is ColorNone, which draws
// the terminal's default background.
type Color uint8

const (
	ColorNone Color = iota
	ColorBlack
	ColorBlue
	ColorCyan
	ColorGreen
	ColorLightBlack
	ColorLightBlue
	ColorLightCyan
	ColorLightGreen
	ColorLightMagenta
	ColorLightRed
	ColorLightWhite
	ColorLightYellow
	ColorMagenta
	ColorRed
	ColorWhite
	ColorYellow
)

type colorInfo struct {
	name    string
	palette int // ANSI 16-colour index
}

var colorTable = [...]colorInfo{
	ColorNone:         {"none", -1},
	ColorBlack:        {"black", 0},
	ColorBlue:         {"blue", 4},
	ColorCyan:         {"cyan", 6},
	ColorGreen:        {"green", 2},
	ColorLightBlack:   {"light_black", 8},
	ColorLightBlue:    {"light_blue", 12},
	ColorLightCyan:    {"light_cyan", 14},
	ColorLightGreen:   {"light_green", 10},
	ColorLightMagenta: {"light_magenta", 13},
	ColorLightRed:     {"light_red", 9},
	ColorLightWhite:   {"light_white", 15},
	ColorLightYellow:  {"light_yellow", 11},
	ColorMagenta:      {"magenta", 5},
	ColorRed:          {"red", 1},
	ColorWhite:        {"white", 7},
	ColorYellow:       {"yellow", 3},
}

func (c Color) valid() bool {
	return int(c) < len(colorTable)
}

// String returns the configuration name of the colour.
func (c Color) String() string {
	if !c.valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorTable[c].name
}

// Code returns the ANSI escape sequence that switches the background to c.
// ColorNone and unknown values yield the empty string.
func (c Color) Code() string {
	if !c.valid() || c == ColorNone {
		return ""
	}
	return termenv.CSI + termenv.ANSIColor(colorTable[c].palette).Sequence(true) + "m"
}

// ResetCode returns the sequence restoring default attributes.
func ResetCode() string {
	return termenv.CSI + termenv.ResetSeq + "m"
}

// Style returns the tcell style drawing c as background.
func (c Color) Style() tcell.Style {
	style := tcell.StyleDefault
	if !c.valid() || c == ColorNone {
		return style
	}
	return style.Background(tcell.PaletteColor(colorTable[c].palette))
}

// ParseColor resolves a colour name. Matching ignores case and accepts
// "light_blue", "light-blue", "light blue" and "lightblue" alike.
func ParseColor(name string) (Color, error) {
	key := normalizeColorName(name)
	if key == "" || key == "null" {
		return ColorNone, nil
	}
	for i, info := range colorTable {
		if normalizeColorName(info.name) == key {
			return Color(i), nil
		}
	}
	return ColorNone, fmt.Errorf("unknown color %q", name)
}

func normalizeColorName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(name)
}
