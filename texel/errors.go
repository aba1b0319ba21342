// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/errors.go
// Summary: Error kinds returned by canvas and bridge operations.

package texel

import "errors"

var (
	// ErrNotFound reports an identity outside the pane table or an unallocated slot.
	ErrNotFound = errors.New("pane not found")
	// ErrAlreadyExists reports a split on a side that already has a child.
	ErrAlreadyExists = errors.New("pane child already exists")
	// ErrOutOfCapacity reports that the pane table is full.
	ErrOutOfCapacity = errors.New("pane table is full")
	// ErrNoTerminal reports that the screen driver has no usable size.
	ErrNoTerminal = errors.New("no terminal attached")
)
