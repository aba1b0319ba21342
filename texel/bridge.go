// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/bridge.go
// Summary: Single-owner goroutine wrapping a Canvas behind cloneable handles.
// Usage: Build the canvas first; NewBridge takes it over and only print/flush
// on identities that existed at that moment remain possible.

package texel

import (
	"fmt"
	"log"
	"sync/atomic"
)

const bridgeQueueSize = 1024

type commandKind int

const (
	cmdPrint commandKind = iota
	cmdFlush
	cmdPrintln
	cmdKill
	cmdRetain
	cmdRelease
)

func (k commandKind) String() string {
	switch k {
	case cmdPrint:
		return "print"
	case cmdFlush:
		return "flush"
	case cmdPrintln:
		return "println"
	case cmdKill:
		return "kill"
	case cmdRetain:
		return "retain"
	case cmdRelease:
		return "release"
	}
	return "unknown"
}

type command struct {
	kind commandKind
	id   int
	text string
}

// bridgeCore is shared by every clone of a handle.
type bridgeCore struct {
	cmds chan command
	done chan struct{}
	ids  map[int]struct{}
}

// Bridge is a goroutine-safe handle to a Canvas owned by a dedicated
// goroutine. Commands from one handle apply in the order they were sent.
// Each handle obtained from NewBridge or Clone must be released with Close;
// the goroutine exits when the last handle is closed or on Kill.
type Bridge struct {
	core   *bridgeCore
	closed atomic.Bool
}

// NewBridge takes ownership of canvas. The caller must not touch canvas
// afterwards; it is closed when the bridge goroutine exits.
func NewBridge(canvas *Canvas) *Bridge {
	core := &bridgeCore{
		cmds: make(chan command, bridgeQueueSize),
		done: make(chan struct{}),
		ids:  make(map[int]struct{}, MaxPanes),
	}
	for _, id := range canvas.IDs() {
		core.ids[id] = struct{}{}
	}
	go core.run(canvas)
	return &Bridge{core: core}
}

func (core *bridgeCore) run(canvas *Canvas) {
	defer close(core.done)
	defer canvas.Close()

	live := 1
	for cmd := range core.cmds {
		var err error
		switch cmd.kind {
		case cmdPrint:
			err = canvas.Print(cmd.id, cmd.text)
		case cmdFlush:
			err = canvas.Flush(cmd.id)
		case cmdPrintln:
			err = canvas.Println(cmd.id, cmd.text)
		case cmdRetain:
			live++
		case cmdRelease:
			live--
			if live == 0 {
				return
			}
		case cmdKill:
			return
		}
		if err != nil {
			log.Printf("Bridge: %s on pane %d failed: %v", cmd.kind, cmd.id, err)
		}
	}
}

// send enqueues cmd, dropping it once the owner goroutine has exited.
func (b *Bridge) send(cmd command) {
	select {
	case <-b.core.done:
		return
	default:
	}
	select {
	case b.core.cmds <- cmd:
	case <-b.core.done:
	}
}

func (b *Bridge) validate(id int) error {
	if _, ok := b.core.ids[id]; !ok {
		return fmt.Errorf("pane %d: %w", id, ErrNotFound)
	}
	return nil
}

// Print queues text for the open line of pane id.
func (b *Bridge) Print(id int, text string) error {
	if err := b.validate(id); err != nil {
		return err
	}
	b.send(command{kind: cmdPrint, id: id, text: text})
	return nil
}

// Println queues text plus a flush of pane id as one command, so no other
// producer's output lands in between.
func (b *Bridge) Println(id int, text string) error {
	if err := b.validate(id); err != nil {
		return err
	}
	b.send(command{kind: cmdPrintln, id: id, text: text})
	return nil
}

// Flush queues a flush and redraw of pane id.
func (b *Bridge) Flush(id int) error {
	if err := b.validate(id); err != nil {
		return err
	}
	b.send(command{kind: cmdFlush, id: id})
	return nil
}

// IDs returns the identities this bridge accepts, ascending.
func (b *Bridge) IDs() []int {
	ids := make([]int, 0, len(b.core.ids))
	for id := 0; id < MaxPanes; id++ {
		if _, ok := b.core.ids[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Clone returns a new handle to the same canvas and raises the live count.
func (b *Bridge) Clone() *Bridge {
	b.send(command{kind: cmdRetain})
	return &Bridge{core: b.core}
}

// Close releases this handle. Further calls on the same handle are no-ops.
func (b *Bridge) Close() {
	if b.closed.Swap(true) {
		return
	}
	b.send(command{kind: cmdRelease})
}

// Kill stops the owner goroutine regardless of outstanding handles. Commands
// sent afterwards are dropped.
func (b *Bridge) Kill() {
	b.send(command{kind: cmdKill})
}

// Done is closed once the owner goroutine has exited and released the canvas.
func (b *Bridge) Done() <-chan struct{} {
	return b.core.done
}
