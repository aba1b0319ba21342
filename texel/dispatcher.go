// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/dispatcher.go
// Summary: Synchronous event fan-out for canvas observers.
// Usage: Listeners run on whichever goroutine mutates the canvas; once a
// Bridge owns the canvas that is the bridge goroutine.

package texel

import "sync"

// EventType defines the type of an event.
type EventType int

const (
	// EventPaneSplit carries a SplitPayload.
	EventPaneSplit EventType = iota
	// EventPaneFlushed carries a FlushPayload.
	EventPaneFlushed
	// EventRendered carries a RenderPayload.
	EventRendered
)

// Event represents a message passed through the dispatcher.
type Event struct {
	Type    EventType
	Payload interface{}
}

// SplitPayload describes a new pane created by a split.
type SplitPayload struct {
	Parent      int
	Child       int
	Orientation Orientation // orientation of this split, not the parent's locked one
}

// FlushPayload describes a line sealed into a pane buffer.
type FlushPayload struct {
	PaneID   int
	PaneName string
	Line     string
}

// RenderPayload describes a completed render pass.
type RenderPayload struct {
	Width  int
	Height int
}

// Listener is implemented by anything that wants canvas events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f(event).
func (f ListenerFunc) OnEvent(event Event) { f(event) }

// EventDispatcher manages a list of listeners and broadcasts events to them.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{}
}

// Subscribe adds a new listener to receive events.
func (d *EventDispatcher) Subscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Unsubscribe removes a listener. Listeners must be comparable, so a
// ListenerFunc cannot be unsubscribed.
func (d *EventDispatcher) Unsubscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l == listener {
			// Copy so a Broadcast iterating the old slice is unaffected.
			next := make([]Listener, 0, len(d.listeners)-1)
			next = append(next, d.listeners[:i]...)
			d.listeners = append(next, d.listeners[i+1:]...)
			break
		}
	}
}

// Broadcast sends an event to all subscribed listeners in subscription order.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	listeners := d.listeners
	d.mu.RUnlock()
	for _, l := range listeners {
		l.OnEvent(event)
	}
}
