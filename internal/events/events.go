// Package events provides a minimal in-process dispatcher for entry
// lifecycle events. Subscribers run after a successful entry mutation;
// a failing subscriber is logged and never propagates to the caller,
// so derived state stays best-effort and the triggering write stands.
package events

import (
	"daybook/internal/logger"
)

// Type identifies the kind of entry mutation that occurred.
type Type string

const (
	EntryCreated Type = "entry.created"
	EntryUpdated Type = "entry.updated"
	EntryDeleted Type = "entry.deleted"
)

// EntryEvent describes a completed mutation of a single entry.
type EntryEvent struct {
	Type    Type
	UserID  string
	EntryID string
}

// Handler consumes an entry event. Returned errors are logged, not surfaced.
type Handler func(EntryEvent) error

// Dispatcher fans entry events out to registered handlers.
type Dispatcher struct {
	handlers []Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers a handler for all subsequent events.
// Not safe for concurrent use with Dispatch; subscribe during wiring.
func (d *Dispatcher) Subscribe(h Handler) {
	d.handlers = append(d.handlers, h)
}

// Dispatch delivers the event to every handler in subscription order.
// Handler failures are isolated from each other and from the caller.
func (d *Dispatcher) Dispatch(e EntryEvent) {
	for _, h := range d.handlers {
		if err := h(e); err != nil {
			logger.Get().Errorw("entry event handler failed",
				"event", e.Type,
				"user_id", e.UserID,
				"entry_id", e.EntryID,
				"error", err.Error(),
			)
		}
	}
}
