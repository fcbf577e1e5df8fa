package events

import (
	"errors"
	"testing"
)

func TestDispatchOrder(t *testing.T) {
	d := NewDispatcher()

	var calls []string
	d.Subscribe(func(e EntryEvent) error {
		calls = append(calls, "first")
		return nil
	})
	d.Subscribe(func(e EntryEvent) error {
		calls = append(calls, "second")
		return nil
	})

	d.Dispatch(EntryEvent{Type: EntryCreated, UserID: "u1", EntryID: "e1"})

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("expected handlers in subscription order, got %v", calls)
	}
}

func TestDispatchIsolatesFailures(t *testing.T) {
	d := NewDispatcher()

	ran := false
	d.Subscribe(func(e EntryEvent) error {
		return errors.New("boom")
	})
	d.Subscribe(func(e EntryEvent) error {
		ran = true
		return nil
	})

	d.Dispatch(EntryEvent{Type: EntryDeleted, UserID: "u1", EntryID: "e1"})

	if !ran {
		t.Error("expected later handler to run after a failing one")
	}
}

func TestDispatchNoHandlers(t *testing.T) {
	d := NewDispatcher()
	d.Dispatch(EntryEvent{Type: EntryUpdated})
}
