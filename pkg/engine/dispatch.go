package engine

import (
	"log/slog"

	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

// EventHandler consumes decoded events of one category.
type EventHandler func(*protocol.Event)

// Handlers routes events by category. Nil entries drop that category.
type Handlers struct {
	Window   EventHandler
	Pointer  EventHandler
	Keyboard EventHandler
	Gamepad  EventHandler
	Joystick EventHandler
	System   EventHandler
}

// Dispatcher fans decoded events out to per-category handlers. Events from
// categories this build does not know are counted and logged, then dropped.
type Dispatcher struct {
	log      *slog.Logger
	handlers Handlers
	skipped  uint64
}

// NewDispatcher returns a dispatcher over the given handler set.
func NewDispatcher(log *slog.Logger, handlers Handlers) *Dispatcher {
	return &Dispatcher{log: log, handlers: handlers}
}

// Dispatch routes one event.
func (d *Dispatcher) Dispatch(ev *protocol.Event) {
	var h EventHandler
	switch ev.Category {
	case protocol.CategoryWindow:
		h = d.handlers.Window
	case protocol.CategoryPointer:
		h = d.handlers.Pointer
	case protocol.CategoryKeyboard:
		h = d.handlers.Keyboard
	case protocol.CategoryGamepad:
		h = d.handlers.Gamepad
	case protocol.CategoryJoystick:
		h = d.handlers.Joystick
	case protocol.CategorySystem:
		h = d.handlers.System
	default:
		d.skipped++
		d.log.Warn("event from unknown category",
			"category", uint8(ev.Category),
			"kind", ev.Kind,
		)
		return
	}
	if h != nil {
		h(ev)
	}
}

// DispatchAll routes a slice of events in order.
func (d *Dispatcher) DispatchAll(evs []*protocol.Event) {
	for _, ev := range evs {
		d.Dispatch(ev)
	}
}

// SkippedCount returns how many events were dropped for unknown categories.
func (d *Dispatcher) SkippedCount() uint64 {
	return d.skipped
}
