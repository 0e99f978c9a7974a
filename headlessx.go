// Package headlessx drives accessible, headless UI widget machines.
//
// Each widget package (checkbox, toggle, slider, dropdown, dialog, menu,
// tabs, accordion) exposes New, which builds a Machine for one instance, and
// Connect, which projects a Snapshot into a renderer-agnostic API of props.
// A host starts the machine, connects, renders the props, and re-connects
// after every dispatched event:
//
//	m := checkbox.New(checkbox.Options{ID: "terms"})
//	if err := m.Start(); err != nil { ... }
//	api, err := checkbox.Connect(m.State(), m.Send, normalize.Identity)
//
// Send is synchronous and an instance must be confined to one goroutine.
package headlessx

import (
	"log/slog"

	"github.com/comalice/headlessx/internal/core"
	"github.com/comalice/headlessx/internal/primitives"
)

// Machine is one widget instance.
type Machine[C any] = core.Machine[C]

// Snapshot is the immutable view of an instance a connect function projects.
type Snapshot[C any] = primitives.Snapshot[C]

// Spec is the immutable chart of a widget type.
type Spec[C any] = primitives.MachineSpec[C]

// Event is a type name plus payload.
type Event = primitives.Event

// Dispatch sends an event into a machine.
type Dispatch = primitives.Dispatch

// Option configures a Machine.
type Option = core.Option

// Record is the serializable form of an instance.
type Record = core.Record

// Publisher receives committed transitions.
type Publisher = core.Publisher

// Persister stores instance records.
type Persister = core.Persister

// Chart is the context-free shape of a Spec.
type Chart = primitives.Chart

// Error is the structured error returned by machines and connect functions.
type Error = primitives.Error

// Error sentinels, matched with errors.Is.
var (
	ErrInvalidLifecycle  = primitives.ErrInvalidLifecycle
	ErrInvalidPayload    = primitives.ErrInvalidPayload
	ErrMissingNormalizer = primitives.ErrMissingNormalizer
	ErrInvalidSpec       = primitives.ErrInvalidSpec
)

// NewEvent creates an Event.
func NewEvent(eventType string, payload map[string]any) Event {
	return primitives.NewEvent(eventType, payload)
}

// NewMachine creates an instance of spec. Widget packages wrap this.
func NewMachine[C any](spec *Spec[C], id string, ctx C, opts ...Option) *Machine[C] {
	return core.NewMachine(spec, id, ctx, opts...)
}

// WithLogger configures structured logging of dispatches.
func WithLogger(l *slog.Logger) Option {
	return core.WithLogger(l)
}

// WithPublisher configures a transition publisher.
func WithPublisher(p Publisher) Option {
	return core.WithPublisher(p)
}

// WithPersister configures a record persister.
func WithPersister(p Persister) Option {
	return core.WithPersister(p)
}

// Version is the library version reported by the CLI.
const Version = "0.3.0"
