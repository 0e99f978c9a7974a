// Package core provides the runtime tier of the widget machines.
//
// A Machine is one widget instance: an immutable spec shared by every
// instance of the widget type, plus the instance's own id, context and
// current state. Send applies a transition fully before returning; there is
// no queue and no goroutine. The Machine does no locking, so an instance
// must be confined to one goroutine at a time.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/comalice/headlessx/internal/primitives"
)

// Publisher receives every committed transition.
type Publisher interface {
	Publish(ctx context.Context, event primitives.Event, metadata Metadata) error
	Close() error
}

// Persister stores instance records.
type Persister interface {
	Save(ctx context.Context, record Record) error
	Load(ctx context.Context, key string) (Record, error)
}

// Metadata describes one committed transition.
type Metadata struct {
	Widget    string    `json:"widget" yaml:"widget"`
	ID        string    `json:"id" yaml:"id"`
	From      string    `json:"from" yaml:"from"`
	To        string    `json:"to" yaml:"to"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Record is the serializable form of an instance.
type Record struct {
	Widget      string         `json:"widget" yaml:"widget"`
	ID          string         `json:"id" yaml:"id"`
	State       string         `json:"state" yaml:"state"`
	Context     any            `json:"context" yaml:"context"`
	Computed    map[string]any `json:"computed,omitempty" yaml:"computed,omitempty"`
	SpecVersion string         `json:"specVersion" yaml:"specVersion"`
	Timestamp   time.Time      `json:"timestamp" yaml:"timestamp"`
}

// Key returns the storage key of the record.
func (r Record) Key() string {
	return RecordKey(r.Widget, r.ID)
}

// RecordKey is the storage key of the instance id of a widget type.
func RecordKey(widget, id string) string {
	return widget + ":" + id
}

type subscriber[C any] struct {
	id int
	fn func(primitives.Snapshot[C])
}

// Machine is a single widget instance.
type Machine[C any] struct {
	spec    *primitives.MachineSpec[C]
	id      string
	ctx     C
	state   string
	started bool
	version string
	subs    []subscriber[C]
	nextSub int
	options
}

// NewMachine creates an instance of spec with the given id and initial context.
// The instance accepts no events until Start is called.
func NewMachine[C any](spec *primitives.MachineSpec[C], id string, ctx C, opts ...Option) *Machine[C] {
	m := &Machine[C]{
		spec:    spec,
		id:      id,
		ctx:     ctx,
		options: defaultOptions(),
	}
	for _, opt := range opts {
		opt(&m.options)
	}
	return m
}

// Start validates the chart and enters the initial state.
// Idempotent: calling Start on a live instance is a no-op.
func (m *Machine[C]) Start() error {
	if m.started {
		return nil
	}
	op := m.spec.ID + ".start"
	if m.id == "" {
		return primitives.NewError(op, primitives.KindInvalidSpec, "instance id is required")
	}
	if err := m.spec.Validate(); err != nil {
		return &primitives.Error{Op: op, Kind: primitives.KindInvalidSpec, Err: err}
	}
	initial, err := m.spec.InitialState(m.ctx)
	if err != nil {
		return &primitives.Error{Op: op, Kind: primitives.KindInvalidSpec, Err: err}
	}
	m.state = initial
	m.started = true
	m.version = primitives.ChartVersion(m.spec.Chart())
	m.logger.Debug("machine started", "widget", m.spec.ID, "id", m.id, "state", initial)
	m.persist()
	m.notify()
	return nil
}

// Send applies evt synchronously. An event with no matching transition from
// the current state is ignored and returns nil. A malformed payload or a
// failing action returns an error and leaves the instance untouched.
func (m *Machine[C]) Send(evt primitives.Event) error {
	if !m.started {
		return primitives.NewError(m.spec.ID+".send "+evt.Type, primitives.KindInvalidLifecycle,
			"%s %q has not been started", m.spec.ID, m.id)
	}
	out, err := step(m.spec, m.state, m.ctx, evt)
	if err != nil {
		m.logger.Debug("event rejected", "widget", m.spec.ID, "id", m.id, "event", evt.Type, "error", err)
		return err
	}
	if !out.matched {
		m.logger.Debug("event ignored", "widget", m.spec.ID, "id", m.id, "event", evt.Type, "state", m.state)
		return nil
	}
	m.ctx = out.ctx
	m.state = out.to
	m.logger.Debug("transition", "widget", m.spec.ID, "id", m.id, "event", evt.Type, "from", out.from, "to", out.to)

	for _, effect := range out.trans.Effects {
		effect(m.ctx, evt)
	}
	m.persist()
	m.publish(evt, out.from, out.to)
	m.notify()
	return nil
}

// Dispatch returns Send as a primitives.Dispatch.
func (m *Machine[C]) Dispatch() primitives.Dispatch {
	return m.Send
}

// State returns a snapshot of the instance. The snapshot's context is a copy.
func (m *Machine[C]) State() primitives.Snapshot[C] {
	return primitives.Snapshot[C]{
		Widget:  m.spec.ID,
		ID:      m.id,
		Value:   m.state,
		Context: m.spec.CloneContext(m.ctx),
		Live:    m.started,
	}
}

// Started reports whether Start has succeeded.
func (m *Machine[C]) Started() bool {
	return m.started
}

// ID returns the caller-supplied instance id.
func (m *Machine[C]) ID() string {
	return m.id
}

// Spec returns the widget spec the instance runs.
func (m *Machine[C]) Spec() *primitives.MachineSpec[C] {
	return m.spec
}

// Computed evaluates the derived properties for the current state.
func (m *Machine[C]) Computed() map[string]any {
	return m.spec.Derive(m.ctx, m.state)
}

// Subscribe registers fn to be called with a fresh snapshot after Start and
// after every committed transition. The returned func cancels the subscription.
func (m *Machine[C]) Subscribe(fn func(primitives.Snapshot[C])) (cancel func()) {
	id := m.nextSub
	m.nextSub++
	m.subs = append(m.subs, subscriber[C]{id: id, fn: fn})
	return func() {
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

// Record returns the serializable form of the instance.
func (m *Machine[C]) Record() Record {
	return Record{
		Widget:      m.spec.ID,
		ID:          m.id,
		State:       m.state,
		Context:     m.spec.CloneContext(m.ctx),
		Computed:    m.Computed(),
		SpecVersion: m.version,
		Timestamp:   time.Now(),
	}
}

// Load replaces the instance's state and context, marking it live.
// Subscribers are notified; the publisher is not.
func (m *Machine[C]) Load(state string, ctx C) error {
	if _, ok := m.spec.States[state]; !ok {
		return primitives.NewError(m.spec.ID+".load", primitives.KindInvalidSpec, "unknown state %q", state)
	}
	if !m.started {
		if err := m.spec.Validate(); err != nil {
			return &primitives.Error{Op: m.spec.ID + ".load", Kind: primitives.KindInvalidSpec, Err: err}
		}
		m.version = primitives.ChartVersion(m.spec.Chart())
	}
	m.ctx = ctx
	m.state = state
	m.started = true
	m.logger.Debug("machine loaded", "widget", m.spec.ID, "id", m.id, "state", state)
	m.notify()
	return nil
}

func (m *Machine[C]) notify() {
	if len(m.subs) == 0 {
		return
	}
	subs := append([]subscriber[C](nil), m.subs...)
	for _, s := range subs {
		s.fn(m.State())
	}
}

func (m *Machine[C]) persist() {
	if m.persister == nil {
		return
	}
	if err := m.persister.Save(context.Background(), m.Record()); err != nil {
		m.logger.Warn("persist failed", "widget", m.spec.ID, "id", m.id, "error", err)
	}
}

func (m *Machine[C]) publish(evt primitives.Event, from, to string) {
	if m.publisher == nil {
		return
	}
	md := Metadata{
		Widget:    m.spec.ID,
		ID:        m.id,
		From:      from,
		To:        to,
		Timestamp: time.Now(),
	}
	if err := m.publisher.Publish(context.Background(), evt, md); err != nil {
		m.logger.Warn("publish failed", "widget", m.spec.ID, "id", m.id, "event", evt.Type, "error", fmt.Errorf("%s -> %s: %w", from, to, err))
	}
}
