// Package testutil provides helpers for driving widget machines in tests.
package testutil

import (
	"testing"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/normalize"
)

// ConnectFunc is the signature shared by every widget's Connect.
type ConnectFunc[C, A any] func(headlessx.Snapshot[C], headlessx.Dispatch, normalize.Normalizer) (A, error)

// Harness drives one started widget instance and re-connects on demand.
type Harness[C, A any] struct {
	M       *headlessx.Machine[C]
	N       normalize.Normalizer
	connect ConnectFunc[C, A]
}

// Start starts m and returns a harness connecting with normalize.Identity.
func Start[C, A any](t testing.TB, m *headlessx.Machine[C], connect ConnectFunc[C, A]) *Harness[C, A] {
	t.Helper()
	if err := m.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	return &Harness[C, A]{M: m, N: normalize.Identity, connect: connect}
}

// API connects the current snapshot.
func (h *Harness[C, A]) API(t testing.TB) A {
	t.Helper()
	api, err := h.connect(h.M.State(), h.M.Send, h.N)
	if err != nil {
		t.Fatalf("Connect() = %v", err)
	}
	return api
}

// Send dispatches an event and fails the test on error.
func (h *Harness[C, A]) Send(t testing.TB, eventType string, payload map[string]any) {
	t.Helper()
	if err := h.M.Send(headlessx.NewEvent(eventType, payload)); err != nil {
		t.Fatalf("Send(%s) = %v", eventType, err)
	}
}

// Context returns the current context.
func (h *Harness[C, A]) Context() C {
	return h.M.State().Context
}

// StateValue returns the current state name.
func (h *Harness[C, A]) StateValue() string {
	return h.M.State().Value
}

// Fire invokes the named handler of p and fails the test on error.
func Fire(t testing.TB, p dom.Props, handler string, evt dom.HostEvent) {
	t.Helper()
	h := p.Handler(handler)
	if h == nil {
		t.Fatalf("props have no %s handler (keys %v)", handler, p.Keys())
	}
	if err := h(evt); err != nil {
		t.Fatalf("%s(%+v) = %v", handler, evt, err)
	}
}
