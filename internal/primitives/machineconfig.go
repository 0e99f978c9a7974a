package primitives

import (
	"errors"
	"fmt"
	"sort"
)

// PayloadCheck validates the payload of an event before any transition runs.
type PayloadCheck func(evt Event) error

// Computed derives a value from context and current state. Derived values are never stored.
type Computed[C any] func(ctx C, state string) any

// MachineSpec is the immutable description of a widget type: its states,
// transitions, payload schema and derived properties. One spec is built per
// widget type and shared by every instance of that type.
type MachineSpec[C any] struct {
	// ID is the widget name and the root of every generated element id.
	ID string
	// Initial is the state entered on start unless InitialFn chooses another.
	Initial   string
	InitialFn func(ctx C) string
	States    map[string]*StateConfig[C]
	// Global transitions are consulted after the current state's own.
	Global   *StateConfig[C]
	Payloads map[string]PayloadCheck
	Computed map[string]Computed[C]
	// Clone deep-copies a context so actions can run on a working copy.
	// Nil means C is safe to copy by assignment.
	Clone func(C) C
}

// Validate checks the chart:
// - Non-empty ID and Initial
// - Initial exists in States
// - All states validate
// - All transition targets exist in States
func (m *MachineSpec[C]) Validate() error {
	if m.ID == "" {
		return errors.New("machine ID is required")
	}
	if m.Initial == "" {
		return errors.New("initial state is required")
	}
	if len(m.States) == 0 {
		return errors.New("states map is required and cannot be empty")
	}
	if _, ok := m.States[m.Initial]; !ok {
		return fmt.Errorf("initial state %q not found in states", m.Initial)
	}
	for sid, state := range m.States {
		if state.ID != sid {
			return fmt.Errorf("state %q registered under %q", state.ID, sid)
		}
		if err := state.Validate(); err != nil {
			return fmt.Errorf("state %q validation failed: %w", sid, err)
		}
		if err := m.checkTargets(state); err != nil {
			return err
		}
	}
	if m.Global != nil {
		if err := m.checkTargets(m.Global); err != nil {
			return err
		}
	}
	return nil
}

func (m *MachineSpec[C]) checkTargets(state *StateConfig[C]) error {
	for event, transitions := range state.On {
		for i, trans := range transitions {
			if trans.Target == "" {
				continue
			}
			if _, exists := m.States[trans.Target]; !exists {
				return fmt.Errorf("invalid transition target %q (state %q, event %q, transition %d)", trans.Target, state.ID, event, i)
			}
		}
	}
	return nil
}

// InitialState resolves the state entered on start.
func (m *MachineSpec[C]) InitialState(ctx C) (string, error) {
	initial := m.Initial
	if m.InitialFn != nil {
		initial = m.InitialFn(ctx)
	}
	if _, ok := m.States[initial]; !ok {
		return "", fmt.Errorf("initial state %q not found in states", initial)
	}
	return initial, nil
}

// FindTransition finds the transition taken for evt from state, checking the
// state's own transitions before the global ones.
func (m *MachineSpec[C]) FindTransition(state string, ctx C, evt Event) (*TransitionConfig[C], bool) {
	if t, ok := m.States[state].Pick(ctx, evt); ok {
		return t, true
	}
	return m.Global.Pick(ctx, evt)
}

// CheckPayload runs the payload validator declared for evt's type, if any.
func (m *MachineSpec[C]) CheckPayload(evt Event) error {
	check, ok := m.Payloads[evt.Type]
	if !ok || check == nil {
		return nil
	}
	return check(evt)
}

// CloneContext returns a working copy of ctx.
func (m *MachineSpec[C]) CloneContext(ctx C) C {
	if m.Clone == nil {
		return ctx
	}
	return m.Clone(ctx)
}

// Derive evaluates every computed property, keyed by name.
func (m *MachineSpec[C]) Derive(ctx C, state string) map[string]any {
	out := make(map[string]any, len(m.Computed))
	for name, fn := range m.Computed {
		out[name] = fn(ctx, state)
	}
	return out
}

// StateNames returns the state names sorted with the initial state first.
func (m *MachineSpec[C]) StateNames() []string {
	names := make([]string, 0, len(m.States))
	for name := range m.States {
		if name != m.Initial {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{m.Initial}, names...)
}

// Chart returns the non-generic view of m used by visualizers.
func (m *MachineSpec[C]) Chart() Chart {
	chart := Chart{
		ID:      m.ID,
		Initial: m.Initial,
		States:  m.StateNames(),
	}
	for _, name := range chart.States {
		chart.Edges = append(chart.Edges, edgesOf(m.States[name], name, "")...)
	}
	if m.Global != nil {
		for _, name := range chart.States {
			chart.Edges = append(chart.Edges, edgesOf(m.Global, name, "*")...)
		}
	}
	for event := range m.Payloads {
		chart.Events = append(chart.Events, event)
	}
	sort.Strings(chart.Events)
	return chart
}

func edgesOf[C any](state *StateConfig[C], from, marker string) []Edge {
	var edges []Edge
	for _, event := range state.Events() {
		for _, trans := range state.On[event] {
			to := trans.Target
			if to == "" {
				to = from
			}
			edges = append(edges, Edge{
				From:    from,
				To:      to,
				Event:   event,
				Guarded: trans.Guard != nil,
				Global:  marker != "",
			})
		}
	}
	return edges
}
