package primitives

import "fmt"

// SpecBuilder builds a MachineSpec fluently.
type SpecBuilder[C any] struct {
	spec *MachineSpec[C]
}

// NewSpecBuilder creates a new SpecBuilder for the widget id with the given initial state.
func NewSpecBuilder[C any](id, initial string) *SpecBuilder[C] {
	return &SpecBuilder[C]{
		spec: &MachineSpec[C]{
			ID:       id,
			Initial:  initial,
			States:   make(map[string]*StateConfig[C]),
			Payloads: make(map[string]PayloadCheck),
			Computed: make(map[string]Computed[C]),
		},
	}
}

// State creates or retrieves a state by name.
func (b *SpecBuilder[C]) State(id string) *StateBuilder[C] {
	s, ok := b.spec.States[id]
	if !ok {
		s = NewStateConfig[C](id)
		b.spec.States[id] = s
	}
	return &StateBuilder[C]{state: s, b: b}
}

// Global returns the builder for transitions valid in every state.
func (b *SpecBuilder[C]) Global() *StateBuilder[C] {
	if b.spec.Global == nil {
		b.spec.Global = NewStateConfig[C]("*")
	}
	return &StateBuilder[C]{state: b.spec.Global, b: b}
}

// InitialFn picks the initial state from the instance context.
func (b *SpecBuilder[C]) InitialFn(fn func(C) string) *SpecBuilder[C] {
	b.spec.InitialFn = fn
	return b
}

// Expect declares the payload validator for an event type.
func (b *SpecBuilder[C]) Expect(event string, check PayloadCheck) *SpecBuilder[C] {
	b.spec.Payloads[event] = check
	return b
}

// Computed registers a derived property.
func (b *SpecBuilder[C]) Computed(name string, fn Computed[C]) *SpecBuilder[C] {
	b.spec.Computed[name] = fn
	return b
}

// Clone sets the deep-copy function for the context.
func (b *SpecBuilder[C]) Clone(fn func(C) C) *SpecBuilder[C] {
	b.spec.Clone = fn
	return b
}

// Build validates and returns the MachineSpec.
func (b *SpecBuilder[C]) Build() (*MachineSpec[C], error) {
	if err := b.spec.Validate(); err != nil {
		return nil, &Error{Op: "build " + b.spec.ID, Kind: KindInvalidSpec, Err: err}
	}
	return b.spec, nil
}

// MustBuild is Build for package-level specs; it panics on an invalid spec.
func (b *SpecBuilder[C]) MustBuild() *MachineSpec[C] {
	spec, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("primitives: %v", err))
	}
	return spec
}

// StateBuilder for fluent transitions.
type StateBuilder[C any] struct {
	state *StateConfig[C]
	b     *SpecBuilder[C]
}

// On adds a transition to target when event occurs.
// guard may be nil; an empty target keeps the current state.
func (sb *StateBuilder[C]) On(event, target string, guard Guard[C], actions ...Action[C]) *StateBuilder[C] {
	sb.state.AddTransition(TransitionConfig[C]{
		Event:   event,
		Target:  target,
		Guard:   guard,
		Actions: actions,
	})
	return sb
}

// Transition adds a fully specified transition. trans.Event is set to event.
func (sb *StateBuilder[C]) Transition(event string, trans TransitionConfig[C]) *StateBuilder[C] {
	trans.Event = event
	sb.state.AddTransition(trans)
	return sb
}

// State returns to the parent builder for a sibling state.
func (sb *StateBuilder[C]) State(id string) *StateBuilder[C] {
	return sb.b.State(id)
}
