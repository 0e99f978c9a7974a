// Guards select between transitions declared for the same event; the first
// guard-passing transition by descending Priority wins, ties keeping
// declaration order. Actions mutate a working copy of the context and may
// reject the event by returning an error. Effects observe the committed
// context and never fail.

package primitives

import (
	"fmt"
	"sort"
)

// Guard reports whether a transition applies to the event in the given context.
type Guard[C any] func(ctx C, evt Event) bool

// Action mutates the working context. A non-nil error aborts the whole dispatch.
type Action[C any] func(ctx *C, evt Event) error

// Effect runs after a transition has been committed.
type Effect[C any] func(ctx C, evt Event)

// TransitionConfig defines a single transition triggered by an event.
type TransitionConfig[C any] struct {
	Event    string
	Target   string // empty --> stay in the source state
	Guard    Guard[C]
	Actions  []Action[C]
	Effects  []Effect[C]
	Priority int // higher = evaluated first (default 0)
}

// Validate checks TransitionConfig fields.
func (t *TransitionConfig[C]) Validate() error {
	if t.Event == "" {
		return fmt.Errorf("event is required")
	}
	if t.Priority < 0 {
		return fmt.Errorf("event %q: priority must be non-negative", t.Event)
	}
	return nil
}

// Allows evaluates the guard; transitions without a guard always apply.
func (t *TransitionConfig[C]) Allows(ctx C, evt Event) bool {
	return t.Guard == nil || t.Guard(ctx, evt)
}

// SortTransitions sorts the slice in place by Priority descending (highest first),
// keeping declaration order among equal priorities.
func SortTransitions[C any](transitions []TransitionConfig[C]) {
	sort.SliceStable(transitions, func(i, j int) bool {
		return transitions[i].Priority > transitions[j].Priority
	})
}

// Not negates a guard.
func Not[C any](g Guard[C]) Guard[C] {
	return func(ctx C, evt Event) bool { return !g(ctx, evt) }
}

// And combines guards; all must pass.
func And[C any](guards ...Guard[C]) Guard[C] {
	return func(ctx C, evt Event) bool {
		for _, g := range guards {
			if !g(ctx, evt) {
				return false
			}
		}
		return true
	}
}
