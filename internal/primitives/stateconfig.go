package primitives

import (
	"errors"
	"fmt"
	"strings"
)

// StateConfig defines one named state of a widget chart and its transitions.
type StateConfig[C any] struct {
	ID    string
	On    map[string][]TransitionConfig[C]
	order []string
}

// NewStateConfig creates a new StateConfig with ID.
func NewStateConfig[C any](id string) *StateConfig[C] {
	return &StateConfig[C]{
		ID: id,
		On: make(map[string][]TransitionConfig[C]),
	}
}

// AddTransition adds a transition for an event.
func (s *StateConfig[C]) AddTransition(trans TransitionConfig[C]) *StateConfig[C] {
	if s.On == nil {
		s.On = make(map[string][]TransitionConfig[C])
	}
	if _, seen := s.On[trans.Event]; !seen {
		s.order = append(s.order, trans.Event)
	}
	s.On[trans.Event] = append(s.On[trans.Event], trans)
	SortTransitions(s.On[trans.Event])
	return s
}

// Events returns the event names handled by this state in declaration order.
func (s *StateConfig[C]) Events() []string {
	return append([]string(nil), s.order...)
}

// Pick returns the first transition for evt whose guard passes.
func (s *StateConfig[C]) Pick(ctx C, evt Event) (*TransitionConfig[C], bool) {
	if s == nil {
		return nil, false
	}
	list := s.On[evt.Type]
	for i := range list {
		if list[i].Allows(ctx, evt) {
			return &list[i], true
		}
	}
	return nil, false
}

// Validate checks the state and each of its transitions.
func (s *StateConfig[C]) Validate() error {
	if s.ID == "" {
		return errors.New("state ID is required")
	}
	for event, transitions := range s.On {
		if strings.TrimSpace(event) == "" {
			return fmt.Errorf("empty event name in On map for state %s", s.ID)
		}
		for i := range transitions {
			if err := transitions[i].Validate(); err != nil {
				return fmt.Errorf("state %s transition %d: %w", s.ID, i, err)
			}
			if transitions[i].Event != event {
				return fmt.Errorf("state %s: transition for %q filed under %q", s.ID, transitions[i].Event, event)
			}
		}
	}
	return nil
}
