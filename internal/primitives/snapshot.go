package primitives

// Snapshot is the state a connect function projects: instance id, current
// state name and a copy of the context. A snapshot never changes after it is
// taken; dispatching produces a new one.
type Snapshot[C any] struct {
	Widget  string
	ID      string
	Value   string
	Context C
	Live    bool
}

// Matches reports whether the snapshot is in any of the given states.
func (s Snapshot[C]) Matches(states ...string) bool {
	for _, st := range states {
		if s.Value == st {
			return true
		}
	}
	return false
}

// RequireLive returns a KindInvalidLifecycle error when the snapshot was
// taken from an instance that has not been started.
func (s Snapshot[C]) RequireLive(op string) error {
	if s.Live {
		return nil
	}
	return NewError(op, KindInvalidLifecycle, "%s %q has not been started", s.Widget, s.ID)
}

// Dispatch sends an event into a machine.
type Dispatch func(evt Event) error
