package core

import (
	"errors"

	"github.com/comalice/headlessx/internal/primitives"
)

// outcome is the result of interpreting one event against a state and context.
type outcome[C any] struct {
	matched bool
	from    string
	to      string
	ctx     C
	trans   *primitives.TransitionConfig[C]
}

// step interprets evt without touching the caller's context: payload check,
// transition selection, then actions on a working copy. Any failure leaves
// nothing to commit.
func step[C any](spec *primitives.MachineSpec[C], state string, ctx C, evt primitives.Event) (outcome[C], error) {
	out := outcome[C]{from: state, to: state}
	if err := spec.CheckPayload(evt); err != nil {
		return out, err
	}
	trans, ok := spec.FindTransition(state, ctx, evt)
	if !ok {
		return out, nil
	}
	work := spec.CloneContext(ctx)
	for _, action := range trans.Actions {
		if err := action(&work, evt); err != nil {
			return out, actionError(spec.ID, evt, err)
		}
	}
	out.matched = true
	out.trans = trans
	out.ctx = work
	if trans.Target != "" {
		out.to = trans.Target
	}
	return out, nil
}

func actionError(widget string, evt primitives.Event, err error) error {
	var perr *primitives.Error
	if errors.As(err, &perr) {
		return err
	}
	return &primitives.Error{Op: widget + ".send " + evt.Type, Kind: primitives.KindInvalidPayload, Err: err}
}
