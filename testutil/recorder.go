package testutil

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/normalize"
)

// Recorder is a Dispatch that records events instead of applying them.
type Recorder struct {
	Events []headlessx.Event
	Err    error
}

// Dispatch records evt and returns r.Err.
func (r *Recorder) Dispatch(evt headlessx.Event) error {
	r.Events = append(r.Events, evt)
	return r.Err
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}

// CountingNormalizer counts calls per category and can omit categories.
type CountingNormalizer struct {
	Counts  map[normalize.Category]int
	missing map[normalize.Category]bool
}

// NewCountingNormalizer returns a normalizer lacking the given categories.
func NewCountingNormalizer(missing ...normalize.Category) *CountingNormalizer {
	n := &CountingNormalizer{
		Counts:  make(map[normalize.Category]int),
		missing: make(map[normalize.Category]bool),
	}
	for _, c := range missing {
		n.missing[c] = true
	}
	return n
}

// Supports reports whether c was not omitted.
func (n *CountingNormalizer) Supports(c normalize.Category) bool {
	return !n.missing[c]
}

func (n *CountingNormalizer) count(c normalize.Category, p dom.Props) dom.Props {
	n.Counts[c]++
	return p
}

func (n *CountingNormalizer) Element(p dom.Props) dom.Props { return n.count(normalize.Element, p) }
func (n *CountingNormalizer) Label(p dom.Props) dom.Props   { return n.count(normalize.Label, p) }
func (n *CountingNormalizer) Input(p dom.Props) dom.Props   { return n.count(normalize.Input, p) }
func (n *CountingNormalizer) Button(p dom.Props) dom.Props  { return n.count(normalize.Button, p) }
