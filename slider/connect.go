package slider

import (
	"slices"
	"strconv"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/primitives"
	"github.com/comalice/headlessx/normalize"
)

// API is the projection of one slider snapshot.
type API struct {
	state    headlessx.Snapshot[Context]
	dispatch headlessx.Dispatch
	n        normalize.Normalizer
	ctx      Context

	Value        []float64
	Min          float64
	Max          float64
	Step         float64
	Disabled     bool
	Dragging     bool
	Focused      bool
	FocusedIndex int
}

// Connect projects state into an API.
func Connect(state headlessx.Snapshot[Context], dispatch headlessx.Dispatch, n normalize.Normalizer) (*API, error) {
	if err := state.RequireLive(Name + ".connect"); err != nil {
		return nil, err
	}
	if err := normalize.Require(Name+".connect", n, normalize.Element, normalize.Label, normalize.Input); err != nil {
		return nil, err
	}
	c := state.Context
	return &API{
		state:        state,
		dispatch:     dispatch,
		n:            n,
		ctx:          c,
		Value:        slices.Clone(c.Value),
		Min:          c.Min,
		Max:          c.EffectiveMax(),
		Step:         c.Step,
		Disabled:     c.Disabled,
		Dragging:     state.Matches(Dragging),
		Focused:      state.Matches(Focus, Dragging),
		FocusedIndex: c.FocusedIndex,
	}, nil
}

// ThumbValue returns the value of thumb i, or Min when i is out of range.
func (a *API) ThumbValue(i int) float64 {
	if i < 0 || i >= len(a.ctx.Value) {
		return a.ctx.Min
	}
	return a.ctx.Value[i]
}

// ThumbPercent returns thumb i's position on 0..100.
func (a *API) ThumbPercent(i int) float64 {
	return a.ctx.Percent(a.ThumbValue(i))
}

// SetValue replaces every thumb value.
func (a *API) SetValue(values []float64) error {
	return a.dispatch(headlessx.NewEvent(EventValueSet, map[string]any{"value": slices.Clone(values)}))
}

// SetThumbValue sets thumb i.
func (a *API) SetThumbValue(i int, v float64) error {
	return a.dispatch(headlessx.NewEvent(EventThumbSet, map[string]any{"index": i, "value": v}))
}

// Increment moves thumb i up one step.
func (a *API) Increment(i int) error {
	return a.dispatch(headlessx.NewEvent(EventValueIncrement, map[string]any{"index": i}))
}

// Decrement moves thumb i down one step.
func (a *API) Decrement(i int) error {
	return a.dispatch(headlessx.NewEvent(EventValueDecrement, map[string]any{"index": i}))
}

func (a *API) id(parts ...string) string {
	return dom.ID(Name, a.state.ID, parts...)
}

func (a *API) part(name string, extra dom.Props) dom.Props {
	return dom.Part(Name, name).Merge(dom.Props{
		"data-disabled":    dom.DataAttr(a.ctx.Disabled),
		"data-readonly":    dom.DataAttr(a.ctx.ReadOnly),
		"data-invalid":     dom.DataAttr(a.ctx.Invalid),
		"data-dragging":    dom.DataAttr(a.Dragging),
		"data-focus":       dom.DataAttr(a.Focused),
		"data-orientation": a.ctx.Orientation,
	}).Merge(extra).Compact()
}

// RootProps is the outer element.
func (a *API) RootProps() dom.Props {
	return a.n.Element(a.part("root", dom.Props{"id": a.id()}))
}

// LabelProps labels the first thumb's input.
func (a *API) LabelProps() dom.Props {
	return a.n.Label(a.part("label", dom.Props{
		"id":      a.id("label"),
		"htmlFor": a.id("input", "0"),
	}))
}

// ControlProps is the interactive area; pointer events carry the value
// under the pointer in HostEvent.Value.
func (a *API) ControlProps() dom.Props {
	return a.n.Element(a.part("control", dom.Props{
		"id": a.id("control"),
		"onPointerDown": dom.Handler(func(evt dom.HostEvent) error {
			v, err := parseValue(evt)
			if err != nil {
				return err
			}
			return a.dispatch(headlessx.NewEvent(EventPointerDown, map[string]any{"value": v}))
		}),
		"onPointerMove": dom.Handler(func(evt dom.HostEvent) error {
			v, err := parseValue(evt)
			if err != nil {
				return err
			}
			return a.dispatch(headlessx.NewEvent(EventPointerMove, map[string]any{"value": v}))
		}),
		"onPointerUp": dom.Handler(func(dom.HostEvent) error {
			return a.dispatch(headlessx.NewEvent(EventPointerUp, nil))
		}),
	}))
}

// TrackProps is the rail behind the range.
func (a *API) TrackProps() dom.Props {
	return a.n.Element(a.part("track", dom.Props{"id": a.id("track")}))
}

// RangeProps is the filled section of the track.
func (a *API) RangeProps() dom.Props {
	start, end := a.ctx.Min, a.ThumbValue(0)
	if len(a.ctx.Value) > 1 {
		start, end = a.ctx.Value[0], a.ctx.Value[len(a.ctx.Value)-1]
	}
	return a.n.Element(a.part("range", dom.Props{
		"id":         a.id("range"),
		"data-start": a.ctx.Percent(start),
		"data-end":   a.ctx.Percent(end),
	}))
}

// ThumbProps is the draggable handle of thumb i.
func (a *API) ThumbProps(i int) dom.Props {
	lo, hi := a.ctx.Min, a.ctx.EffectiveMax()
	if i >= 0 && i < len(a.ctx.Value) {
		lo, hi = a.ctx.thumbBounds(i)
	}
	tabIndex := 0
	if a.ctx.Disabled {
		tabIndex = -1
	}
	idx := strconv.Itoa(i)
	return a.n.Element(a.part("thumb", dom.Props{
		"id":               a.id("thumb", idx),
		"role":             "slider",
		"data-index":       i,
		"tabIndex":         tabIndex,
		"aria-valuemin":    lo,
		"aria-valuemax":    hi,
		"aria-valuenow":    a.ThumbValue(i),
		"aria-valuetext":   formatValue(a.ThumbValue(i)),
		"aria-orientation": a.ctx.Orientation,
		"aria-disabled":    a.ctx.Disabled,
		"aria-readonly":    a.ctx.ReadOnly,
		"aria-labelledby":  a.id("label"),
		"onKeyDown": dom.Handler(func(evt dom.HostEvent) error {
			name, ok := keyEvents[evt.Key]
			if !ok {
				return nil
			}
			return a.dispatch(headlessx.NewEvent(name, map[string]any{"index": i}))
		}),
		"onFocus": dom.Handler(func(dom.HostEvent) error {
			return a.dispatch(headlessx.NewEvent(EventFocus, map[string]any{"index": i}))
		}),
		"onBlur": dom.Handler(func(dom.HostEvent) error {
			return a.dispatch(headlessx.NewEvent(EventBlur, nil))
		}),
	}))
}

var keyEvents = map[string]string{
	"ArrowRight": EventValueIncrement,
	"ArrowUp":    EventValueIncrement,
	"PageUp":     EventValueIncrement,
	"ArrowLeft":  EventValueDecrement,
	"ArrowDown":  EventValueDecrement,
	"PageDown":   EventValueDecrement,
	"Home":       EventHome,
	"End":        EventEnd,
}

// HiddenInputProps is the form input of thumb i.
func (a *API) HiddenInputProps(i int) dom.Props {
	name := a.ctx.Name
	if name != "" && len(a.ctx.Value) > 1 {
		name = name + "[" + strconv.Itoa(i) + "]"
	}
	return a.n.Input(dom.Props{
		"id":        a.id("input", strconv.Itoa(i)),
		"type":      "text",
		"inputMode": "numeric",
		"name":      name,
		"value":     formatValue(a.ThumbValue(i)),
		"disabled":  a.ctx.Disabled,
		"hidden":    true,
	})
}

// ValueTextProps renders the current value.
func (a *API) ValueTextProps() dom.Props {
	return a.n.Element(a.part("value-text", dom.Props{"id": a.id("value-text")}))
}

func parseValue(evt dom.HostEvent) (float64, error) {
	v, err := strconv.ParseFloat(evt.Value, 64)
	if err != nil {
		return 0, &primitives.Error{Op: Name + " " + evt.Type, Kind: primitives.KindInvalidPayload, Err: err}
	}
	return v, nil
}
