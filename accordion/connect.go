package accordion

import (
	"slices"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/normalize"
)

// API is the projection of one accordion snapshot.
type API struct {
	state    headlessx.Snapshot[Context]
	dispatch headlessx.Dispatch
	n        normalize.Normalizer
	ctx      Context

	Value        []string
	FocusedValue string
	Multiple     bool
	Disabled     bool
	Orientation  string
}

// Connect projects state into an API. An accordion needs the element and
// button categories.
func Connect(state headlessx.Snapshot[Context], dispatch headlessx.Dispatch, n normalize.Normalizer) (*API, error) {
	if err := state.RequireLive(Name + ".connect"); err != nil {
		return nil, err
	}
	if err := normalize.Require(Name+".connect", n, normalize.Element, normalize.Button); err != nil {
		return nil, err
	}
	c := state.Context
	return &API{
		state:        state,
		dispatch:     dispatch,
		n:            n,
		ctx:          c,
		Value:        slices.Clone(c.Value),
		FocusedValue: c.FocusedValue,
		Multiple:     c.Multiple,
		Disabled:     c.Disabled,
		Orientation:  c.Orientation,
	}, nil
}

func (a *API) send(eventType string, payload map[string]any) error {
	return a.dispatch(headlessx.NewEvent(eventType, payload))
}

// SetValue replaces the expanded set. A single accordion keeps the first value.
func (a *API) SetValue(values []string) error {
	return a.send(EventValueSet, map[string]any{"value": slices.Clone(values)})
}

// ItemState describes one item relative to the snapshot.
type ItemState struct {
	Expanded bool
	Focused  bool
	Disabled bool
}

// ItemState returns the state of the item value.
func (a *API) ItemState(value string) ItemState {
	return ItemState{
		Expanded: a.ctx.Expanded(value),
		Focused:  a.ctx.FocusedValue == value,
		Disabled: a.ctx.ItemDisabled(value),
	}
}

func (a *API) id(parts ...string) string {
	return dom.ID(Name, a.state.ID, parts...)
}

func (a *API) part(name string, extra dom.Props) dom.Props {
	return dom.Part(Name, name).Merge(dom.Props{
		"data-orientation": a.ctx.Orientation,
	}).Merge(extra).Compact()
}

func (a *API) itemPart(name, value string, extra dom.Props) dom.Props {
	st := a.ItemState(value)
	return a.part(name, dom.Props{
		"data-state":    dom.OpenState(st.Expanded),
		"data-focus":    dom.DataAttr(st.Focused),
		"data-disabled": dom.DataAttr(st.Disabled),
	}).Merge(extra)
}

// RootProps is the outer element.
func (a *API) RootProps() dom.Props {
	return a.n.Element(a.part("root", dom.Props{"id": a.id()}))
}

// ItemProps wraps the trigger and content of value.
func (a *API) ItemProps(value string) dom.Props {
	return a.n.Element(a.itemPart("item", value, dom.Props{
		"id": a.id("item", value),
	}))
}

var triggerKeys = map[string]map[string]string{
	"vertical":   {"ArrowDown": EventGotoNext, "ArrowUp": EventGotoPrev, "Home": EventGotoFirst, "End": EventGotoLast},
	"horizontal": {"ArrowRight": EventGotoNext, "ArrowLeft": EventGotoPrev, "Home": EventGotoFirst, "End": EventGotoLast},
}

// ItemTriggerProps is the button toggling value.
func (a *API) ItemTriggerProps(value string) dom.Props {
	st := a.ItemState(value)
	payload := map[string]any{"value": value}
	return a.n.Button(a.itemPart("item-trigger", value, dom.Props{
		"id":            a.id("trigger", value),
		"type":          "button",
		"disabled":      st.Disabled,
		"aria-controls": a.id("content", value),
		"aria-expanded": st.Expanded,
		"aria-disabled": st.Disabled || (st.Expanded && !a.ctx.Multiple && !a.ctx.Collapsible),
		"onClick": dom.Handler(func(dom.HostEvent) error {
			if st.Disabled {
				return nil
			}
			return a.send(EventTriggerClick, payload)
		}),
		"onFocus": dom.Handler(func(dom.HostEvent) error {
			if st.Disabled {
				return nil
			}
			return a.send(EventTriggerFocus, payload)
		}),
		"onBlur": dom.Handler(func(dom.HostEvent) error {
			return a.send(EventTriggerBlur, nil)
		}),
		"onKeyDown": dom.Handler(func(evt dom.HostEvent) error {
			name, ok := triggerKeys[a.ctx.Orientation][evt.Key]
			if !ok || st.Disabled {
				return nil
			}
			return a.send(name, nil)
		}),
	}))
}

// ItemContentProps is the collapsible region of value.
func (a *API) ItemContentProps(value string) dom.Props {
	st := a.ItemState(value)
	return a.n.Element(a.itemPart("item-content", value, dom.Props{
		"id":              a.id("content", value),
		"role":            "region",
		"hidden":          !st.Expanded,
		"aria-labelledby": a.id("trigger", value),
	}))
}

// ItemIndicatorProps is the expand/collapse marker of value.
func (a *API) ItemIndicatorProps(value string) dom.Props {
	return a.n.Element(a.itemPart("item-indicator", value, dom.Props{
		"aria-hidden": true,
	}))
}
