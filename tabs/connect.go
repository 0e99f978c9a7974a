package tabs

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/normalize"
)

// API is the projection of one tabs snapshot.
type API struct {
	state    headlessx.Snapshot[Context]
	dispatch headlessx.Dispatch
	n        normalize.Normalizer
	ctx      Context

	Value        string
	FocusedValue string
	Focused      bool
	Orientation  string
}

// Connect projects state into an API. Tabs need the element and button categories.
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
		Value:        c.Value,
		FocusedValue: c.FocusedValue,
		Focused:      state.Matches(Focused),
		Orientation:  c.Orientation,
	}, nil
}

func (a *API) send(eventType string, payload map[string]any) error {
	return a.dispatch(headlessx.NewEvent(eventType, payload))
}

// SetValue selects the tab value.
func (a *API) SetValue(value string) error {
	return a.send(EventValueSet, map[string]any{"value": value})
}

// TriggerState describes one tab relative to the snapshot.
type TriggerState struct {
	Selected bool
	Focused  bool
	Disabled bool
}

// TriggerState returns the state of the tab value.
func (a *API) TriggerState(value string) TriggerState {
	it, _ := a.ctx.Triggers.Find(value)
	return TriggerState{
		Selected: a.ctx.Value == value,
		Focused:  a.ctx.FocusedValue == value,
		Disabled: it.Disabled,
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

// RootProps is the outer element.
func (a *API) RootProps() dom.Props {
	return a.n.Element(a.part("root", dom.Props{
		"id":         a.id(),
		"data-focus": dom.DataAttr(a.Focused),
	}))
}

// listKeys maps keys to navigation events per orientation.
var listKeys = map[string]map[string]string{
	"horizontal": {"ArrowRight": EventArrowNext, "ArrowLeft": EventArrowPrev, "Home": EventHome, "End": EventEnd},
	"vertical":   {"ArrowDown": EventArrowNext, "ArrowUp": EventArrowPrev, "Home": EventHome, "End": EventEnd},
}

// ListProps is the tablist holding the triggers.
func (a *API) ListProps() dom.Props {
	return a.n.Element(a.part("list", dom.Props{
		"id":               a.id("list"),
		"role":             "tablist",
		"aria-orientation": a.ctx.Orientation,
		"onKeyDown": dom.Handler(func(evt dom.HostEvent) error {
			name, ok := listKeys[a.ctx.Orientation][evt.Key]
			if !ok {
				return nil
			}
			return a.send(name, nil)
		}),
	}))
}

func selectedState(selected bool) string {
	if selected {
		return "active"
	}
	return "inactive"
}

// TriggerProps is the tab for value.
func (a *API) TriggerProps(value string) dom.Props {
	st := a.TriggerState(value)
	tabIndex := -1
	if st.Selected {
		tabIndex = 0
	}
	payload := map[string]any{"value": value}
	return a.n.Button(a.part("trigger", dom.Props{
		"id":            a.id("trigger-" + value),
		"type":          "button",
		"role":          "tab",
		"tabIndex":      tabIndex,
		"disabled":      st.Disabled,
		"aria-selected": st.Selected,
		"aria-controls": a.id("content-" + value),
		"data-value":    value,
		"data-state":    selectedState(st.Selected),
		"data-selected": dom.DataAttr(st.Selected),
		"data-focus":    dom.DataAttr(st.Focused),
		"data-disabled": dom.DataAttr(st.Disabled),
		"onClick": dom.Handler(func(dom.HostEvent) error {
			if st.Disabled {
				return nil
			}
			return a.send(EventTabClick, payload)
		}),
		"onFocus": dom.Handler(func(dom.HostEvent) error {
			return a.send(EventTabFocus, payload)
		}),
		"onBlur": dom.Handler(func(dom.HostEvent) error {
			return a.send(EventTabBlur, nil)
		}),
	}))
}

// ContentProps is the tabpanel for value; hidden unless selected.
func (a *API) ContentProps(value string) dom.Props {
	selected := a.ctx.Value == value
	return a.n.Element(a.part("content", dom.Props{
		"id":              a.id("content-" + value),
		"role":            "tabpanel",
		"tabIndex":        0,
		"hidden":          !selected,
		"aria-labelledby": a.id("trigger-" + value),
		"data-state":      selectedState(selected),
	}))
}

// IndicatorProps is the marker under the selected tab.
func (a *API) IndicatorProps() dom.Props {
	return a.n.Element(a.part("indicator", dom.Props{
		"id":         a.id("indicator"),
		"data-value": a.ctx.Value,
	}))
}
