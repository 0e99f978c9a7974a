package dropdown

import (
	"slices"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/collection"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/normalize"
)

// API is the projection of one select snapshot.
type API struct {
	state    headlessx.Snapshot[Context]
	dispatch headlessx.Dispatch
	n        normalize.Normalizer
	ctx      Context

	Open             bool
	Focused          bool
	Disabled         bool
	Multiple         bool
	Empty            bool
	HasSelectedItems bool
	Value            []string
	ValueAsString    string
	SelectedItems    []collection.Item
	HighlightedValue string
	Collection       *collection.Collection
}

// Connect projects state into an API. A select needs every normalizer category.
func Connect(state headlessx.Snapshot[Context], dispatch headlessx.Dispatch, n normalize.Normalizer) (*API, error) {
	if err := state.RequireLive(Name + ".connect"); err != nil {
		return nil, err
	}
	if err := normalize.Require(Name+".connect", n, normalize.Element, normalize.Label, normalize.Input, normalize.Button); err != nil {
		return nil, err
	}
	c := state.Context
	return &API{
		state:            state,
		dispatch:         dispatch,
		n:                n,
		ctx:              c,
		Open:             state.Matches(Open),
		Focused:          state.Matches(Focused, Open),
		Disabled:         c.Disabled,
		Multiple:         c.Multiple,
		Empty:            c.Empty(),
		HasSelectedItems: !c.Empty(),
		Value:            slices.Clone(c.Value),
		ValueAsString:    c.ValueAsString(),
		SelectedItems:    c.SelectedItems(),
		HighlightedValue: c.HighlightedValue,
		Collection:       c.Collection,
	}, nil
}

func (a *API) send(eventType string, payload map[string]any) error {
	return a.dispatch(headlessx.NewEvent(eventType, payload))
}

// SelectValue selects value; in multiple mode it toggles membership.
func (a *API) SelectValue(value string) error {
	return a.send(EventSelectValue, map[string]any{"value": value})
}

// SetValue replaces the selection, keeping the supplied order.
func (a *API) SetValue(values []string) error {
	return a.send(EventValueSet, map[string]any{"value": slices.Clone(values)})
}

// ClearValue empties the selection.
func (a *API) ClearValue() error {
	return a.send(EventClear, nil)
}

// SetOpen opens or closes the listbox.
func (a *API) SetOpen(open bool) error {
	if open {
		return a.send(EventOpen, nil)
	}
	return a.send(EventClose, nil)
}

// HighlightValue moves the highlight to value.
func (a *API) HighlightValue(value string) error {
	return a.send(EventHighlightSet, map[string]any{"value": value})
}

// ItemState describes one item relative to the snapshot.
type ItemState struct {
	Value       string
	Disabled    bool
	Selected    bool
	Highlighted bool
}

// ItemState returns the state of item.
func (a *API) ItemState(item collection.Item) ItemState {
	return ItemState{
		Value:       item.Value,
		Disabled:    item.Disabled || a.ctx.Disabled,
		Selected:    a.ctx.Selected(item.Value),
		Highlighted: a.ctx.HighlightedValue == item.Value,
	}
}

func (a *API) id(parts ...string) string {
	return dom.ID(Name, a.state.ID, parts...)
}

func (a *API) part(name string, extra dom.Props) dom.Props {
	return dom.Part(Name, name).Merge(dom.Props{
		"data-state":    dom.OpenState(a.Open),
		"data-disabled": dom.DataAttr(a.ctx.Disabled),
		"data-readonly": dom.DataAttr(a.ctx.ReadOnly),
		"data-invalid":  dom.DataAttr(a.ctx.Invalid),
	}).Merge(extra).Compact()
}

// RootProps is the outer element.
func (a *API) RootProps() dom.Props {
	return a.n.Element(a.part("root", dom.Props{"id": a.id()}))
}

// LabelProps labels the hidden native select.
func (a *API) LabelProps() dom.Props {
	return a.n.Label(a.part("label", dom.Props{
		"id":      a.id("label"),
		"htmlFor": a.id("select"),
		"onClick": dom.Handler(func(dom.HostEvent) error {
			return a.send(EventTriggerFocus, nil)
		}),
	}))
}

// ControlProps wraps the trigger and clear trigger.
func (a *API) ControlProps() dom.Props {
	return a.n.Element(a.part("control", dom.Props{
		"id":         a.id("control"),
		"data-focus": dom.DataAttr(a.Focused),
	}))
}

// TriggerProps is the combobox button.
func (a *API) TriggerProps() dom.Props {
	return a.n.Button(a.part("trigger", dom.Props{
		"id":                     a.id("trigger"),
		"type":                   "button",
		"role":                   "combobox",
		"disabled":               a.ctx.Disabled,
		"aria-expanded":          a.Open,
		"aria-haspopup":          "listbox",
		"aria-controls":          a.id("content"),
		"aria-labelledby":        a.id("label"),
		"aria-invalid":           a.ctx.Invalid,
		"data-placeholder-shown": dom.DataAttr(a.Empty),
		"onClick":                a.handler(EventTriggerClick),
		"onFocus":                a.handler(EventTriggerFocus),
		"onBlur":                 a.handler(EventTriggerBlur),
		"onKeyDown": dom.Handler(func(evt dom.HostEvent) error {
			switch evt.Key {
			case "ArrowDown", "ArrowUp", "Enter", " ":
				return a.send(EventOpen, nil)
			}
			return nil
		}),
	}))
}

func (a *API) handler(eventType string) dom.Handler {
	return func(dom.HostEvent) error {
		return a.send(eventType, nil)
	}
}

// ValueTextProps shows the selected labels.
func (a *API) ValueTextProps() dom.Props {
	return a.n.Element(a.part("value-text", dom.Props{
		"id":                     a.id("value-text"),
		"data-placeholder-shown": dom.DataAttr(a.Empty),
	}))
}

// IndicatorProps is the open/closed chevron.
func (a *API) IndicatorProps() dom.Props {
	return a.n.Element(a.part("indicator", dom.Props{"aria-hidden": true}))
}

// ClearTriggerProps clears the selection; hidden while empty.
func (a *API) ClearTriggerProps() dom.Props {
	return a.n.Button(a.part("clear-trigger", dom.Props{
		"id":         a.id("clear-trigger"),
		"type":       "button",
		"aria-label": "Clear value",
		"hidden":     a.Empty,
		"disabled":   a.ctx.Disabled,
		"onClick":    a.handler(EventClear),
	}))
}

// PositionerProps places the content.
func (a *API) PositionerProps() dom.Props {
	return a.n.Element(a.part("positioner", dom.Props{"id": a.id("positioner")}))
}

// ContentProps is the listbox.
func (a *API) ContentProps() dom.Props {
	p := dom.Props{
		"id":                   a.id("content"),
		"role":                 "listbox",
		"tabIndex":             0,
		"hidden":               !a.Open,
		"aria-multiselectable": a.ctx.Multiple,
		"aria-labelledby":      a.id("label"),
		"onKeyDown": dom.Handler(func(evt dom.HostEvent) error {
			name, ok := contentKeys[evt.Key]
			if !ok {
				return nil
			}
			return a.send(name, nil)
		}),
	}
	if a.ctx.HighlightedValue != "" {
		p["aria-activedescendant"] = a.id("option", a.ctx.HighlightedValue)
	}
	return a.n.Element(a.part("content", p))
}

var contentKeys = map[string]string{
	"ArrowDown": EventArrowDown,
	"ArrowUp":   EventArrowUp,
	"Home":      EventHome,
	"End":       EventEnd,
	"Enter":     EventEnter,
	"Escape":    EventEscape,
}

// ItemProps is one option.
func (a *API) ItemProps(item collection.Item) dom.Props {
	st := a.ItemState(item)
	return a.n.Element(a.part("item", dom.Props{
		"id":               a.id("option", item.Value),
		"role":             "option",
		"data-value":       item.Value,
		"aria-selected":    st.Selected,
		"aria-disabled":    st.Disabled,
		"data-state":       itemDataState(st.Selected),
		"data-highlighted": dom.DataAttr(st.Highlighted),
		"data-disabled":    dom.DataAttr(st.Disabled),
		"onClick": dom.Handler(func(dom.HostEvent) error {
			if st.Disabled {
				return nil
			}
			return a.send(EventItemClick, map[string]any{"value": item.Value})
		}),
		"onPointerMove": dom.Handler(func(dom.HostEvent) error {
			if st.Disabled || st.Highlighted {
				return nil
			}
			return a.send(EventHighlightSet, map[string]any{"value": item.Value})
		}),
	}))
}

func itemDataState(selected bool) string {
	if selected {
		return "checked"
	}
	return "unchecked"
}

// ItemTextProps is the label of an option.
func (a *API) ItemTextProps(item collection.Item) dom.Props {
	return a.n.Element(a.part("item-text", dom.Props{
		"data-value": item.Value,
		"data-state": itemDataState(a.ctx.Selected(item.Value)),
	}))
}

// ItemIndicatorProps is the check mark of an option; hidden unless selected.
func (a *API) ItemIndicatorProps(item collection.Item) dom.Props {
	selected := a.ctx.Selected(item.Value)
	return a.n.Element(a.part("item-indicator", dom.Props{
		"aria-hidden": true,
		"hidden":      !selected,
		"data-state":  itemDataState(selected),
	}))
}

// HiddenSelectProps is the native select carrying the form value.
func (a *API) HiddenSelectProps() dom.Props {
	value := any(slices.Clone(a.ctx.Value))
	if !a.ctx.Multiple {
		value = ""
		if len(a.ctx.Value) > 0 {
			value = a.ctx.Value[0]
		}
	}
	return a.n.Input(dom.Props{
		"id":          a.id("select"),
		"name":        a.ctx.Name,
		"multiple":    a.ctx.Multiple,
		"disabled":    a.ctx.Disabled,
		"required":    a.ctx.Required,
		"value":       value,
		"aria-hidden": true,
		"tabIndex":    -1,
		"onChange": dom.Handler(func(evt dom.HostEvent) error {
			return a.send(EventSelectValue, map[string]any{"value": evt.Value})
		}),
	})
}
