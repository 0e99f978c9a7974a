package menu

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/collection"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/normalize"
)

// API is the projection of one menu snapshot.
type API struct {
	state    headlessx.Snapshot[Context]
	dispatch headlessx.Dispatch
	n        normalize.Normalizer
	ctx      Context

	Open             bool
	HighlightedValue string
	Collection       *collection.Collection
}

// Connect projects state into an API. A menu needs the element and button categories.
func Connect(state headlessx.Snapshot[Context], dispatch headlessx.Dispatch, n normalize.Normalizer) (*API, error) {
	if err := state.RequireLive(Name + ".connect"); err != nil {
		return nil, err
	}
	if err := normalize.Require(Name+".connect", n, normalize.Element, normalize.Button); err != nil {
		return nil, err
	}
	c := state.Context
	return &API{
		state:            state,
		dispatch:         dispatch,
		n:                n,
		ctx:              c,
		Open:             state.Matches(Open),
		HighlightedValue: c.HighlightedValue,
		Collection:       c.Collection,
	}, nil
}

func (a *API) send(eventType string, payload map[string]any) error {
	return a.dispatch(headlessx.NewEvent(eventType, payload))
}

func (a *API) handler(eventType string) dom.Handler {
	return func(dom.HostEvent) error {
		return a.send(eventType, nil)
	}
}

// SetOpen opens or closes the menu.
func (a *API) SetOpen(open bool) error {
	if open {
		return a.send(EventOpen, nil)
	}
	return a.send(EventClose, nil)
}

// HighlightValue moves the highlight to value; "" clears it.
func (a *API) HighlightValue(value string) error {
	return a.send(EventItemHighlight, map[string]any{"value": value})
}

// ItemState describes one item relative to the snapshot.
type ItemState struct {
	Value       string
	Disabled    bool
	Highlighted bool
}

// ItemState returns the state of item.
func (a *API) ItemState(item collection.Item) ItemState {
	return ItemState{
		Value:       item.Value,
		Disabled:    item.Disabled,
		Highlighted: a.ctx.HighlightedValue == item.Value,
	}
}

func (a *API) id(parts ...string) string {
	return dom.ID(Name, a.state.ID, parts...)
}

func (a *API) part(name string, extra dom.Props) dom.Props {
	return dom.Part(Name, name).Merge(dom.Props{
		"data-state": dom.OpenState(a.Open),
	}).Merge(extra).Compact()
}

var triggerKeys = map[string]string{
	"ArrowDown": EventArrowDown,
	"ArrowUp":   EventArrowUp,
	"Enter":     EventOpen,
	" ":         EventOpen,
}

// TriggerProps is the button toggling the menu.
func (a *API) TriggerProps() dom.Props {
	return a.n.Button(a.part("trigger", dom.Props{
		"id":            a.id("trigger"),
		"type":          "button",
		"aria-haspopup": "menu",
		"aria-expanded": a.Open,
		"aria-controls": a.id("content"),
		"onClick":       a.handler(EventTriggerClick),
		"onKeyDown": dom.Handler(func(evt dom.HostEvent) error {
			if a.Open {
				return nil
			}
			name, ok := triggerKeys[evt.Key]
			if !ok {
				return nil
			}
			return a.send(name, nil)
		}),
	}))
}

// PositionerProps places the content.
func (a *API) PositionerProps() dom.Props {
	return a.n.Element(a.part("positioner", dom.Props{"id": a.id("positioner")}))
}

var contentKeys = map[string]string{
	"ArrowDown": EventArrowDown,
	"ArrowUp":   EventArrowUp,
	"Home":      EventHome,
	"End":       EventEnd,
	"Enter":     EventEnter,
	"Escape":    EventEscape,
}

// ContentProps is the menu list.
func (a *API) ContentProps() dom.Props {
	p := dom.Props{
		"id":              a.id("content"),
		"role":            "menu",
		"tabIndex":        0,
		"hidden":          !a.Open,
		"aria-labelledby": a.id("trigger"),
		"onKeyDown": dom.Handler(func(evt dom.HostEvent) error {
			name, ok := contentKeys[evt.Key]
			if !ok {
				return nil
			}
			return a.send(name, nil)
		}),
	}
	if a.ctx.AriaLabel != "" {
		p["aria-label"] = a.ctx.AriaLabel
		delete(p, "aria-labelledby")
	}
	if a.ctx.HighlightedValue != "" {
		p["aria-activedescendant"] = a.id("item", a.ctx.HighlightedValue)
	}
	return a.n.Element(a.part("content", p))
}

// ItemProps is one actionable entry.
func (a *API) ItemProps(item collection.Item) dom.Props {
	st := a.ItemState(item)
	return a.n.Element(a.part("item", dom.Props{
		"id":               a.id("item", item.Value),
		"role":             "menuitem",
		"tabIndex":         -1,
		"data-value":       item.Value,
		"aria-disabled":    st.Disabled,
		"data-disabled":    dom.DataAttr(st.Disabled),
		"data-highlighted": dom.DataAttr(st.Highlighted),
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
			return a.send(EventItemHighlight, map[string]any{"value": item.Value})
		}),
	}))
}

// SeparatorProps divides groups of items.
func (a *API) SeparatorProps() dom.Props {
	return a.n.Element(a.part("separator", dom.Props{
		"role":             "separator",
		"aria-orientation": "horizontal",
	}))
}

// ItemGroupProps wraps the items of group.
func (a *API) ItemGroupProps(group string) dom.Props {
	return a.n.Element(a.part("item-group", dom.Props{
		"id":              a.id("group", group),
		"role":            "group",
		"aria-labelledby": a.id("group-label", group),
	}))
}

// ItemGroupLabelProps names group.
func (a *API) ItemGroupLabelProps(group string) dom.Props {
	return a.n.Element(a.part("item-group-label", dom.Props{
		"id": a.id("group-label", group),
	}))
}
