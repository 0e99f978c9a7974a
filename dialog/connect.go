package dialog

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/normalize"
)

// API is the projection of one dialog snapshot.
type API struct {
	state    headlessx.Snapshot[Context]
	dispatch headlessx.Dispatch
	n        normalize.Normalizer

	Open bool
}

// Connect projects state into an API. A dialog needs the element and button categories.
func Connect(state headlessx.Snapshot[Context], dispatch headlessx.Dispatch, n normalize.Normalizer) (*API, error) {
	if err := state.RequireLive(Name + ".connect"); err != nil {
		return nil, err
	}
	if err := normalize.Require(Name+".connect", n, normalize.Element, normalize.Button); err != nil {
		return nil, err
	}
	return &API{
		state:    state,
		dispatch: dispatch,
		n:        n,
		Open:     state.Matches(Open),
	}, nil
}

// SetOpen opens or closes the dialog. Closing a closed dialog is a no-op.
func (a *API) SetOpen(open bool) error {
	if open {
		return a.send(EventOpen)
	}
	return a.send(EventClose)
}

func (a *API) send(eventType string) error {
	return a.dispatch(headlessx.NewEvent(eventType, nil))
}

func (a *API) handler(eventType string) dom.Handler {
	return func(dom.HostEvent) error {
		return a.send(eventType)
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

// TriggerProps is the button opening the dialog.
func (a *API) TriggerProps() dom.Props {
	return a.n.Button(a.part("trigger", dom.Props{
		"id":            a.id("trigger"),
		"type":          "button",
		"aria-haspopup": "dialog",
		"aria-expanded": a.Open,
		"aria-controls": a.id("content"),
		"onClick":       a.handler(EventTriggerClick),
	}))
}

// BackdropProps is the overlay behind the content. Clicking it counts as an
// interaction outside the dialog.
func (a *API) BackdropProps() dom.Props {
	return a.n.Element(a.part("backdrop", dom.Props{
		"id":      a.id("backdrop"),
		"hidden":  !a.Open,
		"onClick": a.handler(EventOutsideClick),
	}))
}

// PositionerProps centers the content.
func (a *API) PositionerProps() dom.Props {
	return a.n.Element(a.part("positioner", dom.Props{"id": a.id("positioner")}))
}

// ContentProps is the dialog surface.
func (a *API) ContentProps() dom.Props {
	c := a.state.Context
	p := dom.Props{
		"id":               a.id("content"),
		"role":             c.Role,
		"hidden":           !a.Open,
		"tabIndex":         -1,
		"aria-modal":       c.Modal,
		"aria-describedby": a.id("description"),
		"onKeyDown": dom.Handler(func(evt dom.HostEvent) error {
			if evt.Key != "Escape" {
				return nil
			}
			return a.send(EventEscape)
		}),
	}
	if c.AriaLabel != "" {
		p["aria-label"] = c.AriaLabel
	} else {
		p["aria-labelledby"] = a.id("title")
	}
	return a.n.Element(a.part("content", p))
}

// TitleProps is the heading naming the dialog.
func (a *API) TitleProps() dom.Props {
	return a.n.Element(a.part("title", dom.Props{"id": a.id("title")}))
}

// DescriptionProps describes the dialog.
func (a *API) DescriptionProps() dom.Props {
	return a.n.Element(a.part("description", dom.Props{"id": a.id("description")}))
}

// CloseTriggerProps is the button closing the dialog.
func (a *API) CloseTriggerProps() dom.Props {
	return a.n.Button(a.part("close-trigger", dom.Props{
		"id":         a.id("close-trigger"),
		"type":       "button",
		"aria-label": "Close dialog",
		"onClick":    a.handler(EventCloseTriggerClick),
	}))
}
