package toggle

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/checkable"
	"github.com/comalice/headlessx/normalize"
)

// API is the projection of one switch snapshot.
type API struct {
	state    headlessx.Snapshot[Context]
	dispatch headlessx.Dispatch
	n        normalize.Normalizer

	Checked  bool
	Disabled bool
	ReadOnly bool
	Required bool
	Invalid  bool
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
		state:    state,
		dispatch: dispatch,
		n:        n,
		Checked:  c.Checked,
		Disabled: c.Disabled,
		ReadOnly: c.ReadOnly,
		Required: c.Required,
		Invalid:  c.Invalid,
	}, nil
}

// SetChecked sets the checked value. Controlled instances only report it.
func (a *API) SetChecked(checked bool) error {
	return checkable.SetChecked(a.state.Context, a.dispatch, checked)
}

// ToggleChecked flips the checked value. Controlled instances only report it.
func (a *API) ToggleChecked() error {
	return checkable.ToggleChecked(a.state.Context, a.dispatch)
}

func (a *API) part(name string, extra dom.Props) dom.Props {
	c := a.state.Context
	return dom.Part(Name, name).Merge(dom.Props{
		"data-state":    a.state.Value,
		"data-disabled": dom.DataAttr(c.Disabled),
		"data-readonly": dom.DataAttr(c.ReadOnly),
		"data-invalid":  dom.DataAttr(c.Invalid),
	}).Merge(extra).Compact()
}

// RootProps is the label element wrapping the switch.
func (a *API) RootProps() dom.Props {
	return a.n.Label(a.part("root", dom.Props{
		"id":      dom.ID(Name, a.state.ID),
		"htmlFor": dom.ID(Name, a.state.ID, "input"),
	}))
}

// LabelProps is the visible label text.
func (a *API) LabelProps() dom.Props {
	return a.n.Element(a.part("label", dom.Props{"id": dom.ID(Name, a.state.ID, "label")}))
}

// ControlProps is the track.
func (a *API) ControlProps() dom.Props {
	return a.n.Element(a.part("control", dom.Props{
		"id":          dom.ID(Name, a.state.ID, "control"),
		"aria-hidden": true,
	}))
}

// ThumbProps is the sliding knob.
func (a *API) ThumbProps() dom.Props {
	return a.n.Element(a.part("thumb", dom.Props{
		"id":          dom.ID(Name, a.state.ID, "thumb"),
		"aria-hidden": true,
	}))
}

// HiddenInputProps is the native input carrying the form value.
func (a *API) HiddenInputProps() dom.Props {
	c := a.state.Context
	return a.n.Input(dom.Props{
		"id":             dom.ID(Name, a.state.ID, "input"),
		"type":           "checkbox",
		"role":           "switch",
		"name":           c.Name,
		"value":          c.Value,
		"defaultChecked": c.Checked,
		"disabled":       c.Disabled,
		"required":       c.Required,
		"aria-invalid":   c.Invalid,
		"hidden":         true,
		"onChange": dom.Handler(func(evt dom.HostEvent) error {
			if !c.Interactive() {
				return nil
			}
			return a.dispatch(headlessx.NewEvent(checkable.EventCheckedSet, map[string]any{
				"checked":   evt.Checked,
				"isTrusted": evt.Trusted,
			}))
		}),
	})
}
