package checkbox

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/checkable"
	"github.com/comalice/headlessx/normalize"
)

// API is the projection of one checkbox snapshot.
type API struct {
	state    headlessx.Snapshot[Context]
	dispatch headlessx.Dispatch
	n        normalize.Normalizer
	ctx      Context

	Checked       bool
	Indeterminate bool
	Disabled      bool
	ReadOnly      bool
	Required      bool
	Invalid       bool
	// CheckedState is true, false or "indeterminate".
	CheckedState any
}

// Connect projects state into an API. It fails when the instance was not
// started or n lacks the element, label or input category.
func Connect(state headlessx.Snapshot[Context], dispatch headlessx.Dispatch, n normalize.Normalizer) (*API, error) {
	if err := state.RequireLive(Name + ".connect"); err != nil {
		return nil, err
	}
	if err := normalize.Require(Name+".connect", n, normalize.Element, normalize.Label, normalize.Input); err != nil {
		return nil, err
	}
	ctx := state.Context
	return &API{
		state:         state,
		dispatch:      dispatch,
		n:             n,
		ctx:           ctx,
		Checked:       ctx.Checked,
		Indeterminate: ctx.Indeterminate,
		Disabled:      ctx.Disabled,
		ReadOnly:      ctx.ReadOnly,
		Required:      ctx.Required,
		Invalid:       ctx.Invalid,
		CheckedState:  ctx.CheckedState(),
	}, nil
}

// SetChecked sets the checked value. Controlled instances only report it.
func (a *API) SetChecked(checked bool) error {
	return checkable.SetChecked(a.ctx, a.dispatch, checked)
}

// ToggleChecked flips the checked value. Controlled instances only report it.
func (a *API) ToggleChecked() error {
	return checkable.ToggleChecked(a.ctx, a.dispatch)
}

func (a *API) id(parts ...string) string {
	return dom.ID(Name, a.state.ID, parts...)
}

func (a *API) common(part string) dom.Props {
	return dom.Part(Name, part).Merge(dom.Props{
		"data-state":    a.state.Value,
		"data-disabled": dom.DataAttr(a.ctx.Disabled),
		"data-readonly": dom.DataAttr(a.ctx.ReadOnly),
		"data-invalid":  dom.DataAttr(a.ctx.Invalid),
	})
}

// RootProps is the label element wrapping the control.
func (a *API) RootProps() dom.Props {
	p := a.common("root").Merge(dom.Props{
		"id":      a.id(),
		"htmlFor": a.id("input"),
	})
	return a.n.Label(p.Compact())
}

// LabelProps is the visible label text.
func (a *API) LabelProps() dom.Props {
	p := a.common("label").Merge(dom.Props{
		"id": a.id("label"),
	})
	return a.n.Element(p.Compact())
}

// ControlProps is the visual box.
func (a *API) ControlProps() dom.Props {
	p := a.common("control").Merge(dom.Props{
		"id":          a.id("control"),
		"aria-hidden": true,
	})
	return a.n.Element(p.Compact())
}

// IndicatorProps is the check mark, hidden unless checked or indeterminate.
func (a *API) IndicatorProps() dom.Props {
	p := a.common("indicator").Merge(dom.Props{
		"hidden": !(a.ctx.Checked || a.ctx.Indeterminate),
	})
	return a.n.Element(p.Compact())
}

// HiddenInputProps is the native input carrying the form value.
func (a *API) HiddenInputProps() dom.Props {
	p := dom.Props{
		"id":             a.id("input"),
		"type":           "checkbox",
		"name":           a.ctx.Name,
		"value":          a.ctx.Value,
		"defaultChecked": a.ctx.Checked,
		"disabled":       a.ctx.Disabled,
		"required":       a.ctx.Required,
		"aria-invalid":   a.ctx.Invalid,
		"hidden":         true,
		"onChange": dom.Handler(func(evt dom.HostEvent) error {
			if !a.ctx.Interactive() {
				return nil
			}
			return a.dispatch(headlessx.NewEvent(checkable.EventCheckedSet, map[string]any{
				"checked":   evt.Checked,
				"isTrusted": evt.Trusted,
			}))
		}),
	}
	return a.n.Input(p)
}
