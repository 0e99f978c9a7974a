// Package checkable implements the boolean machine shared by checkbox and switch.
package checkable

import (
	"github.com/comalice/headlessx/internal/primitives"
)

// States of a checkable machine.
const (
	Unchecked     = "unchecked"
	Checked       = "checked"
	Indeterminate = "indeterminate"
)

// Events accepted by a checkable machine.
const (
	EventCheckedSet       = "CHECKED.SET"
	EventCheckedToggle    = "CHECKED.TOGGLE"
	EventIndeterminateSet = "INDETERMINATE.SET"
)

// CheckedChange is passed to OnCheckedChange.
type CheckedChange struct {
	Checked       bool
	Indeterminate bool
}

// Context is the instance data of a checkbox or switch.
type Context struct {
	Checked       bool   `json:"checked" yaml:"checked"`
	Indeterminate bool   `json:"indeterminate" yaml:"indeterminate"`
	Controlled    bool   `json:"controlled" yaml:"controlled"`
	Disabled      bool   `json:"disabled" yaml:"disabled"`
	ReadOnly      bool   `json:"readOnly" yaml:"readOnly"`
	Required      bool   `json:"required" yaml:"required"`
	Invalid       bool   `json:"invalid" yaml:"invalid"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Value         string `json:"value" yaml:"value"`

	OnCheckedChange func(CheckedChange) `json:"-" yaml:"-"`
}

// Interactive reports whether user toggling is allowed.
func (c Context) Interactive() bool {
	return !c.Disabled && !c.ReadOnly
}

// StateOf returns the chart state matching the context.
func (c Context) StateOf() string {
	switch {
	case c.Indeterminate:
		return Indeterminate
	case c.Checked:
		return Checked
	default:
		return Unchecked
	}
}

// CheckedState is true, false or "indeterminate".
func (c Context) CheckedState() any {
	if c.Indeterminate {
		return Indeterminate
	}
	return c.Checked
}

// Spec builds the chart for widget. Without indeterminate support the
// indeterminate state is unreachable and INDETERMINATE.SET is ignored.
func Spec(widget string, indeterminate bool) *primitives.MachineSpec[Context] {
	b := primitives.NewSpecBuilder[Context](widget, Unchecked).
		InitialFn(func(c Context) string {
			if !indeterminate {
				c.Indeterminate = false
			}
			return c.StateOf()
		}).
		Expect(EventCheckedSet, primitives.AllOf(primitives.RequireBool("checked"), primitives.OptionalBool("isTrusted"))).
		Computed("checkedState", func(c Context, _ string) any { return c.CheckedState() }).
		Computed("interactive", func(c Context, _ string) any { return c.Interactive() })

	b.State(Unchecked).
		Transition(EventCheckedToggle, toggleTo(Checked, true))
	b.State(Checked).
		Transition(EventCheckedToggle, toggleTo(Unchecked, false))
	b.State(Indeterminate).
		Transition(EventCheckedToggle, toggleTo(Checked, true))

	b.Global().
		Transition(EventCheckedSet, setTo(Checked, true)).
		Transition(EventCheckedSet, setTo(Unchecked, false))

	if indeterminate {
		b.Expect(EventIndeterminateSet, primitives.RequireBool("indeterminate"))
		b.Global().
			Transition(EventIndeterminateSet, primitives.TransitionConfig[Context]{
				Target:  Indeterminate,
				Guard:   primitives.And(payloadIs("indeterminate", true), primitives.Not[Context](isIndeterminate)),
				Actions: []primitives.Action[Context]{markIndeterminate(true)},
				Effects: []primitives.Effect[Context]{notify},
			}).
			Transition(EventIndeterminateSet, primitives.TransitionConfig[Context]{
				Target:  Checked,
				Guard:   primitives.And(payloadIs("indeterminate", false), isIndeterminate, isChecked),
				Actions: []primitives.Action[Context]{markIndeterminate(false)},
				Effects: []primitives.Effect[Context]{notify},
			}).
			Transition(EventIndeterminateSet, primitives.TransitionConfig[Context]{
				Target:  Unchecked,
				Guard:   primitives.And(payloadIs("indeterminate", false), isIndeterminate),
				Actions: []primitives.Action[Context]{markIndeterminate(false)},
				Effects: []primitives.Effect[Context]{notify},
			})
	}
	return b.MustBuild()
}

func toggleTo(target string, checked bool) primitives.TransitionConfig[Context] {
	return primitives.TransitionConfig[Context]{
		Target: target,
		Guard:  func(c Context, _ primitives.Event) bool { return !c.Controlled && c.Interactive() },
		Actions: []primitives.Action[Context]{func(c *Context, _ primitives.Event) error {
			c.Checked = checked
			c.Indeterminate = false
			return nil
		}},
		Effects: []primitives.Effect[Context]{notify},
	}
}

func setTo(target string, checked bool) primitives.TransitionConfig[Context] {
	return primitives.TransitionConfig[Context]{
		Target: target,
		Guard: primitives.And(payloadIs("checked", checked), func(c Context, _ primitives.Event) bool {
			return c.Checked != checked || c.Indeterminate
		}),
		Actions: []primitives.Action[Context]{func(c *Context, _ primitives.Event) error {
			c.Checked = checked
			c.Indeterminate = false
			return nil
		}},
		Effects: []primitives.Effect[Context]{notify},
	}
}

func markIndeterminate(v bool) primitives.Action[Context] {
	return func(c *Context, _ primitives.Event) error {
		c.Indeterminate = v
		return nil
	}
}

func payloadIs(key string, want bool) primitives.Guard[Context] {
	return func(_ Context, evt primitives.Event) bool {
		v, err := evt.Bool(key)
		return err == nil && v == want
	}
}

func isChecked(c Context, _ primitives.Event) bool {
	return c.Checked
}

func isIndeterminate(c Context, _ primitives.Event) bool {
	return c.Indeterminate
}

func notify(c Context, _ primitives.Event) {
	if c.OnCheckedChange != nil {
		c.OnCheckedChange(CheckedChange{Checked: c.Checked, Indeterminate: c.Indeterminate})
	}
}

// SetChecked dispatches CHECKED.SET for an uncontrolled instance. A
// controlled instance only reports the requested value to OnCheckedChange.
func SetChecked(c Context, dispatch primitives.Dispatch, checked bool) error {
	if c.Controlled {
		if c.OnCheckedChange != nil && c.Interactive() {
			c.OnCheckedChange(CheckedChange{Checked: checked})
		}
		return nil
	}
	return dispatch(primitives.NewEvent(EventCheckedSet, map[string]any{"checked": checked, "isTrusted": false}))
}

// ToggleChecked dispatches CHECKED.TOGGLE for an uncontrolled instance.
func ToggleChecked(c Context, dispatch primitives.Dispatch) error {
	if c.Controlled {
		if c.OnCheckedChange != nil && c.Interactive() {
			c.OnCheckedChange(CheckedChange{Checked: c.Indeterminate || !c.Checked})
		}
		return nil
	}
	return dispatch(primitives.NewEvent(EventCheckedToggle, nil))
}
