// Package accordion implements the accordion widget machine and its connect
// function.
package accordion

import (
	"slices"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/collection"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/primitives"
)

// Name is the widget name used as the root of every element id.
const Name = "accordion"

// States.
const (
	Idle    = "idle"
	Focused = "focused"
)

// Events.
const (
	EventTriggerClick = "TRIGGER.CLICK"
	EventTriggerFocus = "TRIGGER.FOCUS"
	EventTriggerBlur  = "TRIGGER.BLUR"
	EventValueSet     = "VALUE.SET"
	EventGotoNext     = "GOTO.NEXT"
	EventGotoPrev     = "GOTO.PREV"
	EventGotoFirst    = "GOTO.FIRST"
	EventGotoLast     = "GOTO.LAST"
)

// Context is the instance data of an accordion.
type Context struct {
	// Value holds the expanded item values.
	Value        []string               `json:"value" yaml:"value"`
	FocusedValue string                 `json:"focusedValue,omitempty" yaml:"focusedValue,omitempty"`
	Items        *collection.Collection `json:"items" yaml:"items"`
	Multiple     bool                   `json:"multiple" yaml:"multiple"`
	Collapsible  bool                   `json:"collapsible" yaml:"collapsible"`
	Disabled     bool                   `json:"disabled" yaml:"disabled"`
	Orientation  string                 `json:"orientation" yaml:"orientation"`

	OnValueChange func(value []string) `json:"-" yaml:"-"`
	OnFocusChange func(value string)   `json:"-" yaml:"-"`
}

// Expanded reports whether the item value is expanded.
func (c Context) Expanded(value string) bool {
	return slices.Contains(c.Value, value)
}

// ItemDisabled reports whether the item value rejects interaction.
func (c Context) ItemDisabled(value string) bool {
	if c.Disabled {
		return true
	}
	it, ok := c.Items.Find(value)
	return ok && it.Disabled
}

// toggled returns the value after clicking the trigger of value. A single,
// non-collapsible accordion never collapses its open item.
func (c Context) toggled(value string) []string {
	if c.Multiple {
		if i := slices.Index(c.Value, value); i >= 0 {
			return slices.Delete(slices.Clone(c.Value), i, i+1)
		}
		return append(slices.Clone(c.Value), value)
	}
	if c.Expanded(value) {
		if c.Collapsible {
			return []string{}
		}
		return slices.Clone(c.Value)
	}
	return []string{value}
}

// Options configures an accordion instance.
type Options struct {
	ID string `yaml:"id"`
	// Value is the initially expanded set; DefaultValue is used when Value is nil.
	Value        []string `yaml:"value"`
	DefaultValue []string `yaml:"defaultValue"`
	// Items are the accordion items in navigation order.
	Items    []collection.Item `yaml:"items"`
	Multiple bool              `yaml:"multiple"`
	// Collapsible lets a single accordion close its open item.
	Collapsible bool `yaml:"collapsible"`
	Disabled    bool `yaml:"disabled"`
	// Orientation is "vertical" (default) or "horizontal".
	Orientation string `yaml:"orientation"`

	OnValueChange func(value []string) `yaml:"-"`
	OnFocusChange func(value string)   `yaml:"-"`
}

func (o Options) context() Context {
	c := Context{
		Items:         collection.New(o.Items),
		Multiple:      o.Multiple,
		Collapsible:   o.Collapsible,
		Disabled:      o.Disabled,
		Orientation:   "vertical",
		OnValueChange: o.OnValueChange,
		OnFocusChange: o.OnFocusChange,
	}
	if o.Orientation == "horizontal" {
		c.Orientation = o.Orientation
	}
	value := o.Value
	if value == nil {
		value = o.DefaultValue
	}
	c.Value = c.limit(slices.Clone(value))
	if c.Value == nil {
		c.Value = []string{}
	}
	return c
}

func (c Context) limit(values []string) []string {
	if !c.Multiple && len(values) > 1 {
		return values[:1]
	}
	return values
}

var spec = buildSpec()

// Spec returns the accordion chart.
func Spec() *headlessx.Spec[Context] {
	return spec
}

// New creates an accordion instance. Call Start before connecting.
func New(o Options, opts ...headlessx.Option) *headlessx.Machine[Context] {
	return headlessx.NewMachine(spec, dom.InstanceID(o.ID), o.context(), opts...)
}

type (
	action = primitives.Action[Context]
	effect = primitives.Effect[Context]
	guard  = primitives.Guard[Context]
	trans  = primitives.TransitionConfig[Context]
)

func buildSpec() *primitives.MachineSpec[Context] {
	b := primitives.NewSpecBuilder[Context](Name, Idle).
		Clone(func(c Context) Context {
			c.Value = slices.Clone(c.Value)
			return c
		}).
		Expect(EventTriggerClick, primitives.RequireString("value")).
		Expect(EventTriggerFocus, primitives.RequireString("value")).
		Expect(EventValueSet, primitives.RequireStrings("value")).
		Computed("expandedCount", func(c Context, _ string) any { return len(c.Value) })

	changed := []effect{valueChanged}
	focused := []effect{focusChanged}

	b.Global().
		Transition(EventTriggerClick, trans{Guard: primitives.And(enabled, toggles), Actions: []action{toggle}, Effects: changed}).
		Transition(EventValueSet, trans{Actions: []action{setValue}, Effects: changed})

	b.State(Idle).
		Transition(EventTriggerFocus, trans{Target: Focused, Actions: []action{focusPayload}, Effects: focused})
	b.State(Focused).
		Transition(EventTriggerFocus, trans{Actions: []action{focusPayload}, Effects: focused}).
		Transition(EventTriggerBlur, trans{Target: Idle, Actions: []action{clearFocus}, Effects: focused}).
		Transition(EventGotoNext, move(next)).
		Transition(EventGotoPrev, move(prev)).
		Transition(EventGotoFirst, move(first)).
		Transition(EventGotoLast, move(last))
	return b.MustBuild()
}

var (
	enabled guard = func(c Context, evt primitives.Event) bool {
		v, _ := evt.Str("value")
		return !c.ItemDisabled(v)
	}
	toggles guard = func(c Context, evt primitives.Event) bool {
		v, _ := evt.Str("value")
		return !slices.Equal(c.toggled(v), c.Value)
	}
)

func toggle(c *Context, evt primitives.Event) error {
	v, _ := evt.Str("value")
	c.Value = c.toggled(v)
	return nil
}

func setValue(c *Context, evt primitives.Event) error {
	values, _ := evt.Strings("value")
	c.Value = c.limit(values)
	return nil
}

func focusPayload(c *Context, evt primitives.Event) error {
	c.FocusedValue, _ = evt.Str("value")
	return nil
}

func clearFocus(c *Context, _ primitives.Event) error {
	c.FocusedValue = ""
	return nil
}

type direction int

const (
	next direction = iota
	prev
	first
	last
)

func (c Context) target(d direction) (string, bool) {
	switch d {
	case next:
		return c.Items.Next(c.FocusedValue, false)
	case prev:
		return c.Items.Prev(c.FocusedValue, false)
	case first:
		return c.Items.First()
	default:
		return c.Items.Last()
	}
}

// move shifts focus between enabled item triggers without wrapping.
func move(d direction) trans {
	return trans{
		Guard: func(c Context, _ primitives.Event) bool {
			v, ok := c.target(d)
			return ok && v != c.FocusedValue
		},
		Actions: []action{func(c *Context, _ primitives.Event) error {
			c.FocusedValue, _ = c.target(d)
			return nil
		}},
		Effects: []effect{focusChanged},
	}
}

func valueChanged(c Context, _ primitives.Event) {
	if c.OnValueChange != nil {
		c.OnValueChange(slices.Clone(c.Value))
	}
}

func focusChanged(c Context, _ primitives.Event) {
	if c.OnFocusChange != nil {
		c.OnFocusChange(c.FocusedValue)
	}
}
