// Package tabs implements the tabs widget machine and its connect function.
package tabs

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/collection"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/primitives"
)

// Name is the widget name used as the root of every element id.
const Name = "tabs"

// States.
const (
	Idle    = "idle"
	Focused = "focused"
)

// Events.
const (
	EventTabClick  = "TAB.CLICK"
	EventTabFocus  = "TAB.FOCUS"
	EventTabBlur   = "TAB.BLUR"
	EventValueSet  = "VALUE.SET"
	EventArrowNext = "ARROW_NEXT"
	EventArrowPrev = "ARROW_PREV"
	EventHome      = "HOME"
	EventEnd       = "END"
)

// Activation modes.
const (
	Automatic = "automatic"
	Manual    = "manual"
)

// Context is the instance data of a tabs widget.
type Context struct {
	Value          string                 `json:"value" yaml:"value"`
	FocusedValue   string                 `json:"focusedValue,omitempty" yaml:"focusedValue,omitempty"`
	Triggers       *collection.Collection `json:"triggers" yaml:"triggers"`
	Orientation    string                 `json:"orientation" yaml:"orientation"`
	ActivationMode string                 `json:"activationMode" yaml:"activationMode"`
	Loop           bool                   `json:"loop" yaml:"loop"`

	OnValueChange func(value string) `json:"-" yaml:"-"`
	OnFocusChange func(value string) `json:"-" yaml:"-"`
}

// Options configures a tabs instance.
type Options struct {
	ID string `yaml:"id"`
	// Value is the selected tab; DefaultValue is used when Value is empty.
	Value        string `yaml:"value"`
	DefaultValue string `yaml:"defaultValue"`
	// Triggers are the tabs in navigation order.
	Triggers []collection.Item `yaml:"triggers"`
	// Orientation is "horizontal" (default) or "vertical".
	Orientation string `yaml:"orientation"`
	// ActivationMode is "automatic" (default) or "manual". Automatic tabs
	// select on focus.
	ActivationMode string `yaml:"activationMode"`
	// Loop defaults to true.
	Loop *bool `yaml:"loop"`

	OnValueChange func(value string) `yaml:"-"`
	OnFocusChange func(value string) `yaml:"-"`
}

func (o Options) context() Context {
	c := Context{
		Value:          o.Value,
		Triggers:       collection.New(o.Triggers),
		Orientation:    "horizontal",
		ActivationMode: Automatic,
		Loop:           o.Loop == nil || *o.Loop,
		OnValueChange:  o.OnValueChange,
		OnFocusChange:  o.OnFocusChange,
	}
	if c.Value == "" {
		c.Value = o.DefaultValue
	}
	if o.Orientation == "vertical" {
		c.Orientation = o.Orientation
	}
	if o.ActivationMode == Manual {
		c.ActivationMode = Manual
	}
	return c
}

var spec = buildSpec()

// Spec returns the tabs chart.
func Spec() *headlessx.Spec[Context] {
	return spec
}

// New creates a tabs instance. Call Start before connecting.
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
		Expect(EventTabClick, primitives.RequireString("value")).
		Expect(EventTabFocus, primitives.RequireString("value")).
		Expect(EventValueSet, primitives.RequireString("value")).
		Computed("focused", func(_ Context, s string) any { return s == Focused })

	focused := []effect{focusChanged}
	both := []effect{focusChanged, valueChanged}

	b.Global().
		Transition(EventValueSet, trans{Guard: differs, Actions: []action{setValue}, Effects: []effect{valueChanged}})

	for _, s := range []string{Idle, Focused} {
		b.State(s).
			Transition(EventTabClick, trans{
				Target:  Focused,
				Guard:   primitives.And(enabled, differs),
				Actions: []action{focusPayload, setValue},
				Effects: both,
			}).
			Transition(EventTabClick, trans{Target: Focused, Guard: enabled, Actions: []action{focusPayload}, Effects: focused}).
			Transition(EventTabFocus, trans{
				Target:  Focused,
				Guard:   primitives.And(enabled, automatic, differs),
				Actions: []action{focusPayload, setValue},
				Effects: both,
			}).
			Transition(EventTabFocus, trans{Target: Focused, Guard: enabled, Actions: []action{focusPayload}, Effects: focused})
	}

	b.State(Focused).
		Transition(EventTabBlur, trans{Target: Idle, Actions: []action{clearFocus}, Effects: focused}).
		Transition(EventArrowNext, move(next)).
		Transition(EventArrowPrev, move(prev)).
		Transition(EventHome, move(first)).
		Transition(EventEnd, move(last))
	return b.MustBuild()
}

var (
	enabled guard = func(c Context, evt primitives.Event) bool {
		v, _ := evt.Str("value")
		it, ok := c.Triggers.Find(v)
		return !ok || !it.Disabled
	}
	differs guard = func(c Context, evt primitives.Event) bool {
		v, _ := evt.Str("value")
		return v != c.Value
	}
	automatic guard = func(c Context, _ primitives.Event) bool {
		return c.ActivationMode == Automatic
	}
)

func focusPayload(c *Context, evt primitives.Event) error {
	c.FocusedValue, _ = evt.Str("value")
	return nil
}

func setValue(c *Context, evt primitives.Event) error {
	c.Value, _ = evt.Str("value")
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

// target resolves the trigger focus moves to, skipping disabled ones.
func (c Context) target(d direction) (string, bool) {
	from := c.FocusedValue
	if from == "" {
		from = c.Value
	}
	switch d {
	case next:
		return c.Triggers.Next(from, c.Loop)
	case prev:
		return c.Triggers.Prev(from, c.Loop)
	case first:
		return c.Triggers.First()
	default:
		return c.Triggers.Last()
	}
}

// move shifts focus between enabled triggers; automatic tabs select what
// they focus. No transition is taken when focus cannot move.
func move(d direction) trans {
	return trans{
		Guard: func(c Context, _ primitives.Event) bool {
			v, ok := c.target(d)
			return ok && v != c.FocusedValue
		},
		Actions: []action{func(c *Context, _ primitives.Event) error {
			c.FocusedValue, _ = c.target(d)
			if c.ActivationMode == Automatic {
				c.Value = c.FocusedValue
			}
			return nil
		}},
		Effects: []effect{focusChanged, func(c Context, evt primitives.Event) {
			if c.ActivationMode == Automatic {
				valueChanged(c, evt)
			}
		}},
	}
}

func valueChanged(c Context, _ primitives.Event) {
	if c.OnValueChange != nil {
		c.OnValueChange(c.Value)
	}
}

func focusChanged(c Context, _ primitives.Event) {
	if c.OnFocusChange != nil {
		c.OnFocusChange(c.FocusedValue)
	}
}
