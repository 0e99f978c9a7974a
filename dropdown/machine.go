// Package dropdown implements the select widget. The package is not named
// select because that is a Go keyword; ids and data-scope still use "select".
package dropdown

import (
	"slices"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/collection"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/primitives"
)

// Name is the widget name used as the root of every element id.
const Name = "select"

// States.
const (
	Idle    = "idle"
	Focused = "focused"
	Open    = "open"
)

// Events.
const (
	EventTriggerClick    = "TRIGGER.CLICK"
	EventTriggerFocus    = "TRIGGER.FOCUS"
	EventTriggerBlur     = "TRIGGER.BLUR"
	EventOpen            = "OPEN"
	EventClose           = "CLOSE"
	EventItemClick       = "ITEM.CLICK"
	EventHighlightSet    = "HIGHLIGHTED_VALUE.SET"
	EventArrowDown       = "CONTENT.ARROW_DOWN"
	EventArrowUp         = "CONTENT.ARROW_UP"
	EventHome            = "CONTENT.HOME"
	EventEnd             = "CONTENT.END"
	EventEnter           = "CONTENT.ENTER"
	EventEscape          = "ESCAPE"
	EventSelectValue     = "SELECT.VALUE"
	EventValueSet        = "VALUE.SET"
	EventClear           = "CLEAR"
	valueSeparator       = ", "
	defaultCloseOnSelect = true
)

// ValueChange is passed to OnValueChange.
type ValueChange struct {
	Value []string
	Items []collection.Item
}

// Context is the instance data of a select.
type Context struct {
	Collection       *collection.Collection `json:"collection" yaml:"collection"`
	Value            []string               `json:"value" yaml:"value"`
	HighlightedValue string                 `json:"highlightedValue,omitempty" yaml:"highlightedValue,omitempty"`
	Multiple         bool                   `json:"multiple" yaml:"multiple"`
	Disabled         bool                   `json:"disabled" yaml:"disabled"`
	ReadOnly         bool                   `json:"readOnly" yaml:"readOnly"`
	Invalid          bool                   `json:"invalid" yaml:"invalid"`
	Required         bool                   `json:"required" yaml:"required"`
	Name             string                 `json:"name,omitempty" yaml:"name,omitempty"`
	CloseOnSelect    bool                   `json:"closeOnSelect" yaml:"closeOnSelect"`
	Loop             bool                   `json:"loop" yaml:"loop"`

	OnValueChange     func(ValueChange) `json:"-" yaml:"-"`
	OnOpenChange      func(open bool)   `json:"-" yaml:"-"`
	OnHighlightChange func(string)      `json:"-" yaml:"-"`
}

// Empty reports whether no value is selected.
func (c Context) Empty() bool {
	return len(c.Value) == 0
}

// ValueAsString joins the labels of the selected items; values missing from
// the collection are skipped.
func (c Context) ValueAsString() string {
	return c.Collection.Stringify(c.Value, valueSeparator)
}

// SelectedItems returns the collection items of the value, in value order.
func (c Context) SelectedItems() []collection.Item {
	out := make([]collection.Item, 0, len(c.Value))
	for _, v := range c.Value {
		if it, ok := c.Collection.Find(v); ok {
			out = append(out, it)
		}
	}
	return out
}

// Selected reports whether value is selected.
func (c Context) Selected(value string) bool {
	return slices.Contains(c.Value, value)
}

// Interactive reports whether user input is accepted.
func (c Context) Interactive() bool {
	return !c.Disabled && !c.ReadOnly
}

// Options configures a select instance.
type Options struct {
	ID string `yaml:"id"`
	// Items builds the collection when Collection is nil.
	Items      []collection.Item      `yaml:"items"`
	Collection *collection.Collection `yaml:"-"`
	// Value is the initial selection; DefaultValue is used when Value is nil.
	Value        []string `yaml:"value"`
	DefaultValue []string `yaml:"defaultValue"`
	Multiple     bool     `yaml:"multiple"`
	Disabled     bool     `yaml:"disabled"`
	ReadOnly     bool     `yaml:"readOnly"`
	Invalid      bool     `yaml:"invalid"`
	Required     bool     `yaml:"required"`
	Name         string   `yaml:"name"`
	// CloseOnSelect defaults to true.
	CloseOnSelect *bool `yaml:"closeOnSelect"`
	Loop          bool  `yaml:"loop"`

	OnValueChange     func(ValueChange) `yaml:"-"`
	OnOpenChange      func(open bool)   `yaml:"-"`
	OnHighlightChange func(string)      `yaml:"-"`
}

func (o Options) context() Context {
	c := Context{
		Collection:        o.Collection,
		Multiple:          o.Multiple,
		Disabled:          o.Disabled,
		ReadOnly:          o.ReadOnly,
		Invalid:           o.Invalid,
		Required:          o.Required,
		Name:              o.Name,
		CloseOnSelect:     defaultCloseOnSelect,
		Loop:              o.Loop,
		OnValueChange:     o.OnValueChange,
		OnOpenChange:      o.OnOpenChange,
		OnHighlightChange: o.OnHighlightChange,
	}
	if c.Collection == nil {
		c.Collection = collection.New(o.Items)
	}
	if o.CloseOnSelect != nil {
		c.CloseOnSelect = *o.CloseOnSelect
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

// limit keeps at most one value in single mode.
func (c Context) limit(values []string) []string {
	if !c.Multiple && len(values) > 1 {
		return values[:1]
	}
	return values
}

var spec = buildSpec()

// Spec returns the select chart.
func Spec() *headlessx.Spec[Context] {
	return spec
}

// New creates a select instance. Call Start before connecting.
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
		Expect(EventItemClick, primitives.RequireString("value")).
		Expect(EventHighlightSet, primitives.RequireString("value")).
		Expect(EventSelectValue, primitives.RequireString("value")).
		Expect(EventValueSet, primitives.RequireStrings("value")).
		Computed("empty", func(c Context, _ string) any { return c.Empty() }).
		Computed("valueAsString", func(c Context, _ string) any { return c.ValueAsString() }).
		Computed("hasSelectedItems", func(c Context, _ string) any { return !c.Empty() }).
		Computed("open", func(_ Context, s string) any { return s == Open })

	interactive := func(c Context, _ primitives.Event) bool { return c.Interactive() }
	opened := []effect{openChanged(true)}
	closed := []effect{openChanged(false)}
	changed := []effect{valueChanged}

	b.Global().
		Transition(EventSelectValue, trans{Guard: picksNew, Actions: []action{selectValue}, Effects: changed}).
		Transition(EventValueSet, trans{Actions: []action{setValue}, Effects: changed}).
		Transition(EventClear, trans{Guard: hasValue, Actions: []action{clearValue}, Effects: changed})

	b.State(Idle).
		Transition(EventTriggerClick, trans{Target: Open, Guard: interactive, Actions: []action{highlightFirstSelected}, Effects: opened}).
		Transition(EventOpen, trans{Target: Open, Guard: interactive, Actions: []action{highlightFirstSelected}, Effects: opened}).
		On(EventTriggerFocus, Focused, nil)
	b.State(Focused).
		Transition(EventTriggerClick, trans{Target: Open, Guard: interactive, Actions: []action{highlightFirstSelected}, Effects: opened}).
		Transition(EventOpen, trans{Target: Open, Guard: interactive, Actions: []action{highlightFirstSelected}, Effects: opened}).
		On(EventTriggerBlur, Idle, nil)
	b.State(Open).
		Transition(EventTriggerClick, trans{Target: Focused, Actions: []action{clearHighlight}, Effects: closed}).
		Transition(EventClose, trans{Target: Focused, Actions: []action{clearHighlight}, Effects: closed}).
		Transition(EventEscape, trans{Target: Focused, Actions: []action{clearHighlight}, Effects: closed}).
		Transition(EventItemClick, trans{
			Target:  Focused,
			Guard:   primitives.And(itemEnabled, closesOnSelect),
			Actions: []action{selectValue, clearHighlight},
			Effects: []effect{valueChanged, openChanged(false)},
		}).
		Transition(EventItemClick, trans{Guard: itemEnabled, Actions: []action{selectValue, highlightPayload}, Effects: changed}).
		Transition(EventEnter, trans{
			Target:  Focused,
			Guard:   primitives.And(hasHighlight, closesOnSelect),
			Actions: []action{selectHighlighted, clearHighlight},
			Effects: []effect{valueChanged, openChanged(false)},
		}).
		Transition(EventEnter, trans{Guard: hasHighlight, Actions: []action{selectHighlighted}, Effects: changed}).
		Transition(EventHighlightSet, trans{Actions: []action{highlightPayload}, Effects: []effect{highlightChanged}}).
		Transition(EventArrowDown, trans{Actions: []action{moveHighlight(next)}, Effects: []effect{highlightChanged}}).
		Transition(EventArrowUp, trans{Actions: []action{moveHighlight(prev)}, Effects: []effect{highlightChanged}}).
		Transition(EventHome, trans{Actions: []action{moveHighlight(first)}, Effects: []effect{highlightChanged}}).
		Transition(EventEnd, trans{Actions: []action{moveHighlight(last)}, Effects: []effect{highlightChanged}})
	return b.MustBuild()
}

var (
	itemEnabled guard = func(c Context, evt primitives.Event) bool {
		v, _ := evt.Str("value")
		return c.Collection.Enabled(v)
	}
	hasHighlight guard = func(c Context, _ primitives.Event) bool {
		return c.HighlightedValue != "" && c.Collection.Enabled(c.HighlightedValue)
	}
	closesOnSelect guard = func(c Context, _ primitives.Event) bool {
		return c.CloseOnSelect && !c.Multiple
	}
	// picksNew fails when a single-mode select already holds the value.
	picksNew guard = func(c Context, evt primitives.Event) bool {
		v, _ := evt.Str("value")
		return c.Multiple || len(c.Value) != 1 || c.Value[0] != v
	}
	hasValue guard = func(c Context, _ primitives.Event) bool {
		return !c.Empty()
	}
)

// pick applies one selection: single mode replaces, multiple mode toggles.
func (c *Context) pick(value string) {
	if !c.Multiple {
		c.Value = []string{value}
		return
	}
	if i := slices.Index(c.Value, value); i >= 0 {
		c.Value = slices.Delete(c.Value, i, i+1)
		return
	}
	c.Value = append(c.Value, value)
}

func selectValue(c *Context, evt primitives.Event) error {
	v, _ := evt.Str("value")
	c.pick(v)
	return nil
}

func selectHighlighted(c *Context, _ primitives.Event) error {
	c.pick(c.HighlightedValue)
	return nil
}

func setValue(c *Context, evt primitives.Event) error {
	values, _ := evt.Strings("value")
	c.Value = c.limit(values)
	return nil
}

func clearValue(c *Context, _ primitives.Event) error {
	c.Value = []string{}
	return nil
}

func highlightPayload(c *Context, evt primitives.Event) error {
	v, _ := evt.Str("value")
	if v == "" || c.Collection.Enabled(v) {
		c.HighlightedValue = v
	}
	return nil
}

func highlightFirstSelected(c *Context, _ primitives.Event) error {
	c.HighlightedValue = ""
	for _, v := range c.Collection.Sort(c.Value) {
		if c.Collection.Enabled(v) {
			c.HighlightedValue = v
			return nil
		}
	}
	return nil
}

func clearHighlight(c *Context, _ primitives.Event) error {
	c.HighlightedValue = ""
	return nil
}

type direction int

const (
	next direction = iota
	prev
	first
	last
)

func moveHighlight(d direction) action {
	return func(c *Context, _ primitives.Event) error {
		var (
			v  string
			ok bool
		)
		switch d {
		case next:
			v, ok = c.Collection.Next(c.HighlightedValue, c.Loop)
		case prev:
			v, ok = c.Collection.Prev(c.HighlightedValue, c.Loop)
		case first:
			v, ok = c.Collection.First()
		case last:
			v, ok = c.Collection.Last()
		}
		if ok {
			c.HighlightedValue = v
		}
		return nil
	}
}

func valueChanged(c Context, _ primitives.Event) {
	if c.OnValueChange != nil {
		c.OnValueChange(ValueChange{Value: slices.Clone(c.Value), Items: c.SelectedItems()})
	}
}

func openChanged(open bool) effect {
	return func(c Context, _ primitives.Event) {
		if c.OnOpenChange != nil {
			c.OnOpenChange(open)
		}
	}
}

func highlightChanged(c Context, _ primitives.Event) {
	if c.OnHighlightChange != nil {
		c.OnHighlightChange(c.HighlightedValue)
	}
}
