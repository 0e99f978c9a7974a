// Package menu implements the menu widget: a disclosure whose content is a
// list of actionable items.
package menu

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/collection"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/primitives"
)

// Name is the widget name used as the root of every element id.
const Name = "menu"

// States.
const (
	Closed = "closed"
	Open   = "open"
)

// Events.
const (
	EventOpen              = "OPEN"
	EventClose             = "CLOSE"
	EventTriggerClick      = "TRIGGER.CLICK"
	EventCloseTriggerClick = "CLOSE_TRIGGER.CLICK"
	EventEscape            = "ESCAPE"
	EventOutsideClick      = "OUTSIDE.CLICK"
	EventItemClick         = "ITEM.CLICK"
	EventItemHighlight     = "ITEM.HIGHLIGHT"
	EventArrowDown         = "ARROW_DOWN"
	EventArrowUp           = "ARROW_UP"
	EventHome              = "HOME"
	EventEnd               = "END"
	EventEnter             = "ENTER"
)

// Context is the instance data of a menu.
type Context struct {
	Collection             *collection.Collection `json:"items" yaml:"items"`
	HighlightedValue       string                 `json:"highlightedValue,omitempty" yaml:"highlightedValue,omitempty"`
	SelectedValue          string                 `json:"selectedValue,omitempty" yaml:"selectedValue,omitempty"`
	Loop                   bool                   `json:"loop" yaml:"loop"`
	CloseOnSelect          bool                   `json:"closeOnSelect" yaml:"closeOnSelect"`
	CloseOnEscape          bool                   `json:"closeOnEscape" yaml:"closeOnEscape"`
	CloseOnInteractOutside bool                   `json:"closeOnInteractOutside" yaml:"closeOnInteractOutside"`
	AriaLabel              string                 `json:"ariaLabel,omitempty" yaml:"ariaLabel,omitempty"`
	DefaultOpen            bool                   `json:"defaultOpen" yaml:"defaultOpen"`

	OnSelect          func(value string) `json:"-" yaml:"-"`
	OnOpenChange      func(open bool)    `json:"-" yaml:"-"`
	OnHighlightChange func(value string) `json:"-" yaml:"-"`
}

// Options configures a menu instance. Boolean options that default to true
// are pointers; nil keeps the default.
type Options struct {
	ID string `yaml:"id"`
	// Items are the menu entries in navigation order.
	Items                  []collection.Item `yaml:"items"`
	Loop                   bool              `yaml:"loop"`
	DefaultOpen            bool              `yaml:"defaultOpen"`
	CloseOnSelect          *bool             `yaml:"closeOnSelect"`
	CloseOnEscape          *bool             `yaml:"closeOnEscape"`
	CloseOnInteractOutside *bool             `yaml:"closeOnInteractOutside"`
	AriaLabel              string            `yaml:"ariaLabel"`

	OnSelect          func(value string) `yaml:"-"`
	OnOpenChange      func(open bool)    `yaml:"-"`
	OnHighlightChange func(value string) `yaml:"-"`
}

func orTrue(b *bool) bool {
	return b == nil || *b
}

func (o Options) context() Context {
	return Context{
		Collection:             collection.New(o.Items),
		Loop:                   o.Loop,
		CloseOnSelect:          orTrue(o.CloseOnSelect),
		CloseOnEscape:          orTrue(o.CloseOnEscape),
		CloseOnInteractOutside: orTrue(o.CloseOnInteractOutside),
		AriaLabel:              o.AriaLabel,
		DefaultOpen:            o.DefaultOpen,
		OnSelect:               o.OnSelect,
		OnOpenChange:           o.OnOpenChange,
		OnHighlightChange:      o.OnHighlightChange,
	}
}

var spec = buildSpec()

// Spec returns the menu chart.
func Spec() *headlessx.Spec[Context] {
	return spec
}

// New creates a menu instance. Call Start before connecting.
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
	b := primitives.NewSpecBuilder[Context](Name, Closed).
		InitialFn(func(c Context) string {
			if c.DefaultOpen {
				return Open
			}
			return Closed
		}).
		Expect(EventItemClick, primitives.RequireString("value")).
		Expect(EventItemHighlight, primitives.RequireString("value")).
		Computed("open", func(_ Context, s string) any { return s == Open })

	opened := []effect{openChanged(true)}
	closed := []effect{openChanged(false)}
	closing := func(g guard) trans {
		return trans{Target: Closed, Guard: g, Actions: []action{clearHighlight}, Effects: closed}
	}
	selecting := []effect{selected, openChanged(false)}

	b.State(Closed).
		Transition(EventOpen, trans{Target: Open, Effects: opened}).
		Transition(EventTriggerClick, trans{Target: Open, Effects: opened}).
		Transition(EventArrowDown, trans{Target: Open, Actions: []action{moveHighlight(first)}, Effects: opened}).
		Transition(EventArrowUp, trans{Target: Open, Actions: []action{moveHighlight(last)}, Effects: opened})
	b.State(Open).
		Transition(EventClose, closing(nil)).
		Transition(EventTriggerClick, closing(nil)).
		Transition(EventCloseTriggerClick, closing(nil)).
		Transition(EventEscape, closing(func(c Context, _ primitives.Event) bool { return c.CloseOnEscape })).
		Transition(EventOutsideClick, closing(func(c Context, _ primitives.Event) bool { return c.CloseOnInteractOutside })).
		Transition(EventItemClick, trans{
			Target:  Closed,
			Guard:   primitives.And(itemEnabled, closesOnSelect),
			Actions: []action{selectPayload, clearHighlight},
			Effects: selecting,
		}).
		Transition(EventItemClick, trans{Guard: itemEnabled, Actions: []action{selectPayload, highlightPayload}, Effects: []effect{selected}}).
		Transition(EventEnter, trans{
			Target:  Closed,
			Guard:   primitives.And(hasHighlight, closesOnSelect),
			Actions: []action{selectHighlighted, clearHighlight},
			Effects: selecting,
		}).
		Transition(EventEnter, trans{Guard: hasHighlight, Actions: []action{selectHighlighted}, Effects: []effect{selected}}).
		Transition(EventItemHighlight, trans{Actions: []action{highlightPayload}, Effects: []effect{highlightChanged}}).
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
		return c.CloseOnSelect
	}
)

func selectPayload(c *Context, evt primitives.Event) error {
	c.SelectedValue, _ = evt.Str("value")
	return nil
}

func selectHighlighted(c *Context, _ primitives.Event) error {
	c.SelectedValue = c.HighlightedValue
	return nil
}

func highlightPayload(c *Context, evt primitives.Event) error {
	v, _ := evt.Str("value")
	if v == "" || c.Collection.Enabled(v) {
		c.HighlightedValue = v
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

func selected(c Context, _ primitives.Event) {
	if c.OnSelect != nil {
		c.OnSelect(c.SelectedValue)
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
