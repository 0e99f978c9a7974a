// Package dialog implements the dialog widget machine and its connect function.
package dialog

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/primitives"
)

// Name is the widget name used as the root of every element id.
const Name = "dialog"

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
)

// Context is the instance data of a dialog.
type Context struct {
	Role                   string `json:"role" yaml:"role"`
	Modal                  bool   `json:"modal" yaml:"modal"`
	TrapFocus              bool   `json:"trapFocus" yaml:"trapFocus"`
	PreventScroll          bool   `json:"preventScroll" yaml:"preventScroll"`
	CloseOnEscape          bool   `json:"closeOnEscape" yaml:"closeOnEscape"`
	CloseOnInteractOutside bool   `json:"closeOnInteractOutside" yaml:"closeOnInteractOutside"`
	AriaLabel              string `json:"ariaLabel,omitempty" yaml:"ariaLabel,omitempty"`
	DefaultOpen            bool   `json:"defaultOpen" yaml:"defaultOpen"`

	OnOpenChange func(open bool) `json:"-" yaml:"-"`
}

// Options configures a dialog instance. Boolean options that default to
// true are pointers; nil keeps the default.
type Options struct {
	ID string `yaml:"id"`
	// Role is "dialog" or "alertdialog".
	Role                   string `yaml:"role"`
	DefaultOpen            bool   `yaml:"defaultOpen"`
	Modal                  *bool  `yaml:"modal"`
	TrapFocus              *bool  `yaml:"trapFocus"`
	PreventScroll          *bool  `yaml:"preventScroll"`
	CloseOnEscape          *bool  `yaml:"closeOnEscape"`
	CloseOnInteractOutside *bool  `yaml:"closeOnInteractOutside"`
	AriaLabel              string `yaml:"ariaLabel"`

	OnOpenChange func(open bool) `yaml:"-"`
}

func orTrue(b *bool) bool {
	return b == nil || *b
}

func (o Options) context() Context {
	role := o.Role
	if role != "alertdialog" {
		role = "dialog"
	}
	return Context{
		Role:                   role,
		Modal:                  orTrue(o.Modal),
		TrapFocus:              orTrue(o.TrapFocus),
		PreventScroll:          orTrue(o.PreventScroll),
		CloseOnEscape:          orTrue(o.CloseOnEscape),
		CloseOnInteractOutside: orTrue(o.CloseOnInteractOutside),
		AriaLabel:              o.AriaLabel,
		DefaultOpen:            o.DefaultOpen,
		OnOpenChange:           o.OnOpenChange,
	}
}

var spec = buildSpec()

// Spec returns the dialog chart.
func Spec() *headlessx.Spec[Context] {
	return spec
}

// New creates a dialog instance. Call Start before connecting.
func New(o Options, opts ...headlessx.Option) *headlessx.Machine[Context] {
	return headlessx.NewMachine(spec, dom.InstanceID(o.ID), o.context(), opts...)
}

func buildSpec() *primitives.MachineSpec[Context] {
	b := primitives.NewSpecBuilder[Context](Name, Closed).
		InitialFn(func(c Context) string {
			if c.DefaultOpen {
				return Open
			}
			return Closed
		}).
		Computed("open", func(_ Context, s string) any { return s == Open })

	opened := []primitives.Effect[Context]{openChanged(true)}
	closed := []primitives.Effect[Context]{openChanged(false)}

	b.State(Closed).
		Transition(EventOpen, primitives.TransitionConfig[Context]{Target: Open, Effects: opened}).
		Transition(EventTriggerClick, primitives.TransitionConfig[Context]{Target: Open, Effects: opened})
	b.State(Open).
		Transition(EventClose, primitives.TransitionConfig[Context]{Target: Closed, Effects: closed}).
		Transition(EventTriggerClick, primitives.TransitionConfig[Context]{Target: Closed, Effects: closed}).
		Transition(EventCloseTriggerClick, primitives.TransitionConfig[Context]{Target: Closed, Effects: closed}).
		Transition(EventEscape, primitives.TransitionConfig[Context]{
			Target:  Closed,
			Guard:   func(c Context, _ primitives.Event) bool { return c.CloseOnEscape },
			Effects: closed,
		}).
		Transition(EventOutsideClick, primitives.TransitionConfig[Context]{
			Target:  Closed,
			Guard:   func(c Context, _ primitives.Event) bool { return c.CloseOnInteractOutside },
			Effects: closed,
		})
	return b.MustBuild()
}

func openChanged(open bool) primitives.Effect[Context] {
	return func(c Context, _ primitives.Event) {
		if c.OnOpenChange != nil {
			c.OnOpenChange(open)
		}
	}
}
