// Package checkbox implements the checkbox widget machine and its connect function.
package checkbox

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/checkable"
)

// Name is the widget name used as the root of every element id.
const Name = "checkbox"

// States and event types.
const (
	Unchecked     = checkable.Unchecked
	Checked       = checkable.Checked
	Indeterminate = checkable.Indeterminate

	EventCheckedSet       = checkable.EventCheckedSet
	EventCheckedToggle    = checkable.EventCheckedToggle
	EventIndeterminateSet = checkable.EventIndeterminateSet
)

// Context is the instance data of a checkbox.
type Context = checkable.Context

// CheckedChange is passed to Options.OnCheckedChange.
type CheckedChange = checkable.CheckedChange

var spec = checkable.Spec(Name, true)

// Spec returns the checkbox chart.
func Spec() *headlessx.Spec[Context] {
	return spec
}

// Options configures a checkbox instance.
type Options struct {
	ID string `yaml:"id"`
	// Checked makes the instance controlled: toggling through the API no
	// longer changes state, the host pushes CHECKED.SET instead.
	Checked        *bool  `yaml:"checked"`
	DefaultChecked bool   `yaml:"defaultChecked"`
	Indeterminate  bool   `yaml:"indeterminate"`
	Disabled       bool   `yaml:"disabled"`
	ReadOnly       bool   `yaml:"readOnly"`
	Required       bool   `yaml:"required"`
	Invalid        bool   `yaml:"invalid"`
	Name           string `yaml:"name"`
	// Value is submitted with the form; defaults to "on".
	Value string `yaml:"value"`

	OnCheckedChange func(CheckedChange) `yaml:"-"`
}

func (o Options) context() Context {
	ctx := Context{
		Checked:         o.DefaultChecked,
		Indeterminate:   o.Indeterminate,
		Disabled:        o.Disabled,
		ReadOnly:        o.ReadOnly,
		Required:        o.Required,
		Invalid:         o.Invalid,
		Name:            o.Name,
		Value:           o.Value,
		OnCheckedChange: o.OnCheckedChange,
	}
	if o.Checked != nil {
		ctx.Checked = *o.Checked
		ctx.Controlled = true
	}
	if ctx.Value == "" {
		ctx.Value = "on"
	}
	return ctx
}

// New creates a checkbox instance. Call Start before connecting.
func New(o Options, opts ...headlessx.Option) *headlessx.Machine[Context] {
	return headlessx.NewMachine(spec, dom.InstanceID(o.ID), o.context(), opts...)
}
