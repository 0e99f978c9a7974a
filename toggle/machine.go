// Package toggle implements the switch widget. The package is not named
// switch because that is a Go keyword; ids and data-scope still use "switch".
package toggle

import (
	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/checkable"
)

// Name is the widget name used as the root of every element id.
const Name = "switch"

// States and event types.
const (
	Unchecked = checkable.Unchecked
	Checked   = checkable.Checked

	EventCheckedSet    = checkable.EventCheckedSet
	EventCheckedToggle = checkable.EventCheckedToggle
)

// Context is the instance data of a switch.
type Context = checkable.Context

// CheckedChange is passed to Options.OnCheckedChange.
type CheckedChange = checkable.CheckedChange

var spec = checkable.Spec(Name, false)

// Spec returns the switch chart.
func Spec() *headlessx.Spec[Context] {
	return spec
}

// Options configures a switch instance.
type Options struct {
	ID string `yaml:"id"`
	// Checked makes the instance controlled.
	Checked        *bool  `yaml:"checked"`
	DefaultChecked bool   `yaml:"defaultChecked"`
	Disabled       bool   `yaml:"disabled"`
	ReadOnly       bool   `yaml:"readOnly"`
	Required       bool   `yaml:"required"`
	Invalid        bool   `yaml:"invalid"`
	Name           string `yaml:"name"`
	Value          string `yaml:"value"`

	OnCheckedChange func(CheckedChange) `yaml:"-"`
}

// New creates a switch instance. Call Start before connecting.
func New(o Options, opts ...headlessx.Option) *headlessx.Machine[Context] {
	ctx := Context{
		Checked:         o.DefaultChecked,
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
	return headlessx.NewMachine(spec, dom.InstanceID(o.ID), ctx, opts...)
}
