// Package slider implements the slider widget machine and its connect function.
//
// Every stored thumb value lies in [Min, EffectiveMax] on a whole step from
// Min, and thumbs never cross their neighbours.
package slider

import (
	"math"
	"slices"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/primitives"
)

// Name is the widget name used as the root of every element id.
const Name = "slider"

// States.
const (
	Idle     = "idle"
	Focus    = "focus"
	Dragging = "dragging"
)

// Events.
const (
	EventThumbSet       = "THUMB.SET"
	EventValueSet       = "VALUE.SET"
	EventValueIncrement = "VALUE.INCREMENT"
	EventValueDecrement = "VALUE.DECREMENT"
	EventFocus          = "FOCUS"
	EventBlur           = "BLUR"
	EventPointerDown    = "POINTER.DOWN"
	EventPointerMove    = "POINTER.MOVE"
	EventPointerUp      = "POINTER.UP"
	EventHome           = "HOME"
	EventEnd            = "END"
)

// Context is the instance data of a slider.
type Context struct {
	Value        []float64 `json:"value" yaml:"value"`
	Min          float64   `json:"min" yaml:"min"`
	Max          float64   `json:"max" yaml:"max"`
	Step         float64   `json:"step" yaml:"step"`
	Disabled     bool      `json:"disabled" yaml:"disabled"`
	ReadOnly     bool      `json:"readOnly" yaml:"readOnly"`
	Invalid      bool      `json:"invalid" yaml:"invalid"`
	Name         string    `json:"name,omitempty" yaml:"name,omitempty"`
	Orientation  string    `json:"orientation" yaml:"orientation"`
	FocusedIndex int       `json:"focusedIndex" yaml:"focusedIndex"`

	OnValueChange    func([]float64) `json:"-" yaml:"-"`
	OnValueChangeEnd func([]float64) `json:"-" yaml:"-"`
}

// Interactive reports whether pointer and keyboard input is accepted.
func (c Context) Interactive() bool {
	return !c.Disabled && !c.ReadOnly
}

// Options configures a slider instance.
type Options struct {
	ID string `yaml:"id"`
	// Value holds one entry per thumb; defaults to [Min]. Non-finite
	// entries become Min.
	Value []float64 `yaml:"value"`
	Min   float64   `yaml:"min"`
	// Max defaults to Min+100 when not greater than Min. A non-finite Min
	// is treated as 0.
	Max float64 `yaml:"max"`
	// Step defaults to 1 when not a positive finite number.
	Step        float64 `yaml:"step"`
	Disabled    bool    `yaml:"disabled"`
	ReadOnly    bool    `yaml:"readOnly"`
	Invalid     bool    `yaml:"invalid"`
	Name        string  `yaml:"name"`
	Orientation string  `yaml:"orientation"`

	OnValueChange    func([]float64) `yaml:"-"`
	OnValueChangeEnd func([]float64) `yaml:"-"`
}

func (o Options) context() Context {
	c := Context{
		Min:              o.Min,
		Max:              o.Max,
		Step:             o.Step,
		Disabled:         o.Disabled,
		ReadOnly:         o.ReadOnly,
		Invalid:          o.Invalid,
		Name:             o.Name,
		Orientation:      o.Orientation,
		FocusedIndex:     -1,
		OnValueChange:    o.OnValueChange,
		OnValueChangeEnd: o.OnValueChangeEnd,
	}
	if !finite(c.Min) {
		c.Min = 0
	}
	if !finite(c.Max) || c.Max <= c.Min {
		c.Max = c.Min + 100
	}
	if !finite(c.Step) || c.Step <= 0 {
		c.Step = 1
	}
	if c.Orientation == "" {
		c.Orientation = "horizontal"
	}
	c.Value = c.normalized(o.Value)
	if len(c.Value) == 0 {
		c.Value = []float64{c.Min}
	}
	return c
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// normalized snaps and sorts a full value sequence. Non-finite entries
// become Min.
func (c Context) normalized(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if !finite(v) {
			v = c.Min
		}
		out[i] = c.Snap(v)
	}
	slices.Sort(out)
	return out
}

var spec = buildSpec()

// Spec returns the slider chart.
func Spec() *headlessx.Spec[Context] {
	return spec
}

// New creates a slider instance. Call Start before connecting.
func New(o Options, opts ...headlessx.Option) *headlessx.Machine[Context] {
	return headlessx.NewMachine(spec, dom.InstanceID(o.ID), o.context(), opts...)
}

func buildSpec() *primitives.MachineSpec[Context] {
	b := primitives.NewSpecBuilder[Context](Name, Idle).
		Clone(func(c Context) Context {
			c.Value = slices.Clone(c.Value)
			return c
		}).
		Expect(EventThumbSet, primitives.AllOf(primitives.RequireIndex("index"), primitives.RequireNumber("value"))).
		Expect(EventValueSet, primitives.RequireFloats("value")).
		Expect(EventValueIncrement, primitives.RequireIndex("index")).
		Expect(EventValueDecrement, primitives.RequireIndex("index")).
		Expect(EventFocus, primitives.RequireIndex("index")).
		Expect(EventPointerDown, primitives.AllOf(primitives.RequireNumber("value"), primitives.OptionalIndex("index"))).
		Expect(EventPointerMove, primitives.RequireNumber("value")).
		Expect(EventHome, primitives.RequireIndex("index")).
		Expect(EventEnd, primitives.RequireIndex("index")).
		Computed("valuePercent", func(c Context, _ string) any {
			out := make([]float64, len(c.Value))
			for i, v := range c.Value {
				out[i] = c.Percent(v)
			}
			return out
		}).
		Computed("isDragging", func(_ Context, s string) any { return s == Dragging })

	changed := []primitives.Effect[Context]{valueChanged}
	interactive := func(c Context, _ primitives.Event) bool { return c.Interactive() }
	moves := func(a primitives.Action[Context], g primitives.Guard[Context]) primitives.TransitionConfig[Context] {
		return primitives.TransitionConfig[Context]{Guard: primitives.And(g, differs(a)), Actions: acts(a), Effects: changed}
	}
	always := func(Context, primitives.Event) bool { return true }

	b.Global().
		Transition(EventThumbSet, moves(setThumbValue, always)).
		Transition(EventValueSet, moves(setValue, always)).
		Transition(EventValueIncrement, moves(stepBy(1), interactive)).
		Transition(EventValueDecrement, moves(stepBy(-1), interactive)).
		Transition(EventHome, moves(toBound(false), interactive)).
		Transition(EventEnd, moves(toBound(true), interactive))

	press := func(source string) {
		b.State(source).
			Transition(EventPointerDown, primitives.TransitionConfig[Context]{
				Target:  Dragging,
				Guard:   primitives.And(interactive, differs(pointerDown)),
				Actions: acts(pointerDown),
				Effects: changed,
			}).
			Transition(EventPointerDown, primitives.TransitionConfig[Context]{Target: Dragging, Guard: interactive, Actions: acts(pointerDown)})
	}

	b.State(Idle).
		On(EventFocus, Focus, interactive, focusThumb)
	press(Idle)
	b.State(Focus).
		On(EventFocus, "", nil, focusThumb).
		On(EventBlur, Idle, nil, blur)
	press(Focus)
	b.State(Dragging).
		Transition(EventPointerMove, moves(pointerMove, always)).
		Transition(EventPointerUp, primitives.TransitionConfig[Context]{Target: Focus, Effects: []primitives.Effect[Context]{valueChangeEnd}})
	return b.MustBuild()
}

func acts(a ...primitives.Action[Context]) []primitives.Action[Context] {
	return a
}

// differs passes when a would change the value. A failing action passes so
// its error reaches the caller.
func differs(a primitives.Action[Context]) primitives.Guard[Context] {
	return func(c Context, evt primitives.Event) bool {
		next := c
		next.Value = slices.Clone(c.Value)
		if err := a(&next, evt); err != nil {
			return true
		}
		return !slices.Equal(next.Value, c.Value)
	}
}

func thumbIndex(c *Context, evt primitives.Event) (int, error) {
	i, err := evt.Int("index")
	if err != nil {
		return 0, err
	}
	if i >= len(c.Value) {
		return 0, primitives.NewError(Name+".send "+evt.Type, primitives.KindInvalidPayload,
			"thumb index %d out of range [0, %d)", i, len(c.Value))
	}
	return i, nil
}

func setThumbValue(c *Context, evt primitives.Event) error {
	i, err := thumbIndex(c, evt)
	if err != nil {
		return err
	}
	v, _ := evt.Float("value")
	c.setThumb(i, v)
	return nil
}

func setValue(c *Context, evt primitives.Event) error {
	values, _ := evt.Floats("value")
	if len(values) == 0 {
		return primitives.NewError(Name+".send "+evt.Type, primitives.KindInvalidPayload, "empty value")
	}
	c.Value = c.normalized(values)
	return nil
}

func stepBy(dir float64) primitives.Action[Context] {
	return func(c *Context, evt primitives.Event) error {
		i, err := thumbIndex(c, evt)
		if err != nil {
			return err
		}
		c.setThumb(i, c.Value[i]+dir*c.Step)
		return nil
	}
}

func toBound(upper bool) primitives.Action[Context] {
	return func(c *Context, evt primitives.Event) error {
		i, err := thumbIndex(c, evt)
		if err != nil {
			return err
		}
		lo, hi := c.thumbBounds(i)
		if upper {
			c.Value[i] = hi
		} else {
			c.Value[i] = lo
		}
		return nil
	}
}

func focusThumb(c *Context, evt primitives.Event) error {
	i, err := thumbIndex(c, evt)
	if err != nil {
		return err
	}
	c.FocusedIndex = i
	return nil
}

func blur(c *Context, _ primitives.Event) error {
	c.FocusedIndex = -1
	return nil
}

func pointerDown(c *Context, evt primitives.Event) error {
	v, _ := evt.Float("value")
	i := c.closestThumb(v)
	if evt.Has("index") {
		var err error
		if i, err = thumbIndex(c, evt); err != nil {
			return err
		}
	}
	c.FocusedIndex = i
	c.setThumb(i, v)
	return nil
}

func pointerMove(c *Context, evt primitives.Event) error {
	if c.FocusedIndex < 0 || c.FocusedIndex >= len(c.Value) {
		return nil
	}
	v, _ := evt.Float("value")
	c.setThumb(c.FocusedIndex, v)
	return nil
}

func valueChanged(c Context, _ primitives.Event) {
	if c.OnValueChange != nil {
		c.OnValueChange(slices.Clone(c.Value))
	}
}

func valueChangeEnd(c Context, _ primitives.Event) {
	if c.OnValueChangeEnd != nil {
		c.OnValueChangeEnd(slices.Clone(c.Value))
	}
}
