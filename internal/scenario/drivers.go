package scenario

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/comalice/headlessx/accordion"
	"github.com/comalice/headlessx/checkbox"
	"github.com/comalice/headlessx/collection"
	"github.com/comalice/headlessx/dialog"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/dropdown"
	"github.com/comalice/headlessx/internal/core"
	"github.com/comalice/headlessx/internal/primitives"
	"github.com/comalice/headlessx/internal/production"
	"github.com/comalice/headlessx/menu"
	"github.com/comalice/headlessx/normalize"
	"github.com/comalice/headlessx/slider"
	"github.com/comalice/headlessx/tabs"
	"github.com/comalice/headlessx/toggle"
)

// instance is a started-or-not widget machine behind a uniform surface.
type instance interface {
	// Restore resumes the instance from its record in p.
	Restore(ctx context.Context, p core.Persister) error
	Start() error
	Send(primitives.Event) error
	Record() core.Record
	// Part renders the attributes of a named part; arg selects an item,
	// tab, or thumb for parts that need one.
	Part(name, arg string) (map[string]any, error)
}

type builder interface {
	build(options *yaml.Node, opts ...core.Option) (instance, error)
	chart() primitives.Chart
}

type partFunc[A any] func(api A, arg string) (dom.Props, error)

type driver[C, O, A any] struct {
	spec    *primitives.MachineSpec[C]
	new     func(O, ...core.Option) *core.Machine[C]
	connect func(primitives.Snapshot[C], primitives.Dispatch, normalize.Normalizer) (A, error)
	parts   map[string]partFunc[A]
}

func (d driver[C, O, A]) build(options *yaml.Node, opts ...core.Option) (instance, error) {
	var o O
	if err := options.Decode(&o); err != nil {
		return nil, fmt.Errorf("%s options: %w", d.spec.ID, err)
	}
	return &widget[C, O, A]{d: d, m: d.new(o, opts...)}, nil
}

func (d driver[C, O, A]) chart() primitives.Chart {
	return d.spec.Chart()
}

type widget[C, O, A any] struct {
	d driver[C, O, A]
	m *core.Machine[C]
}

func (w *widget[C, O, A]) Restore(ctx context.Context, p core.Persister) error {
	return production.RestoreFrom(ctx, w.m, p)
}

func (w *widget[C, O, A]) Start() error                    { return w.m.Start() }
func (w *widget[C, O, A]) Send(evt primitives.Event) error { return w.m.Send(evt) }
func (w *widget[C, O, A]) Record() core.Record             { return w.m.Record() }

func (w *widget[C, O, A]) Part(name, arg string) (map[string]any, error) {
	fn, ok := w.d.parts[name]
	if !ok {
		return nil, fmt.Errorf("%s has no part %q", w.d.spec.ID, name)
	}
	api, err := w.d.connect(w.m.State(), w.m.Send, normalize.Identity)
	if err != nil {
		return nil, err
	}
	p, err := fn(api, arg)
	if err != nil {
		return nil, fmt.Errorf("%s part %s: %w", w.d.spec.ID, name, err)
	}
	return p.Attributes(), nil
}

// static adapts a part builder that takes no argument.
func static[A any](fn func(A) dom.Props) partFunc[A] {
	return func(api A, _ string) (dom.Props, error) {
		return fn(api), nil
	}
}

// keyed adapts a part builder keyed by a string value.
func keyed[A any](fn func(A, string) dom.Props) partFunc[A] {
	return func(api A, arg string) (dom.Props, error) {
		if arg == "" {
			return nil, fmt.Errorf("needs a value, e.g. part:value")
		}
		return fn(api, arg), nil
	}
}

// indexed adapts a part builder keyed by a thumb index.
func indexed[A any](fn func(A, int) dom.Props) partFunc[A] {
	return func(api A, arg string) (dom.Props, error) {
		i, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", arg, err)
		}
		return fn(api, i), nil
	}
}

// item adapts a part builder keyed by a collection item.
func item[A any](items func(A) *collection.Collection, fn func(A, collection.Item) dom.Props) partFunc[A] {
	return func(api A, arg string) (dom.Props, error) {
		it, ok := items(api).Find(arg)
		if !ok {
			return nil, fmt.Errorf("no item %q", arg)
		}
		return fn(api, it), nil
	}
}

var drivers = map[string]builder{
	checkbox.Name: driver[checkbox.Context, checkbox.Options, *checkbox.API]{
		spec:    checkbox.Spec(),
		new:     checkbox.New,
		connect: checkbox.Connect,
		parts: map[string]partFunc[*checkbox.API]{
			"root":        static((*checkbox.API).RootProps),
			"label":       static((*checkbox.API).LabelProps),
			"control":     static((*checkbox.API).ControlProps),
			"indicator":   static((*checkbox.API).IndicatorProps),
			"hiddenInput": static((*checkbox.API).HiddenInputProps),
		},
	},
	toggle.Name: driver[toggle.Context, toggle.Options, *toggle.API]{
		spec:    toggle.Spec(),
		new:     toggle.New,
		connect: toggle.Connect,
		parts: map[string]partFunc[*toggle.API]{
			"root":        static((*toggle.API).RootProps),
			"label":       static((*toggle.API).LabelProps),
			"control":     static((*toggle.API).ControlProps),
			"thumb":       static((*toggle.API).ThumbProps),
			"hiddenInput": static((*toggle.API).HiddenInputProps),
		},
	},
	slider.Name: driver[slider.Context, slider.Options, *slider.API]{
		spec:    slider.Spec(),
		new:     slider.New,
		connect: slider.Connect,
		parts: map[string]partFunc[*slider.API]{
			"root":        static((*slider.API).RootProps),
			"label":       static((*slider.API).LabelProps),
			"control":     static((*slider.API).ControlProps),
			"track":       static((*slider.API).TrackProps),
			"range":       static((*slider.API).RangeProps),
			"thumb":       indexed((*slider.API).ThumbProps),
			"hiddenInput": indexed((*slider.API).HiddenInputProps),
			"valueText":   static((*slider.API).ValueTextProps),
		},
	},
	dropdown.Name: driver[dropdown.Context, dropdown.Options, *dropdown.API]{
		spec:    dropdown.Spec(),
		new:     dropdown.New,
		connect: dropdown.Connect,
		parts: map[string]partFunc[*dropdown.API]{
			"root":          static((*dropdown.API).RootProps),
			"label":         static((*dropdown.API).LabelProps),
			"control":       static((*dropdown.API).ControlProps),
			"trigger":       static((*dropdown.API).TriggerProps),
			"valueText":     static((*dropdown.API).ValueTextProps),
			"indicator":     static((*dropdown.API).IndicatorProps),
			"clearTrigger":  static((*dropdown.API).ClearTriggerProps),
			"positioner":    static((*dropdown.API).PositionerProps),
			"content":       static((*dropdown.API).ContentProps),
			"item":          item(selectItems, (*dropdown.API).ItemProps),
			"itemText":      item(selectItems, (*dropdown.API).ItemTextProps),
			"itemIndicator": item(selectItems, (*dropdown.API).ItemIndicatorProps),
			"hiddenSelect":  static((*dropdown.API).HiddenSelectProps),
		},
	},
	dialog.Name: driver[dialog.Context, dialog.Options, *dialog.API]{
		spec:    dialog.Spec(),
		new:     dialog.New,
		connect: dialog.Connect,
		parts: map[string]partFunc[*dialog.API]{
			"trigger":      static((*dialog.API).TriggerProps),
			"backdrop":     static((*dialog.API).BackdropProps),
			"positioner":   static((*dialog.API).PositionerProps),
			"content":      static((*dialog.API).ContentProps),
			"title":        static((*dialog.API).TitleProps),
			"description":  static((*dialog.API).DescriptionProps),
			"closeTrigger": static((*dialog.API).CloseTriggerProps),
		},
	},
	menu.Name: driver[menu.Context, menu.Options, *menu.API]{
		spec:    menu.Spec(),
		new:     menu.New,
		connect: menu.Connect,
		parts: map[string]partFunc[*menu.API]{
			"trigger":        static((*menu.API).TriggerProps),
			"positioner":     static((*menu.API).PositionerProps),
			"content":        static((*menu.API).ContentProps),
			"item":           item(menuItems, (*menu.API).ItemProps),
			"separator":      static((*menu.API).SeparatorProps),
			"itemGroup":      keyed((*menu.API).ItemGroupProps),
			"itemGroupLabel": keyed((*menu.API).ItemGroupLabelProps),
		},
	},
	tabs.Name: driver[tabs.Context, tabs.Options, *tabs.API]{
		spec:    tabs.Spec(),
		new:     tabs.New,
		connect: tabs.Connect,
		parts: map[string]partFunc[*tabs.API]{
			"root":      static((*tabs.API).RootProps),
			"list":      static((*tabs.API).ListProps),
			"trigger":   keyed((*tabs.API).TriggerProps),
			"content":   keyed((*tabs.API).ContentProps),
			"indicator": static((*tabs.API).IndicatorProps),
		},
	},
	accordion.Name: driver[accordion.Context, accordion.Options, *accordion.API]{
		spec:    accordion.Spec(),
		new:     accordion.New,
		connect: accordion.Connect,
		parts: map[string]partFunc[*accordion.API]{
			"root":          static((*accordion.API).RootProps),
			"item":          keyed((*accordion.API).ItemProps),
			"itemTrigger":   keyed((*accordion.API).ItemTriggerProps),
			"itemContent":   keyed((*accordion.API).ItemContentProps),
			"itemIndicator": keyed((*accordion.API).ItemIndicatorProps),
		},
	},
}

func selectItems(a *dropdown.API) *collection.Collection { return a.Collection }
func menuItems(a *menu.API) *collection.Collection       { return a.Collection }

// Widgets returns the widget names scenarios may use, sorted.
func Widgets() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Chart returns the chart of the named widget.
func Chart(widget string) (primitives.Chart, error) {
	d, ok := drivers[widget]
	if !ok {
		return primitives.Chart{}, fmt.Errorf("unknown widget %q (have %v)", widget, Widgets())
	}
	return d.chart(), nil
}
