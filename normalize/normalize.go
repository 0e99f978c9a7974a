// Package normalize adapts generated props to a rendering substrate.
//
// Connect functions never hand props straight to a renderer: every bag is
// passed through the Normalizer entry of its part's primitive category first.
// A renderer that wants, say, different event-name casing supplies its own
// Normalizer; the machines and connect functions stay unaware of it.
package normalize

import (
	"strings"

	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/primitives"
)

// Category is a primitive element kind a prop builder targets.
type Category string

const (
	Element Category = "element"
	Label   Category = "label"
	Input   Category = "input"
	Button  Category = "button"
)

// Normalizer transforms props per primitive category.
type Normalizer interface {
	Element(p dom.Props) dom.Props
	Label(p dom.Props) dom.Props
	Input(p dom.Props) dom.Props
	Button(p dom.Props) dom.Props
}

// Partial is implemented by normalizers that may lack some categories.
type Partial interface {
	Supports(c Category) bool
}

type identity struct{}

func (identity) Element(p dom.Props) dom.Props { return p }
func (identity) Label(p dom.Props) dom.Props   { return p }
func (identity) Input(p dom.Props) dom.Props   { return p }
func (identity) Button(p dom.Props) dom.Props  { return p }

// Identity returns props unchanged for every category.
var Identity Normalizer = identity{}

// Func transforms one category's props.
type Func func(dom.Props) dom.Props

// Table is a Normalizer assembled from per-category funcs.
// A nil entry marks the category as absent.
type Table struct {
	ElementFn Func
	LabelFn   Func
	InputFn   Func
	ButtonFn  Func
}

// IdentityTable returns a Table with every category passing props through.
func IdentityTable() Table {
	pass := func(p dom.Props) dom.Props { return p }
	return Table{ElementFn: pass, LabelFn: pass, InputFn: pass, ButtonFn: pass}
}

func (t Table) fn(c Category) Func {
	switch c {
	case Element:
		return t.ElementFn
	case Label:
		return t.LabelFn
	case Input:
		return t.InputFn
	case Button:
		return t.ButtonFn
	}
	return nil
}

// Supports reports whether the table has an entry for c.
func (t Table) Supports(c Category) bool {
	return t.fn(c) != nil
}

func (t Table) apply(c Category, p dom.Props) dom.Props {
	if fn := t.fn(c); fn != nil {
		return fn(p)
	}
	return p
}

func (t Table) Element(p dom.Props) dom.Props { return t.apply(Element, p) }
func (t Table) Label(p dom.Props) dom.Props   { return t.apply(Label, p) }
func (t Table) Input(p dom.Props) dom.Props   { return t.apply(Input, p) }
func (t Table) Button(p dom.Props) dom.Props  { return t.apply(Button, p) }

// Require checks that n supplies every category in cats. It returns a
// MissingNormalizer error naming each absent category, so connect functions
// fail before building any props.
func Require(op string, n Normalizer, cats ...Category) error {
	if n == nil {
		return primitives.NewError(op, primitives.KindMissingNormalizer, "no normalizer supplied")
	}
	partial, ok := n.(Partial)
	if !ok {
		return nil
	}
	var missing []string
	for _, c := range cats {
		if !partial.Supports(c) {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return primitives.NewError(op, primitives.KindMissingNormalizer, "no entry for %s", strings.Join(missing, ", "))
	}
	return nil
}

// Apply runs p through n's entry for c.
func Apply(n Normalizer, c Category, p dom.Props) dom.Props {
	switch c {
	case Label:
		return n.Label(p)
	case Input:
		return n.Input(p)
	case Button:
		return n.Button(p)
	default:
		return n.Element(p)
	}
}
