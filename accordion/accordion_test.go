package accordion

import (
	"errors"
	"reflect"
	"testing"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/collection"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/normalize"
	"github.com/comalice/headlessx/testutil"
)

var items = []collection.Item{
	{Label: "Home", Value: "home"},
	{Label: "About", Value: "about", Disabled: true},
	{Label: "Contact", Value: "contact"},
}

func start(t *testing.T, o Options) *testutil.Harness[Context, *API] {
	t.Helper()
	if o.ID == "" {
		o.ID = "test-accordion"
	}
	if o.Items == nil {
		o.Items = items
	}
	return testutil.Start(t, New(o), Connect)
}

func TestPartProps(t *testing.T) {
	api := start(t, Options{}).API(t)
	if got := api.RootProps()["id"]; got != "accordion:test-accordion" {
		t.Errorf("root id = %v", got)
	}
	if got := api.ItemProps("item-1")["id"]; got != "accordion:test-accordion:item:item-1" {
		t.Errorf("item id = %v", got)
	}
	trigger := api.ItemTriggerProps("home")
	content := api.ItemContentProps("home")
	if trigger["type"] != "button" || trigger["aria-expanded"] != false {
		t.Errorf("trigger = %v", trigger.Attributes())
	}
	if content["role"] != "region" || content["hidden"] != true {
		t.Errorf("content = %v", content.Attributes())
	}
	if trigger["aria-controls"] != content["id"] || content["aria-labelledby"] != trigger["id"] {
		t.Errorf("trigger %v and content %v are not linked", trigger["id"], content["id"])
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		clicks []string
		want   []string
	}{
		{"single expands", Options{}, []string{"home"}, []string{"home"}},
		{"single replaces", Options{}, []string{"home", "contact"}, []string{"contact"}},
		{"single not collapsible", Options{}, []string{"home", "home"}, []string{"home"}},
		{"single collapsible", Options{Collapsible: true}, []string{"home", "home"}, []string{}},
		{"multiple adds", Options{Multiple: true}, []string{"home", "contact"}, []string{"home", "contact"}},
		{"multiple removes", Options{Multiple: true}, []string{"home", "contact", "home"}, []string{"contact"}},
		{"disabled item", Options{}, []string{"about"}, []string{}},
		{"disabled root", Options{Disabled: true}, []string{"home"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := start(t, tt.opts)
			for _, v := range tt.clicks {
				h.Send(t, EventTriggerClick, map[string]any{"value": v})
			}
			if got := h.API(t).Value; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueChangeCallback(t *testing.T) {
	var changes [][]string
	h := start(t, Options{DefaultValue: []string{"home"}, OnValueChange: func(v []string) { changes = append(changes, v) }})
	testutil.Fire(t, h.API(t).ItemTriggerProps("home"), "onClick", dom.HostEvent{Type: "click"})
	testutil.Fire(t, h.API(t).ItemTriggerProps("contact"), "onClick", dom.HostEvent{Type: "click"})
	if !reflect.DeepEqual(changes, [][]string{{"contact"}}) {
		t.Errorf("OnValueChange = %v", changes)
	}
	api := h.API(t)
	if !api.ItemState("contact").Expanded || api.ItemState("home").Expanded {
		t.Errorf("ItemState contact=%+v home=%+v", api.ItemState("contact"), api.ItemState("home"))
	}
	if got := api.ItemContentProps("contact")["hidden"]; got != false {
		t.Errorf("expanded content hidden = %v", got)
	}
}

func TestSetValueLimitsSingle(t *testing.T) {
	h := start(t, Options{Value: []string{"home", "contact"}})
	if got := h.Context().Value; !reflect.DeepEqual(got, []string{"home"}) {
		t.Errorf("initial Value = %v", got)
	}
	if err := h.API(t).SetValue([]string{"contact", "home"}); err != nil {
		t.Fatal(err)
	}
	if got := h.Context().Value; !reflect.DeepEqual(got, []string{"contact"}) {
		t.Errorf("Value = %v", got)
	}
	err := h.M.Send(headlessx.NewEvent(EventValueSet, map[string]any{"value": "home"}))
	if !errors.Is(err, headlessx.ErrInvalidPayload) {
		t.Errorf("Send = %v, want ErrInvalidPayload", err)
	}
}

func TestFocusNavigation(t *testing.T) {
	tests := []struct {
		name        string
		orientation string
		keys        []string
		want        string
	}{
		{"next skips disabled", "", []string{"ArrowDown"}, "contact"},
		{"no wrap", "", []string{"ArrowDown", "ArrowDown"}, "contact"},
		{"prev", "", []string{"ArrowDown", "ArrowUp"}, "home"},
		{"end then home", "", []string{"End", "Home"}, "home"},
		{"horizontal", "horizontal", []string{"ArrowRight"}, "contact"},
		{"horizontal ignores vertical keys", "horizontal", []string{"ArrowDown"}, "home"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := start(t, Options{Orientation: tt.orientation})
			testutil.Fire(t, h.API(t).ItemTriggerProps("home"), "onFocus", dom.HostEvent{Type: "focus"})
			for _, k := range tt.keys {
				focused := h.API(t).FocusedValue
				testutil.Fire(t, h.API(t).ItemTriggerProps(focused), "onKeyDown", dom.HostEvent{Type: "keydown", Key: k})
			}
			if got := h.API(t).FocusedValue; got != tt.want {
				t.Errorf("FocusedValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlur(t *testing.T) {
	h := start(t, Options{})
	h.Send(t, EventTriggerFocus, map[string]any{"value": "home"})
	h.Send(t, EventTriggerBlur, nil)
	if h.StateValue() != Idle || h.Context().FocusedValue != "" {
		t.Errorf("state %q focused %q", h.StateValue(), h.Context().FocusedValue)
	}
	h.Send(t, EventGotoNext, nil)
	if h.Context().FocusedValue != "" {
		t.Error("GOTO.NEXT moved focus while idle")
	}
}

func TestNormalizerCategories(t *testing.T) {
	m := New(Options{ID: "a"})
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	_, err := Connect(m.State(), m.Send, testutil.NewCountingNormalizer(normalize.Button))
	if !errors.Is(err, headlessx.ErrMissingNormalizer) {
		t.Errorf("Connect without button = %v", err)
	}
}
