package checkbox

import (
	"errors"
	"reflect"
	"testing"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/normalize"
	"github.com/comalice/headlessx/testutil"
)

func start(t *testing.T, o Options) *testutil.Harness[Context, *API] {
	t.Helper()
	return testutil.Start(t, New(o), Connect)
}

func TestConnectDefaults(t *testing.T) {
	h := start(t, Options{ID: "test-checkbox"})
	api := h.API(t)
	if api.Checked || api.Disabled || api.Indeterminate {
		t.Errorf("api = %+v, want all false", api)
	}
	if api.CheckedState != false {
		t.Errorf("CheckedState = %v, want false", api.CheckedState)
	}
}

func TestConnectRequiresStart(t *testing.T) {
	m := New(Options{ID: "x"})
	if _, err := Connect(m.State(), m.Send, normalize.Identity); !errors.Is(err, headlessx.ErrInvalidLifecycle) {
		t.Fatalf("Connect() = %v, want ErrInvalidLifecycle", err)
	}
	if err := m.Send(headlessx.NewEvent("CHECKED.TOGGLE", nil)); !errors.Is(err, headlessx.ErrInvalidLifecycle) {
		t.Fatalf("Send() = %v, want ErrInvalidLifecycle", err)
	}
}

func TestConnectMissingNormalizer(t *testing.T) {
	m := New(Options{ID: "x"})
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	_, err := Connect(m.State(), m.Send, testutil.NewCountingNormalizer(normalize.Input))
	if !errors.Is(err, headlessx.ErrMissingNormalizer) {
		t.Fatalf("Connect() = %v, want ErrMissingNormalizer", err)
	}
}

func TestPartIDs(t *testing.T) {
	api := start(t, Options{ID: "test-checkbox"}).API(t)
	tests := []struct {
		part  string
		props dom.Props
		want  string
	}{
		{"root", api.RootProps(), "checkbox:test-checkbox"},
		{"label", api.LabelProps(), "checkbox:test-checkbox:label"},
		{"control", api.ControlProps(), "checkbox:test-checkbox:control"},
		{"input", api.HiddenInputProps(), "checkbox:test-checkbox:input"},
	}
	for _, tt := range tests {
		if got := tt.props["id"]; got != tt.want {
			t.Errorf("%s id = %v, want %q", tt.part, got, tt.want)
		}
	}
	if got := api.RootProps()["htmlFor"]; got != api.HiddenInputProps()["id"] {
		t.Errorf("root htmlFor = %v, want input id", got)
	}
	if got := api.ControlProps()["aria-hidden"]; got != true {
		t.Errorf("control aria-hidden = %v, want true", got)
	}
}

func TestIndicatorHidden(t *testing.T) {
	checked := true
	h := start(t, Options{ID: "test-checkbox", Checked: &checked})
	if got := h.API(t).IndicatorProps()["hidden"]; got != false {
		t.Errorf("hidden = %v, want false while checked", got)
	}
	h.Send(t, "CHECKED.SET", map[string]any{"checked": false, "isTrusted": false})
	if got := h.API(t).IndicatorProps()["hidden"]; got != true {
		t.Errorf("hidden = %v, want true after CHECKED.SET false", got)
	}
}

func TestHiddenInputProps(t *testing.T) {
	api := start(t, Options{ID: "test-checkbox", Name: "agree", Value: "yes"}).API(t)
	p := api.HiddenInputProps()
	want := map[string]any{"type": "checkbox", "name": "agree", "value": "yes", "defaultChecked": false, "disabled": false, "required": false}
	for k, v := range want {
		if p[k] != v {
			t.Errorf("input %s = %v, want %v", k, p[k], v)
		}
	}
	if got := start(t, Options{ID: "d"}).API(t).HiddenInputProps()["value"]; got != "on" {
		t.Errorf("default value = %v, want on", got)
	}
}

func TestToggleChecked(t *testing.T) {
	h := start(t, Options{ID: "test-checkbox"})
	api := h.API(t)
	if err := api.ToggleChecked(); err != nil {
		t.Fatal(err)
	}
	if !h.Context().Checked || h.StateValue() != "checked" {
		t.Fatalf("after toggle: %+v in %s", h.Context(), h.StateValue())
	}
	if !h.API(t).Checked {
		t.Error("reconnected API not checked")
	}
	if err := api.SetChecked(false); err != nil {
		t.Fatal(err)
	}
	if h.Context().Checked {
		t.Error("SetChecked(false) left checked")
	}
}

func TestIndeterminate(t *testing.T) {
	h := start(t, Options{ID: "cb", DefaultChecked: true, Indeterminate: true})
	api := h.API(t)
	if h.StateValue() != "indeterminate" || api.CheckedState != "indeterminate" {
		t.Fatalf("state %s, CheckedState %v", h.StateValue(), api.CheckedState)
	}
	if got := api.ControlProps()["data-state"]; got != "indeterminate" {
		t.Errorf("data-state = %v", got)
	}
	if got := api.IndicatorProps()["hidden"]; got != false {
		t.Errorf("indicator hidden = %v while indeterminate", got)
	}
	h.Send(t, "CHECKED.SET", map[string]any{"checked": false})
	if ctx := h.Context(); ctx.Indeterminate || ctx.Checked || h.StateValue() != "unchecked" {
		t.Errorf("after CHECKED.SET false: %+v in %s", ctx, h.StateValue())
	}
	h.Send(t, "INDETERMINATE.SET", map[string]any{"indeterminate": true})
	h.Send(t, "INDETERMINATE.SET", map[string]any{"indeterminate": false})
	if h.StateValue() != "unchecked" {
		t.Errorf("state = %s, want unchecked", h.StateValue())
	}
}

func TestToggleFromIndeterminate(t *testing.T) {
	h := start(t, Options{ID: "cb", Indeterminate: true})
	h.Send(t, "CHECKED.TOGGLE", nil)
	if ctx := h.Context(); !ctx.Checked || ctx.Indeterminate {
		t.Errorf("after toggle: %+v", ctx)
	}
}

func TestControlled(t *testing.T) {
	checked := false
	var changes []CheckedChange
	h := start(t, Options{
		ID:              "cb",
		Checked:         &checked,
		OnCheckedChange: func(c CheckedChange) { changes = append(changes, c) },
	})
	api := h.API(t)
	if err := api.ToggleChecked(); err != nil {
		t.Fatal(err)
	}
	if err := api.SetChecked(true); err != nil {
		t.Fatal(err)
	}
	h.Send(t, "CHECKED.TOGGLE", nil)
	if h.Context().Checked {
		t.Fatal("controlled checkbox changed state on its own")
	}
	if len(changes) != 2 || !changes[0].Checked || !changes[1].Checked {
		t.Errorf("changes = %+v", changes)
	}
	h.Send(t, "CHECKED.SET", map[string]any{"checked": true})
	if !h.Context().Checked {
		t.Error("host push ignored")
	}
}

func TestOnCheckedChangeUncontrolled(t *testing.T) {
	var got []bool
	h := start(t, Options{ID: "cb", OnCheckedChange: func(c CheckedChange) { got = append(got, c.Checked) }})
	h.Send(t, "CHECKED.TOGGLE", nil)
	h.Send(t, "CHECKED.TOGGLE", nil)
	if !reflect.DeepEqual(got, []bool{true, false}) {
		t.Errorf("OnCheckedChange calls = %v", got)
	}
}

func TestFlagsPropagate(t *testing.T) {
	h := start(t, Options{ID: "cb", Disabled: true, Required: true, Invalid: true})
	api := h.API(t)
	if !api.Disabled || !api.Required || !api.Invalid {
		t.Errorf("api = %+v", api)
	}
	in := api.HiddenInputProps()
	if in["disabled"] != true || in["required"] != true {
		t.Errorf("input = %v", in.Attributes())
	}
	if got, ok := api.ControlProps()["data-invalid"]; !ok || got != "" {
		t.Errorf("data-invalid = %v, %v; want present and empty", got, ok)
	}
	if _, ok := start(t, Options{ID: "ok"}).API(t).ControlProps()["data-invalid"]; ok {
		t.Error("data-invalid present on a valid checkbox")
	}
	h.Send(t, "CHECKED.TOGGLE", nil)
	if h.Context().Checked {
		t.Error("disabled checkbox toggled")
	}
}

func TestInvalidPayload(t *testing.T) {
	h := start(t, Options{ID: "cb"})
	err := h.M.Send(headlessx.NewEvent("CHECKED.SET", map[string]any{"checked": "yes"}))
	if !errors.Is(err, headlessx.ErrInvalidPayload) {
		t.Fatalf("Send() = %v, want ErrInvalidPayload", err)
	}
	if h.StateValue() != "unchecked" {
		t.Errorf("state = %s after rejected event", h.StateValue())
	}
}

func TestHiddenInputChangeDispatches(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want bool
	}{
		{"enabled", Options{ID: "cb"}, true},
		{"disabled", Options{ID: "cb", Disabled: true}, false},
		{"read only", Options{ID: "cb", ReadOnly: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := start(t, tt.opts)
			testutil.Fire(t, h.API(t).HiddenInputProps(), "onChange", dom.HostEvent{Type: "change", Checked: true, Trusted: true})
			if got := h.Context().Checked; got != tt.want {
				t.Errorf("checked after onChange = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnchangedValueIsNotReported(t *testing.T) {
	var got []CheckedChange
	h := start(t, Options{ID: "cb", OnCheckedChange: func(c CheckedChange) { got = append(got, c) }})
	h.Send(t, "CHECKED.SET", map[string]any{"checked": false})
	h.Send(t, "INDETERMINATE.SET", map[string]any{"indeterminate": false})
	if len(got) != 0 {
		t.Fatalf("OnCheckedChange fired %d times for unchanged values", len(got))
	}
	h.Send(t, "CHECKED.SET", map[string]any{"checked": true})
	h.Send(t, "CHECKED.SET", map[string]any{"checked": true})
	h.Send(t, "INDETERMINATE.SET", map[string]any{"indeterminate": true})
	h.Send(t, "INDETERMINATE.SET", map[string]any{"indeterminate": true})
	want := []CheckedChange{{Checked: true}, {Checked: true, Indeterminate: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("OnCheckedChange calls = %+v, want %+v", got, want)
	}
	h.Send(t, "CHECKED.SET", map[string]any{"checked": true})
	if h.StateValue() != "checked" || len(got) != 3 {
		t.Errorf("CHECKED.SET true from indeterminate: state %s, %d calls", h.StateValue(), len(got))
	}
}

func TestConnectIsStable(t *testing.T) {
	h := start(t, Options{ID: "cb", Name: "n"})
	a, b := h.API(t), h.API(t)
	pairs := [][2]dom.Props{
		{a.RootProps(), b.RootProps()},
		{a.ControlProps(), b.ControlProps()},
		{a.HiddenInputProps(), b.HiddenInputProps()},
	}
	for _, p := range pairs {
		if !reflect.DeepEqual(p[0].Attributes(), p[1].Attributes()) {
			t.Errorf("props differ: %v vs %v", p[0].Attributes(), p[1].Attributes())
		}
	}
}
