package slider

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/comalice/headlessx"
	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/testutil"
)

func start(t *testing.T, o Options) *testutil.Harness[Context, *API] {
	t.Helper()
	if o.ID == "" {
		o.ID = "test-slider"
	}
	return testutil.Start(t, New(o), Connect)
}

func TestDefaults(t *testing.T) {
	h := start(t, Options{Value: []float64{50}})
	api := h.API(t)
	if !reflect.DeepEqual(api.Value, []float64{50}) {
		t.Errorf("Value = %v, want [50]", api.Value)
	}
	if api.Min != 0 || api.Max != 100 || api.Step != 1 {
		t.Errorf("range = %v..%v step %v", api.Min, api.Max, api.Step)
	}
	if got := start(t, Options{}).API(t).Value; !reflect.DeepEqual(got, []float64{0}) {
		t.Errorf("default Value = %v, want [0]", got)
	}
}

func TestPartProps(t *testing.T) {
	api := start(t, Options{Value: []float64{50}}).API(t)
	ids := map[string]dom.Props{
		"slider:test-slider":         api.RootProps(),
		"slider:test-slider:label":   api.LabelProps(),
		"slider:test-slider:control": api.ControlProps(),
		"slider:test-slider:track":   api.TrackProps(),
		"slider:test-slider:range":   api.RangeProps(),
		"slider:test-slider:thumb:0": api.ThumbProps(0),
		"slider:test-slider:input:0": api.HiddenInputProps(0),
	}
	for want, p := range ids {
		if p["id"] != want {
			t.Errorf("id = %v, want %q", p["id"], want)
		}
	}
	thumb := api.ThumbProps(0)
	if thumb["role"] != "slider" || thumb["aria-valuemin"] != 0.0 || thumb["aria-valuemax"] != 100.0 || thumb["aria-valuenow"] != 50.0 {
		t.Errorf("thumb = %v", thumb.Attributes())
	}
	if got := api.HiddenInputProps(0)["type"]; got != "text" {
		t.Errorf("hidden input type = %v, want text", got)
	}
	if got := api.LabelProps()["htmlFor"]; got != api.HiddenInputProps(0)["id"] {
		t.Errorf("label htmlFor = %v", got)
	}
}

func TestAPIMethods(t *testing.T) {
	tests := []struct {
		name string
		run  func(*API) error
		want []float64
	}{
		{"SetValue", func(a *API) error { return a.SetValue([]float64{80}) }, []float64{80}},
		{"SetThumbValue", func(a *API) error { return a.SetThumbValue(0, 90) }, []float64{90}},
		{"Increment", func(a *API) error { return a.Increment(0) }, []float64{51}},
		{"Decrement", func(a *API) error { return a.Decrement(0) }, []float64{49}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := start(t, Options{Value: []float64{50}})
			if err := tt.run(h.API(t)); err != nil {
				t.Fatal(err)
			}
			if got := h.Context().Value; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestThumbValue(t *testing.T) {
	api := start(t, Options{Value: []float64{75}}).API(t)
	if got := api.ThumbValue(0); got != 75 {
		t.Errorf("ThumbValue(0) = %v, want 75", got)
	}
	if got := api.ThumbPercent(0); got != 75 {
		t.Errorf("ThumbPercent(0) = %v, want 75", got)
	}
	if got := start(t, Options{Value: []float64{25}, Max: 50}).API(t).Value; !reflect.DeepEqual(got, []float64{25}) {
		t.Errorf("min/max Value = %v", got)
	}
}

func TestClampAndSnap(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		input float64
		want  float64
	}{
		{"above max", Options{}, 250, 100},
		{"below min", Options{}, -4, 0},
		{"step 5 rounds down", Options{Step: 5}, 22, 20},
		{"step 5 rounds up", Options{Step: 5}, 23, 25},
		{"offset min", Options{Min: 3, Max: 20, Step: 5}, 12, 13},
		{"effective max", Options{Min: 0, Max: 10, Step: 3}, 10, 9},
		{"decimal step", Options{Min: 0, Max: 1, Step: 0.1}, 0.3, 0.3},
		{"decimal step rounding", Options{Min: 0, Max: 1, Step: 0.1}, 0.74, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := start(t, tt.opts)
			h.Send(t, EventThumbSet, map[string]any{"index": 0, "value": tt.input})
			got := h.Context().Value[0]
			if got != tt.want {
				t.Errorf("Value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStepInvariant(t *testing.T) {
	h := start(t, Options{Min: 2, Max: 47, Step: 5})
	for v := -10.0; v <= 60; v += 0.7 {
		h.Send(t, EventThumbSet, map[string]any{"index": 0, "value": v})
		got := h.Context().Value[0]
		if got < 2 || got > 47 {
			t.Fatalf("value %v out of range after %v", got, v)
		}
		if r := math.Mod(got-2, 5); math.Abs(r) > 1e-9 {
			t.Fatalf("value %v off step after %v", got, v)
		}
	}
}

func TestIncrementAtBounds(t *testing.T) {
	h := start(t, Options{Value: []float64{100}})
	h.Send(t, EventValueIncrement, map[string]any{"index": 0})
	if got := h.Context().Value[0]; got != 100 {
		t.Errorf("increment at max = %v", got)
	}
	h.Send(t, EventHome, map[string]any{"index": 0})
	h.Send(t, EventValueDecrement, map[string]any{"index": 0})
	if got := h.Context().Value[0]; got != 0 {
		t.Errorf("decrement at min = %v", got)
	}
}

func TestThumbsDoNotCross(t *testing.T) {
	h := start(t, Options{Value: []float64{60, 20}})
	if got := h.Context().Value; !reflect.DeepEqual(got, []float64{20, 60}) {
		t.Fatalf("initial Value = %v, want sorted", got)
	}
	h.Send(t, EventThumbSet, map[string]any{"index": 0, "value": 90})
	if got := h.Context().Value; !reflect.DeepEqual(got, []float64{60, 60}) {
		t.Errorf("Value = %v, want [60 60]", got)
	}
	h.Send(t, EventEnd, map[string]any{"index": 1})
	if got := h.Context().Value[1]; got != 100 {
		t.Errorf("END = %v", got)
	}
}

func TestInvalidPayload(t *testing.T) {
	h := start(t, Options{Value: []float64{50}})
	for _, evt := range []headlessx.Event{
		headlessx.NewEvent(EventThumbSet, map[string]any{"index": 0, "value": "high"}),
		headlessx.NewEvent(EventThumbSet, map[string]any{"index": 3, "value": 1}),
		headlessx.NewEvent(EventValueIncrement, nil),
		headlessx.NewEvent(EventValueSet, map[string]any{"value": []float64{}}),
	} {
		if err := h.M.Send(evt); !errors.Is(err, headlessx.ErrInvalidPayload) {
			t.Errorf("Send(%v) = %v, want ErrInvalidPayload", evt, err)
		}
	}
	if got := h.Context().Value; !reflect.DeepEqual(got, []float64{50}) {
		t.Errorf("Value = %v after rejected events", got)
	}
}

func TestDisabledIgnoresKeyboard(t *testing.T) {
	h := start(t, Options{Value: []float64{50}, Disabled: true})
	h.Send(t, EventValueIncrement, map[string]any{"index": 0})
	if got := h.Context().Value[0]; got != 50 {
		t.Errorf("disabled slider moved to %v", got)
	}
	if got := h.API(t).ThumbProps(0)["tabIndex"]; got != -1 {
		t.Errorf("tabIndex = %v", got)
	}
}

func TestPointerDrag(t *testing.T) {
	var ends [][]float64
	h := start(t, Options{Value: []float64{10, 80}, OnValueChangeEnd: func(v []float64) { ends = append(ends, v) }})
	testutil.Fire(t, h.API(t).ControlProps(), "onPointerDown", dom.HostEvent{Type: "pointerdown", Value: "70"})
	if h.StateValue() != Dragging || h.Context().FocusedIndex != 1 {
		t.Fatalf("after down: %s focused %d", h.StateValue(), h.Context().FocusedIndex)
	}
	testutil.Fire(t, h.API(t).ControlProps(), "onPointerMove", dom.HostEvent{Type: "pointermove", Value: "65.4"})
	testutil.Fire(t, h.API(t).ControlProps(), "onPointerUp", dom.HostEvent{Type: "pointerup"})
	if h.StateValue() != Focus {
		t.Errorf("state = %s, want focus", h.StateValue())
	}
	if want := []float64{10, 65}; !reflect.DeepEqual(h.Context().Value, want) || len(ends) != 1 {
		t.Errorf("Value = %v, ends = %v", h.Context().Value, ends)
	}
	err := h.API(t).ControlProps().Handler("onPointerDown")(dom.HostEvent{Type: "pointerdown", Value: "abc"})
	if !errors.Is(err, headlessx.ErrInvalidPayload) {
		t.Errorf("bad pointer value = %v", err)
	}
}

func TestKeyboardHandlers(t *testing.T) {
	h := start(t, Options{Value: []float64{50}})
	thumb := h.API(t).ThumbProps(0)
	testutil.Fire(t, thumb, "onFocus", dom.HostEvent{Type: "focus"})
	testutil.Fire(t, thumb, "onKeyDown", dom.HostEvent{Type: "keydown", Key: "ArrowRight"})
	testutil.Fire(t, thumb, "onKeyDown", dom.HostEvent{Type: "keydown", Key: "End"})
	testutil.Fire(t, thumb, "onKeyDown", dom.HostEvent{Type: "keydown", Key: "x"})
	if got := h.Context().Value[0]; got != 100 {
		t.Errorf("Value = %v", got)
	}
	testutil.Fire(t, thumb, "onBlur", dom.HostEvent{Type: "blur"})
	if h.StateValue() != Idle || h.Context().FocusedIndex != -1 {
		t.Errorf("after blur: %s %d", h.StateValue(), h.Context().FocusedIndex)
	}
}

func TestNaNNeverStored(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		opts Options
		want []float64
		min  float64
		max  float64
		step float64
	}{
		{"nan value", Options{Value: []float64{nan}}, []float64{0}, 0, 100, 1},
		{"nan among values", Options{Value: []float64{40, nan}}, []float64{0, 40}, 0, 100, 1},
		{"infinite value", Options{Min: 5, Max: 15, Value: []float64{math.Inf(1)}}, []float64{5}, 5, 15, 1},
		{"nan range", Options{Min: nan, Max: nan, Step: nan, Value: []float64{30}}, []float64{30}, 0, 100, 1},
		{"infinite max", Options{Max: math.Inf(1), Step: math.Inf(1), Value: []float64{7}}, []float64{7}, 0, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := start(t, tt.opts).Context()
			if !reflect.DeepEqual(c.Value, tt.want) {
				t.Errorf("Value = %v, want %v", c.Value, tt.want)
			}
			if c.Min != tt.min || c.Max != tt.max || c.Step != tt.step {
				t.Errorf("range = %v..%v step %v, want %v..%v step %v", c.Min, c.Max, c.Step, tt.min, tt.max, tt.step)
			}
		})
	}

	h := start(t, Options{Value: []float64{50}})
	for _, evt := range []headlessx.Event{
		headlessx.NewEvent(EventValueSet, map[string]any{"value": []float64{nan}}),
		headlessx.NewEvent(EventValueSet, map[string]any{"value": []any{10, nan}}),
		headlessx.NewEvent(EventThumbSet, map[string]any{"index": 0, "value": nan}),
	} {
		if err := h.M.Send(evt); !errors.Is(err, headlessx.ErrInvalidPayload) {
			t.Errorf("Send(%v) = %v, want ErrInvalidPayload", evt, err)
		}
	}
	if got := h.Context().Value; !reflect.DeepEqual(got, []float64{50}) {
		t.Errorf("Value = %v after NaN events", got)
	}
	if got := h.Context().Snap(nan); got != 0 {
		t.Errorf("Snap(NaN) = %v, want Min", got)
	}
}

func TestUnchangedValueIsNotReported(t *testing.T) {
	var calls [][]float64
	h := start(t, Options{Value: []float64{20, 100}, OnValueChange: func(v []float64) { calls = append(calls, v) }})
	thumb := func(i int) map[string]any { return map[string]any{"index": i} }

	h.Send(t, EventValueIncrement, thumb(1))
	h.Send(t, EventEnd, thumb(1))
	h.Send(t, EventThumbSet, map[string]any{"index": 0, "value": 20.2})
	h.Send(t, EventValueSet, map[string]any{"value": []float64{100, 20}})
	if len(calls) != 0 {
		t.Fatalf("no-op changes reported %v", calls)
	}

	h.Send(t, EventValueDecrement, thumb(1))
	h.Send(t, EventHome, thumb(0))
	h.Send(t, EventHome, thumb(0))
	if want := [][]float64{{20, 99}, {0, 99}}; !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}

	calls = nil
	testutil.Fire(t, h.API(t).ControlProps(), "onPointerDown", dom.HostEvent{Type: "pointerdown", Value: "99"})
	if h.StateValue() != Dragging || h.Context().FocusedIndex != 1 {
		t.Fatalf("after down: %s focused %d", h.StateValue(), h.Context().FocusedIndex)
	}
	testutil.Fire(t, h.API(t).ControlProps(), "onPointerMove", dom.HostEvent{Type: "pointermove", Value: "99.3"})
	testutil.Fire(t, h.API(t).ControlProps(), "onPointerMove", dom.HostEvent{Type: "pointermove", Value: "90"})
	if want := [][]float64{{0, 90}}; !reflect.DeepEqual(calls, want) {
		t.Errorf("drag calls = %v, want %v", calls, want)
	}
}
