package scenario

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/comalice/headlessx/internal/primitives"
)

func TestParseSteps(t *testing.T) {
	f, err := Parse("inline.yaml", []byte(`
widget: tabs
id: nav
options: {id: ignored, triggers: [{label: One, value: one}]}
events:
  - {type: TAB.CLICK, value: one}
  - {type: TAB.BLUR}
  - {type: VALUE.SET, value: 3, reject: true}
  - {type: TAB.FOCUS, value: one, repeat: 3}
  - {type: TAB.FOCUS, value: one, repeat: 2, every: 5ms}
`))
	if err != nil {
		t.Fatal(err)
	}
	want := []Step{
		{Event: primitives.NewEvent("TAB.CLICK", map[string]any{"value": "one"})},
		{Event: primitives.NewEvent("TAB.BLUR", nil)},
		{Event: primitives.NewEvent("VALUE.SET", map[string]any{"value": 3}), Reject: true},
		{Event: primitives.NewEvent("TAB.FOCUS", map[string]any{"value": "one"}), Repeat: 3, Every: 10 * time.Millisecond},
		{Event: primitives.NewEvent("TAB.FOCUS", map[string]any{"value": "one"}), Repeat: 2, Every: 5 * time.Millisecond},
	}
	if !reflect.DeepEqual(f.Events, want) {
		t.Errorf("Events = %+v, want %+v", f.Events, want)
	}
	var o struct {
		ID string `yaml:"id"`
	}
	if err := f.options().Decode(&o); err != nil {
		t.Fatal(err)
	}
	if o.ID != "nav" {
		t.Errorf("options id = %q, want the scenario id", o.ID)
	}
}

func TestParseErrors(t *testing.T) {
	for name, src := range map[string]string{
		"no widget":   `id: x`,
		"no type":     "widget: dialog\nevents: [{value: 1}]",
		"bad reject":  "widget: dialog\nevents: [{type: OPEN, reject: maybe}]",
		"not a yaml":  "widget: [",
		"events type": "widget: dialog\nevents: 3",
		"bad repeat":  "widget: dialog\nevents: [{type: OPEN, repeat: 0}]",
		"bad every":   "widget: dialog\nevents: [{type: OPEN, repeat: 2, every: soon}]",
	} {
		if _, err := Parse(name, []byte(src)); err == nil {
			t.Errorf("%s: Parse succeeded", name)
		}
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		file     string
		passed   bool
		state    string
		failures int
		errPart  string
	}{
		{"checkbox.yaml", true, "checked", 0, ""},
		{"select.yaml", true, "open", 0, ""},
		{"slider.yaml", true, "idle", 0, ""},
		{"held.yaml", true, "focus", 0, ""},
		{"failing.yaml", false, "open", 2, ""},
		{"unknown.yaml", false, "", 0, `unknown widget "carousel"`},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			f, err := Load(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatal(err)
			}
			r := Run(context.Background(), f, Config{})
			if r.Passed() != tt.passed || r.State != tt.state || len(r.Failures) != tt.failures {
				t.Errorf("report = %+v", r)
			}
			if !strings.Contains(r.Error, tt.errPart) {
				t.Errorf("Error = %q, want it to contain %q", r.Error, tt.errPart)
			}
		})
	}
}

func TestRunAcceptedRejection(t *testing.T) {
	f, err := Parse("inline.yaml", []byte("widget: dialog\nid: d\nevents: [{type: OPEN, reject: true}]"))
	if err != nil {
		t.Fatal(err)
	}
	r := Run(context.Background(), f, Config{})
	if !strings.Contains(r.Error, "want rejection") || r.Events != 1 {
		t.Errorf("report = %+v", r)
	}
}

func TestRunAll(t *testing.T) {
	paths := []string{
		filepath.Join("testdata", "checkbox.yaml"),
		filepath.Join("testdata", "missing.yaml"),
		filepath.Join("testdata", "select.yaml"),
		filepath.Join("testdata", "slider.yaml"),
	}
	dir := t.TempDir()
	reports, err := RunAll(context.Background(), paths, Config{Limit: 2, SaveDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != len(paths) {
		t.Fatalf("%d reports", len(reports))
	}
	for i, r := range reports {
		if r.File != paths[i] {
			t.Errorf("report %d is for %s", i, r.File)
		}
	}
	if reports[1].Passed() || !strings.Contains(reports[1].Error, "read scenario") {
		t.Errorf("missing file report = %+v", reports[1])
	}
	for _, name := range []string{"checkbox_terms.yaml", "select_country.yaml", "slider_volume.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("saved record: %v", err)
		}
	}
}

func TestRunTraceSaveRestore(t *testing.T) {
	dir := t.TempDir()
	f, err := Load(filepath.Join("testdata", "held.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	r := Run(context.Background(), f, Config{SaveDir: dir, Format: "json", Trace: true})
	if !r.Passed() || r.Events != 7 {
		t.Fatalf("report = %+v", r)
	}
	want := []string{"slider:held idle -> focus on FOCUS"}
	for range 4 {
		want = append(want, "slider:held focus -> focus on VALUE.INCREMENT")
	}
	if !reflect.DeepEqual(r.Transitions, want) {
		t.Errorf("Transitions = %q, want %q", r.Transitions, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "slider_held.json")); err != nil {
		t.Fatalf("saved record: %v", err)
	}

	resumed, err := Parse("resume.yaml", []byte(`
widget: slider
id: held
events: [{type: VALUE.INCREMENT, index: 0}]
expect: [value == [5], state == focus]
`))
	if err != nil {
		t.Fatal(err)
	}
	if r := Run(context.Background(), resumed, Config{RestoreDir: dir, Format: "json"}); !r.Passed() {
		t.Errorf("resumed report = %+v", r)
	}
	if r := Run(context.Background(), resumed, Config{RestoreDir: t.TempDir()}); !strings.Contains(r.Error, "restore") {
		t.Errorf("missing record report = %+v", r)
	}
	if r := Run(context.Background(), resumed, Config{SaveDir: dir, Format: "toml"}); !strings.Contains(r.Error, "unknown record format") {
		t.Errorf("bad format report = %+v", r)
	}
	if _, err := RunAll(context.Background(), []string{f.Path}, Config{SaveDir: dir, Format: "toml"}); err == nil {
		t.Error("RunAll with an unknown format succeeded")
	}
}

func TestRunAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunAll(ctx, []string{filepath.Join("testdata", "checkbox.yaml")}, Config{}); err == nil {
		t.Error("RunAll on a canceled context succeeded")
	}
}

func TestChart(t *testing.T) {
	for _, w := range Widgets() {
		c, err := Chart(w)
		if err != nil || c.ID != w || len(c.States) == 0 {
			t.Errorf("Chart(%s) = %+v, %v", w, c, err)
		}
	}
	if len(Widgets()) != 8 {
		t.Errorf("Widgets() = %v", Widgets())
	}
	if _, err := Chart("carousel"); err == nil {
		t.Error("Chart(carousel) succeeded")
	}
}
