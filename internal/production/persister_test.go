package production

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/comalice/headlessx/collection"
	"github.com/comalice/headlessx/dropdown"
	"github.com/comalice/headlessx/internal/core"
	"github.com/comalice/headlessx/internal/primitives"
)

var countries = []collection.Item{
	{Label: "Nigeria", Value: "NG"},
	{Label: "Japan", Value: "JP"},
}

func startedSelect(t *testing.T, opts ...core.Option) *core.Machine[dropdown.Context] {
	t.Helper()
	m := dropdown.New(dropdown.Options{ID: "country", Items: countries, Multiple: true}, opts...)
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	return m
}

type persisterCase struct {
	name string
	new  func(dir string) (core.Persister, error)
}

var persisters = []persisterCase{
	{"json", func(dir string) (core.Persister, error) { return NewPersister("json", dir) }},
	{"yaml", func(dir string) (core.Persister, error) { return NewPersister("yaml", dir) }},
}

func TestNewPersisterFormats(t *testing.T) {
	tests := []struct {
		format string
		want   any
	}{
		{"", &YAMLPersister{}},
		{"yaml", &YAMLPersister{}},
		{"json", &JSONPersister{}},
		{"toml", nil},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			p, err := NewPersister(tt.format, t.TempDir())
			if tt.want == nil {
				if err == nil {
					t.Errorf("NewPersister(%q) = %T, want error", tt.format, p)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if reflect.TypeOf(p) != reflect.TypeOf(tt.want) {
				t.Errorf("NewPersister(%q) = %T, want %T", tt.format, p, tt.want)
			}
		})
	}
}

func TestPersisterRoundTrip(t *testing.T) {
	for _, pc := range persisters {
		t.Run(pc.name, func(t *testing.T) {
			p, err := pc.new(t.TempDir())
			if err != nil {
				t.Fatalf("new persister: %v", err)
			}
			m := startedSelect(t, core.WithPersister(p))
			if err := m.Send(primitives.NewEvent("VALUE.SET", map[string]any{"value": []string{"JP", "NG"}})); err != nil {
				t.Fatal(err)
			}

			rec, err := p.Load(context.Background(), "select:country")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			want := m.Record()
			if rec.Widget != want.Widget || rec.ID != want.ID || rec.State != want.State || rec.SpecVersion != want.SpecVersion {
				t.Errorf("record = %+v, want %+v", rec, want)
			}
			if got := rec.Computed["valueAsString"]; got != "Japan, Nigeria" {
				t.Errorf("computed valueAsString = %v", got)
			}

			fresh := dropdown.New(dropdown.Options{ID: "country"})
			if err := Restore(fresh, rec); err != nil {
				t.Fatalf("Restore: %v", err)
			}
			c := fresh.State().Context
			if !reflect.DeepEqual(c.Value, []string{"JP", "NG"}) || !c.Multiple || c.Collection.Len() != 2 {
				t.Errorf("restored context = %+v", c)
			}
			if !fresh.Started() {
				t.Error("restored machine not live")
			}
		})
	}
}

func TestPersisterMissing(t *testing.T) {
	for _, pc := range persisters {
		t.Run(pc.name, func(t *testing.T) {
			p, err := pc.new(t.TempDir())
			if err != nil {
				t.Fatal(err)
			}
			_, err = p.Load(context.Background(), "select:nope")
			if !errors.Is(err, os.ErrNotExist) {
				t.Errorf("Load = %v, want os.ErrNotExist", err)
			}
		})
	}
}

func TestRestoreFromKeepsCallbacks(t *testing.T) {
	p, err := NewYAMLPersister(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := startedSelect(t, core.WithPersister(p))
	if err := m.Send(primitives.NewEvent("TRIGGER.CLICK", nil)); err != nil {
		t.Fatal(err)
	}

	var changes []dropdown.ValueChange
	fresh := dropdown.New(dropdown.Options{
		ID:            "country",
		OnValueChange: func(c dropdown.ValueChange) { changes = append(changes, c) },
	})
	if err := RestoreFrom(context.Background(), fresh, p); err != nil {
		t.Fatalf("RestoreFrom: %v", err)
	}
	if got := fresh.State().Value; got != dropdown.Open {
		t.Errorf("state = %q, want %q", got, dropdown.Open)
	}
	if err := fresh.Send(primitives.NewEvent("ITEM.CLICK", map[string]any{"value": "NG"})); err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 || !reflect.DeepEqual(changes[0].Value, []string{"NG"}) {
		t.Errorf("OnValueChange = %+v", changes)
	}
}

func TestRestoreRejectsForeignRecord(t *testing.T) {
	m := dropdown.New(dropdown.Options{ID: "country"})
	tests := []struct {
		name string
		rec  core.Record
	}{
		{"other widget", core.Record{Widget: "checkbox", ID: "country", State: "idle"}},
		{"other id", core.Record{Widget: "select", ID: "city", State: "idle"}},
		{"other chart", core.Record{Widget: "select", ID: "country", State: "idle", SpecVersion: "0000000000000000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Restore(m, tt.rec); err == nil {
				t.Error("Restore succeeded")
			}
		})
	}
	if m.Started() {
		t.Error("failed restore started the machine")
	}
}
