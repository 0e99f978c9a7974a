package core

import (
	"testing"

	"github.com/comalice/headlessx/internal/primitives"
)

func TestStep(t *testing.T) {
	spec := counterSpec(t)
	tests := []struct {
		name    string
		state   string
		event   primitives.Event
		matched bool
		to      string
		wantErr bool
	}{
		{"target", "idle", primitives.NewEvent("START", nil), true, "active", false},
		{"self", "idle", primitives.NewEvent("ADD", map[string]any{"item": "a"}), true, "idle", false},
		{"unknown", "idle", primitives.NewEvent("STOP", nil), false, "idle", false},
		{"payload", "idle", primitives.NewEvent("ADD", nil), false, "idle", true},
		{"action", "active", primitives.NewEvent("FAIL", nil), false, "active", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := counter{Items: []string{"x"}}
			out, err := step(spec, tt.state, ctx, tt.event)
			if (err != nil) != tt.wantErr {
				t.Fatalf("step() error = %v, wantErr %v", err, tt.wantErr)
			}
			if out.matched != tt.matched || out.to != tt.to {
				t.Errorf("step() = matched %v to %q, want %v %q", out.matched, out.to, tt.matched, tt.to)
			}
			if len(ctx.Items) != 1 || ctx.Items[0] != "x" {
				t.Errorf("step() mutated input context: %+v", ctx)
			}
		})
	}
}
