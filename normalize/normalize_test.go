package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/comalice/headlessx/dom"
	"github.com/comalice/headlessx/internal/primitives"
)

func TestRequire(t *testing.T) {
	tests := []struct {
		name        string
		n           Normalizer
		cats        []Category
		wantErr     bool
		errContains string
	}{
		{name: "identity", n: Identity, cats: []Category{Element, Label, Input, Button}},
		{name: "full table", n: IdentityTable(), cats: []Category{Element, Button}},
		{name: "nil", n: nil, cats: []Category{Element}, wantErr: true, errContains: "no normalizer"},
		{
			name:        "partial table",
			n:           Table{ElementFn: func(p dom.Props) dom.Props { return p }},
			cats:        []Category{Element, Label, Button},
			wantErr:     true,
			errContains: "label, button",
		},
		{
			name: "partial table covers dialog",
			n: Table{
				ElementFn: func(p dom.Props) dom.Props { return p },
				ButtonFn:  func(p dom.Props) dom.Props { return p },
			},
			cats: []Category{Element, Button},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Require("test.connect", tt.n, tt.cats...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Require() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, primitives.ErrMissingNormalizer) {
				t.Errorf("error %v is not ErrMissingNormalizer", err)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err, tt.errContains)
			}
		})
	}
}

func TestApplyUsesCategoryEntry(t *testing.T) {
	tag := func(name string) Func {
		return func(p dom.Props) dom.Props {
			out := p.Merge(dom.Props{"normalized": name})
			return out
		}
	}
	n := Table{ElementFn: tag("element"), LabelFn: tag("label"), InputFn: tag("input"), ButtonFn: tag("button")}
	for _, c := range []Category{Element, Label, Input, Button} {
		got := Apply(n, c, dom.Props{"id": "x"})
		if got["normalized"] != string(c) || got["id"] != "x" {
			t.Errorf("Apply(%s) = %v", c, got)
		}
	}
}
