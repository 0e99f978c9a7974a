package production

import (
	"context"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/comalice/headlessx/internal/core"
	"github.com/comalice/headlessx/internal/primitives"
)

// Restore loads rec into m. The record's generic context is decoded into a
// fresh C; fields tagged yaml:"-" (host callbacks) are carried over from m's
// current context. A record written by a different chart is rejected.
func Restore[C any](m *core.Machine[C], rec core.Record) error {
	spec := m.Spec()
	op := spec.ID + ".restore"
	if rec.Widget != spec.ID || rec.ID != m.ID() {
		return primitives.NewError(op, primitives.KindInvalidSpec, "record %q does not belong to %s:%s", rec.Key(), spec.ID, m.ID())
	}
	if v := primitives.ChartVersion(spec.Chart()); rec.SpecVersion != "" && rec.SpecVersion != v {
		return primitives.NewError(op, primitives.KindInvalidSpec, "record chart version %s, machine runs %s", rec.SpecVersion, v)
	}
	data, err := yaml.Marshal(rec.Context)
	if err != nil {
		return fmt.Errorf("%s: encode context: %w", op, err)
	}
	var ctx C
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return &primitives.Error{Op: op, Kind: primitives.KindInvalidPayload, Err: err}
	}
	carryUnserialized(reflect.ValueOf(&ctx).Elem(), reflect.ValueOf(m.State().Context))
	return m.Load(rec.State, ctx)
}

// RestoreFrom loads the record of m from p and restores it.
func RestoreFrom[C any](ctx context.Context, m *core.Machine[C], p core.Persister) error {
	rec, err := p.Load(ctx, core.RecordKey(m.Spec().ID, m.ID()))
	if err != nil {
		return err
	}
	return Restore(m, rec)
}

func carryUnserialized(dst, src reflect.Value) {
	if dst.Kind() != reflect.Struct {
		return
	}
	t := dst.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if f.IsExported() && f.Tag.Get("yaml") == "-" {
			dst.Field(i).Set(src.Field(i))
		}
	}
}
