package extensibility

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Evaluate checks an assertion of the form "<key> <op> <value>" against
// values. Keys may be dotted paths into nested maps. The right-hand side is
// parsed as YAML, so `open == true`, `value == [NG, JP]` and
// `valueAsString == Nigeria, Japan` all work. Supported operators are
// ==, !=, <, <=, > and >=; ordering operators need numbers on both sides.
func Evaluate(expr string, values map[string]any) (bool, error) {
	key, op, raw, err := parseExpr(expr)
	if err != nil {
		return false, err
	}
	actual, ok := Lookup(values, key)
	if !ok {
		return false, fmt.Errorf("expression %q: unknown key %q", expr, key)
	}
	got, err := canonical(actual)
	if err != nil {
		return false, fmt.Errorf("expression %q: %w", expr, err)
	}
	var want any
	if err := yaml.Unmarshal([]byte(raw), &want); err != nil {
		// Unparseable right-hand sides compare as plain strings.
		want = raw
	}

	switch op {
	case "==":
		return equal(got, want), nil
	case "!=":
		return !equal(got, want), nil
	}
	g, gok := number(got)
	w, wok := number(want)
	if !gok || !wok {
		return false, fmt.Errorf("expression %q: %s needs numbers, got %T and %T", expr, op, got, want)
	}
	switch op {
	case "<":
		return g < w, nil
	case "<=":
		return g <= w, nil
	case ">":
		return g > w, nil
	default:
		return g >= w, nil
	}
}

var operators = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

func parseExpr(expr string) (key, op, raw string, err error) {
	fields := strings.Fields(expr)
	if len(fields) < 3 {
		return "", "", "", fmt.Errorf("expression %q: want <key> <op> <value>", expr)
	}
	key, op = fields[0], fields[1]
	if !operators[op] {
		return "", "", "", fmt.Errorf("expression %q: unknown operator %q", expr, op)
	}
	raw = strings.TrimSpace(expr)
	raw = strings.TrimSpace(raw[len(key):])
	raw = strings.TrimSpace(raw[len(op):])
	return key, op, raw, nil
}

// Lookup resolves a dotted key through nested maps.
func Lookup(values map[string]any, key string) (any, bool) {
	var cur any = values
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// canonical round-trips v through YAML so Go values and parsed literals
// share one representation ([]string becomes []any, 2.0 becomes 2).
func canonical(v any) (any, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	var c any
	if err := yaml.Unmarshal(out, &c); err != nil {
		return nil, err
	}
	return c, nil
}

func equal(a, b any) bool {
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return x == y
		}
	}
	if a == nil || b == nil {
		return a == nil && isEmpty(b) || b == nil && isEmpty(a)
	}
	return reflect.DeepEqual(a, b)
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return rv.Len() == 0
	}
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
