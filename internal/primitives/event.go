package primitives

import "math"

// An Event is a type name plus a flat payload, mirroring the shape UI code
// produces: {type: "CHECKED.SET", checked: true}. Payload fields are read
// through the typed accessors below, which report a KindInvalidPayload error
// when a field is missing or has the wrong type.
//
// Events should not be mutated after construction.
type Event struct {
	Type    string         `json:"type" yaml:"type"`
	Payload map[string]any `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// NewEvent creates an Event with the given type and payload.
func NewEvent(eventType string, payload map[string]any) Event {
	return Event{
		Type:    eventType,
		Payload: payload,
	}
}

// Has reports whether the payload carries key.
func (e Event) Has(key string) bool {
	_, ok := e.Payload[key]
	return ok
}

func (e Event) payloadError(key, want string) error {
	v, ok := e.Payload[key]
	if !ok {
		return NewError("event "+e.Type, KindInvalidPayload, "missing field %q", key)
	}
	return NewError("event "+e.Type, KindInvalidPayload, "field %q: want %s, got %T", key, want, v)
}

// Bool returns a boolean payload field.
func (e Event) Bool(key string) (bool, error) {
	b, ok := e.Payload[key].(bool)
	if !ok {
		return false, e.payloadError(key, "bool")
	}
	return b, nil
}

// OptBool returns a boolean payload field, or def when it is absent.
func (e Event) OptBool(key string, def bool) (bool, error) {
	if !e.Has(key) {
		return def, nil
	}
	return e.Bool(key)
}

// Str returns a string payload field.
func (e Event) Str(key string) (string, error) {
	s, ok := e.Payload[key].(string)
	if !ok {
		return "", e.payloadError(key, "string")
	}
	return s, nil
}

// OptStr returns a string payload field, or def when it is absent.
func (e Event) OptStr(key, def string) (string, error) {
	if !e.Has(key) {
		return def, nil
	}
	return e.Str(key)
}

// Float returns a numeric payload field as float64.
// Any Go integer or float kind is accepted.
func (e Event) Float(key string) (float64, error) {
	f, ok := toFloat(e.Payload[key])
	if !ok || math.IsNaN(f) {
		return 0, e.payloadError(key, "number")
	}
	return f, nil
}

// Int returns an integral payload field.
func (e Event) Int(key string) (int, error) {
	f, ok := toFloat(e.Payload[key])
	if !ok || f != math.Trunc(f) {
		return 0, e.payloadError(key, "integer")
	}
	return int(f), nil
}

// OptInt returns an integral payload field, or def when it is absent.
func (e Event) OptInt(key string, def int) (int, error) {
	if !e.Has(key) {
		return def, nil
	}
	return e.Int(key)
}

// Strings returns a string-sequence payload field.
// Both []string and []any holding only strings are accepted.
func (e Event) Strings(key string) ([]string, error) {
	switch v := e.Payload[key].(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, NewError("event "+e.Type, KindInvalidPayload, "field %q[%d]: want string, got %T", key, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, e.payloadError(key, "[]string")
	}
}

// Floats returns a numeric-sequence payload field. NaN elements are rejected.
func (e Event) Floats(key string) ([]float64, error) {
	var out []float64
	switch v := e.Payload[key].(type) {
	case []float64:
		out = append([]float64(nil), v...)
	case []int:
		out = make([]float64, len(v))
		for i, n := range v {
			out[i] = float64(n)
		}
	case []any:
		out = make([]float64, 0, len(v))
		for i, item := range v {
			f, ok := toFloat(item)
			if !ok {
				return nil, NewError("event "+e.Type, KindInvalidPayload, "field %q[%d]: want number, got %T", key, i, item)
			}
			out = append(out, f)
		}
	default:
		return nil, e.payloadError(key, "[]number")
	}
	for i, f := range out {
		if math.IsNaN(f) {
			return nil, NewError("event "+e.Type, KindInvalidPayload, "field %q[%d]: NaN is not a number", key, i)
		}
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
