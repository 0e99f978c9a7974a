// Package dom holds the renderer-facing vocabulary shared by every widget:
// the props bag, host events, and the deterministic element id scheme.
package dom

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Props is the bag of attributes and event handlers for one widget part.
// Values are strings, bools, numbers or Handlers.
type Props map[string]any

// Handler receives an event from the host renderer and dispatches the
// matching machine event.
type Handler func(evt HostEvent) error

// HostEvent is the renderer-agnostic shape of a DOM event.
type HostEvent struct {
	Type    string
	Key     string
	Checked bool
	Value   string
	Trusted bool
}

// Attributes returns a copy of p without its handlers.
func (p Props) Attributes() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		if _, ok := v.(Handler); ok {
			continue
		}
		out[k] = v
	}
	return out
}

// Handlers returns the event handlers of p keyed by attribute name.
func (p Props) Handlers() map[string]Handler {
	out := make(map[string]Handler)
	for k, v := range p {
		if h, ok := v.(Handler); ok {
			out[k] = h
		}
	}
	return out
}

// Handler returns the handler stored under name, or nil.
func (p Props) Handler(name string) Handler {
	h, _ := p[name].(Handler)
	return h
}

// Keys returns the attribute names of p in sorted order.
func (p Props) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Merge copies every entry of other into a new bag layered over p.
func (p Props) Merge(other Props) Props {
	out := make(Props, len(p)+len(other))
	maps.Copy(out, p)
	maps.Copy(out, other)
	return out
}

// ID joins the widget name, instance id and part path with ":".
func ID(widget, id string, parts ...string) string {
	var b strings.Builder
	b.WriteString(widget)
	b.WriteByte(':')
	b.WriteString(id)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

// InstanceID returns id, or a fresh random id when id is empty.
func InstanceID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// Part returns the data-scope and data-part attributes of a widget part.
func Part(widget, part string) Props {
	return Props{
		"data-scope": widget,
		"data-part":  part,
	}
}

// DataAttr returns "" when cond holds and nil otherwise. Renderers emit
// present-but-empty data attributes for "" and omit nil ones.
func DataAttr(cond bool) any {
	if cond {
		return ""
	}
	return nil
}

// AriaBool returns "true" or "false".
func AriaBool(b bool) string {
	return strconv.FormatBool(b)
}

// OpenState returns the data-state value of a disclosure.
func OpenState(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

// Compact drops nil-valued entries.
func (p Props) Compact() Props {
	for k, v := range p {
		if v == nil {
			delete(p, k)
		}
	}
	return p
}
