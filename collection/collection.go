// Package collection provides the immutable item list backing a select.
package collection

import "strings"

// Item is one selectable entry.
type Item struct {
	Label    string `json:"label" yaml:"label"`
	Value    string `json:"value" yaml:"value"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Collection is an ordered, immutable sequence of items indexed by value.
// Machines hold a pointer to it and never copy it per access.
type Collection struct {
	items []Item
	index map[string]int
}

// New builds a collection. Later duplicates of a value are ignored.
func New(items []Item) *Collection {
	c := &Collection{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if _, dup := c.index[it.Value]; dup {
			continue
		}
		c.index[it.Value] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// Len returns the number of items. A nil collection is empty.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns a copy of the items in order.
func (c *Collection) Items() []Item {
	if c == nil {
		return nil
	}
	return append([]Item(nil), c.items...)
}

// At returns the item at position i.
func (c *Collection) At(i int) Item {
	return c.items[i]
}

// Find returns the item with the given value.
func (c *Collection) Find(value string) (Item, bool) {
	i := c.IndexOf(value)
	if i < 0 {
		return Item{}, false
	}
	return c.items[i], true
}

// Has reports whether value is in the collection.
func (c *Collection) Has(value string) bool {
	return c.IndexOf(value) >= 0
}

// IndexOf returns the position of value, or -1.
func (c *Collection) IndexOf(value string) int {
	if c == nil {
		return -1
	}
	i, ok := c.index[value]
	if !ok {
		return -1
	}
	return i
}

// Enabled reports whether value names an item that is not disabled.
func (c *Collection) Enabled(value string) bool {
	it, ok := c.Find(value)
	return ok && !it.Disabled
}

// Labels returns the labels of values in order, skipping unknown values.
func (c *Collection) Labels(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if it, ok := c.Find(v); ok {
			out = append(out, it.Label)
		}
	}
	return out
}

// Stringify joins the labels of values with sep.
func (c *Collection) Stringify(values []string, sep string) string {
	return strings.Join(c.Labels(values), sep)
}

// Sort orders values by collection position; unknown values go last in
// their original order.
func (c *Collection) Sort(values []string) []string {
	out := make([]string, 0, len(values))
	var unknown []string
	seen := make(map[int]bool, len(values))
	for _, v := range values {
		if i := c.IndexOf(v); i >= 0 {
			seen[i] = true
		} else {
			unknown = append(unknown, v)
		}
	}
	for i := range c.Len() {
		if seen[i] {
			out = append(out, c.items[i].Value)
		}
	}
	return append(out, unknown...)
}

// Next returns the first enabled value after from, or the first enabled
// value when from is unknown. With loop set the search wraps around.
func (c *Collection) Next(from string, loop bool) (string, bool) {
	return c.walk(from, 1, loop)
}

// Prev is Next in the other direction.
func (c *Collection) Prev(from string, loop bool) (string, bool) {
	return c.walk(from, -1, loop)
}

// First returns the first enabled value.
func (c *Collection) First() (string, bool) {
	return c.walk("", 1, false)
}

// Last returns the last enabled value.
func (c *Collection) Last() (string, bool) {
	return c.walk("", -1, false)
}

func (c *Collection) walk(from string, dir int, loop bool) (string, bool) {
	n := c.Len()
	if n == 0 {
		return "", false
	}
	start := c.IndexOf(from)
	if start < 0 {
		start = -1
		if dir < 0 {
			start = n
		}
	}
	for step := 1; step <= n; step++ {
		i := start + dir*step
		if i < 0 || i >= n {
			if !loop {
				return "", false
			}
			i = ((i % n) + n) % n
		}
		if !c.items[i].Disabled {
			return c.items[i].Value, true
		}
	}
	return "", false
}
