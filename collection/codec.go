package collection

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes the collection as its item sequence.
func (c *Collection) MarshalYAML() (any, error) {
	return c.Items(), nil
}

// UnmarshalYAML decodes an item sequence.
func (c *Collection) UnmarshalYAML(node *yaml.Node) error {
	var items []Item
	if err := node.Decode(&items); err != nil {
		return err
	}
	*c = *New(items)
	return nil
}

// MarshalJSON encodes the collection as its item sequence.
func (c *Collection) MarshalJSON() ([]byte, error) {
	items := c.Items()
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

// UnmarshalJSON decodes an item sequence.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = *New(items)
	return nil
}
