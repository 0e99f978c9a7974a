// Package scenario runs widget scenarios described in YAML files: build an
// instance from options, feed it events, then check assertions over its
// state, derived values and rendered part attributes.
//
//	widget: select
//	id: country
//	options:
//	  multiple: true
//	  items: [{label: Nigeria, value: NG}, {label: Japan, value: JP}]
//	events:
//	  - {type: TRIGGER.CLICK}
//	  - {type: CONTENT.ARROW_DOWN, repeat: 2, every: 5ms}
//	  - {type: ITEM.CLICK, value: NG}
//	expect:
//	  - state == open
//	  - valueAsString == Nigeria
//	parts: [trigger, "item:NG"]
package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/headlessx/internal/primitives"
)

// File is one decoded scenario.
type File struct {
	Path    string    `yaml:"-"`
	Widget  string    `yaml:"widget"`
	ID      string    `yaml:"id"`
	Options yaml.Node `yaml:"options"`
	Events  []Step    `yaml:"events"`
	Expect  []string  `yaml:"expect"`
	Parts   []string  `yaml:"parts"`
}

// Step is one event of a scenario. In YAML it is a flat mapping: "type"
// names the event, "reject: true" marks an event the machine must refuse,
// "repeat: n" sends it n times on a timer ticking every "every" (a
// duration, default 10ms), and every other key is payload.
type Step struct {
	Event  primitives.Event
	Reject bool
	Repeat int
	Every  time.Duration
}

const defaultEvery = 10 * time.Millisecond

// UnmarshalYAML decodes the flat step mapping.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	var fields map[string]any
	if err := node.Decode(&fields); err != nil {
		return err
	}
	eventType, ok := fields["type"].(string)
	if !ok || eventType == "" {
		return fmt.Errorf("line %d: event needs a string type", node.Line)
	}
	delete(fields, "type")
	if r, ok := fields["reject"]; ok {
		b, isBool := r.(bool)
		if !isBool {
			return fmt.Errorf("line %d: reject must be a bool", node.Line)
		}
		s.Reject = b
		delete(fields, "reject")
	}
	if r, ok := fields["repeat"]; ok {
		n, isInt := r.(int)
		if !isInt || n < 1 {
			return fmt.Errorf("line %d: repeat must be a positive integer", node.Line)
		}
		s.Repeat = n
		delete(fields, "repeat")
	}
	if e, ok := fields["every"]; ok {
		str, _ := e.(string)
		d, err := time.ParseDuration(str)
		if err != nil || d <= 0 {
			return fmt.Errorf("line %d: every must be a positive duration such as 5ms", node.Line)
		}
		s.Every = d
		delete(fields, "every")
	}
	if s.Repeat > 1 && s.Every == 0 {
		s.Every = defaultEvery
	}
	if len(fields) == 0 {
		fields = nil
	}
	s.Event = primitives.NewEvent(eventType, fields)
	return nil
}

// Parse decodes a scenario from data.
func Parse(path string, data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.Widget == "" {
		return nil, fmt.Errorf("parse %s: widget is required", path)
	}
	f.Path = path
	return &f, nil
}

// Load reads and decodes the scenario at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(path, data)
}

// options returns the options mapping with the scenario id merged in.
func (f *File) options() *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if f.Options.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(f.Options.Content); i += 2 {
			if f.ID != "" && f.Options.Content[i].Value == "id" {
				continue
			}
			out.Content = append(out.Content, f.Options.Content[i], f.Options.Content[i+1])
		}
	}
	if f.ID != "" {
		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "id"},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.ID},
		)
	}
	return out
}
