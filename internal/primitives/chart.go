package primitives

// Edge is one transition of a chart.
type Edge struct {
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	Event   string `json:"event" yaml:"event"`
	Guarded bool   `json:"guarded,omitempty" yaml:"guarded,omitempty"`
	Global  bool   `json:"global,omitempty" yaml:"global,omitempty"`
}

// Chart is the context-free shape of a MachineSpec.
type Chart struct {
	ID      string   `json:"id" yaml:"id"`
	Initial string   `json:"initial" yaml:"initial"`
	States  []string `json:"states" yaml:"states"`
	Edges   []Edge   `json:"edges,omitempty" yaml:"edges,omitempty"`
	Events  []string `json:"events,omitempty" yaml:"events,omitempty"`
}
