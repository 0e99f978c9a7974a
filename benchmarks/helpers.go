// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/headlessx/collection"
	"github.com/comalice/headlessx/dropdown"
	"github.com/comalice/headlessx/internal/primitives"
)

// GenItems creates n collection items; every tenth one is disabled.
func GenItems(n int) []collection.Item {
	items := make([]collection.Item, n)
	for i := range n {
		items[i] = collection.Item{
			Label:    fmt.Sprintf("Item %d", i),
			Value:    fmt.Sprintf("v%d", i),
			Disabled: i%10 == 9,
		}
	}
	return items
}

// GenFlatSpec creates a spec with n states cycling via "tick" events.
func GenFlatSpec(n int) *primitives.MachineSpec[int] {
	if n < 1 {
		n = 1
	}
	b := primitives.NewSpecBuilder[int](fmt.Sprintf("flat_%d", n), "s0")
	for i := range n {
		b.State(fmt.Sprintf("s%d", i)).On("tick", fmt.Sprintf("s%d", (i+1)%n), nil, count)
	}
	return b.MustBuild()
}

// GenWideSpec creates one state with n guarded "tick" transitions of which
// only the last one passes.
func GenWideSpec(n int) *primitives.MachineSpec[int] {
	b := primitives.NewSpecBuilder[int](fmt.Sprintf("wide_%d", n), "idle")
	s := b.State("idle")
	for i := range n {
		pass := i == n-1
		s.Transition("tick", primitives.TransitionConfig[int]{
			Guard:    func(int, primitives.Event) bool { return pass },
			Actions:  []primitives.Action[int]{count},
			Priority: n - i,
		})
	}
	return b.MustBuild()
}

func count(c *int, _ primitives.Event) error {
	*c++
	return nil
}

// GenRecordYAML returns the YAML record of an open select over n items.
func GenRecordYAML(n int) []byte {
	m := dropdown.New(dropdown.Options{ID: "bench", Items: GenItems(n), Multiple: true})
	if err := m.Start(); err != nil {
		panic(err)
	}
	if err := m.Send(primitives.NewEvent(dropdown.EventOpen, nil)); err != nil {
		panic(err)
	}
	for i := 0; i < n; i += 2 {
		if err := m.Send(primitives.NewEvent(dropdown.EventSelectValue, map[string]any{"value": fmt.Sprintf("v%d", i)})); err != nil {
			panic(err)
		}
	}
	data, err := yaml.Marshal(m.Record())
	if err != nil {
		panic(err)
	}
	return data
}
