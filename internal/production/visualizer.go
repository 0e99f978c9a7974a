package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/comalice/headlessx/internal/primitives"
)

// DefaultVisualizer renders widget charts.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for chart, highlighting current.
// Transitions sharing a source and target are merged into one edge whose
// label lists the events; guarded events carry a "?" suffix and global ones
// a leading "*".
func (v *DefaultVisualizer) ExportDOT(chart primitives.Chart, current string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", chart.ID)
	buf.WriteString(`  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
  "__start" [shape=point];
`)
	for _, state := range chart.States {
		style := ""
		if state == current {
			style = ` style="rounded,filled" fillcolor=lightgreen`
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", state, state, style)
	}
	fmt.Fprintf(&buf, "  \"__start\" -> %q;\n", chart.Initial)
	for _, e := range mergeEdges(chart.Edges) {
		fmt.Fprintf(&buf, "  %q -> %q [label=\"%s\"];\n", e.from, e.to, strings.Join(e.labels, `\n`))
	}
	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the chart to JSON.
func (v *DefaultVisualizer) ExportJSON(chart primitives.Chart) ([]byte, error) {
	return json.MarshalIndent(chart, "", "  ")
}

type mergedEdge struct {
	from, to string
	labels   []string
}

func mergeEdges(edges []primitives.Edge) []mergedEdge {
	var out []mergedEdge
	index := make(map[[2]string]int)
	seen := make(map[string]bool)
	for _, e := range edges {
		label := e.Event
		if e.Global {
			label = "*" + label
		}
		if e.Guarded {
			label += "?"
		}
		if seen[e.From+"\x00"+e.To+"\x00"+label] {
			continue
		}
		seen[e.From+"\x00"+e.To+"\x00"+label] = true
		k := [2]string{e.From, e.To}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, mergedEdge{from: e.From, to: e.To})
		}
		out[i].labels = append(out[i].labels, label)
	}
	return out
}
