// Package capacity models an abstract capacity/load network and reduces
// it to the structural health triple (H, HEff, S).
//
// A network is a value object: it is fully built before any metric is
// computed and never mutated afterwards. The update model is
// rebuild-from-scratch with a fresh random source.
package capacity

import "fmt"

// Node is a structural container with finite capacity and current load.
// Load is allowed to exceed capacity; a negative slack signals overload
// and is a meaningful state, not an error.
type Node struct {
	ID       string  `json:"id"`
	Capacity float64 `json:"capacity"`
	Load     float64 `json:"load"`
}

// Slack returns the node's spare capacity. It may be negative when the
// node is overloaded.
func (n Node) Slack() float64 {
	return n.Capacity - n.Load
}

// Utilization returns load/capacity. A node with zero capacity reports
// a utilization of 0 rather than dividing by zero; the convention is
// shared with ComputeMetrics.
func (n Node) Utilization() float64 {
	if n.Capacity == 0 {
		return 0
	}
	return n.Load / n.Capacity
}

func (n Node) String() string {
	return fmt.Sprintf("%s (L=%.0f, C=%.0f)", n.ID, n.Load, n.Capacity)
}

// Edge is an unordered connection between two nodes. Friction is an
// interaction cost in [0.1, 0.5]; the metrics only use edges to derive
// node degree, never as a flow quantity.
type Edge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Friction float64 `json:"friction"`
}

// Network is a fully built set of nodes and edges.
type Network struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Size returns the node count.
func (nw *Network) Size() int {
	return len(nw.Nodes)
}

// Degrees returns the degree of every node keyed by node ID. Nodes
// without edges are present with degree 0.
func (nw *Network) Degrees() map[string]int {
	degrees := make(map[string]int, len(nw.Nodes))
	for _, n := range nw.Nodes {
		degrees[n.ID] = 0
	}
	for _, e := range nw.Edges {
		degrees[e.From]++
		degrees[e.To]++
	}
	return degrees
}
