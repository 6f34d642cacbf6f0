package capacity

import (
	"fmt"
	"math/rand"
)

// Draw ranges for node capacity and load. The capacity floor sits above
// the load floor so freshly built networks are rarely degenerate, while
// overload stays representable by constructing nodes directly.
const (
	minCapacity = 80
	maxCapacity = 120
	minLoad     = 40

	minFriction = 0.1
	maxFriction = 0.5
)

// BuildNetwork constructs a randomized network of size nodes. The rng
// is an explicit, caller-owned source: two calls with identically
// seeded sources produce bit-identical networks. There is no package
// level randomness.
//
// Topology is fixed given size: a ring over all nodes plus a shortcut
// from each node in the first half to its antipode, so average degree
// is deterministic. Only capacities, loads and frictions are random.
func BuildNetwork(size int, rng *rand.Rand) (*Network, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidSize, size)
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	nodes := make([]Node, 0, size)
	for i := 0; i < size; i++ {
		cap := float64(minCapacity + rng.Intn(maxCapacity-minCapacity+1))
		load := float64(minLoad + rng.Intn(int(cap)-minLoad+1))
		nodes = append(nodes, Node{
			ID:       fmt.Sprintf("N%d", i),
			Capacity: cap,
			Load:     load,
		})
	}

	edges := make([]Edge, 0, size+size/2)
	if size > 1 {
		// Ring: N0-N1-...-N(size-1)-N0. A two-node "ring" is a single edge.
		ringLen := size
		if size == 2 {
			ringLen = 1
		}
		for i := 0; i < ringLen; i++ {
			edges = append(edges, Edge{
				From:     nodes[i].ID,
				To:       nodes[(i+1)%size].ID,
				Friction: friction(rng),
			})
		}
		// Shortcuts: connect each node in the first half to its antipode.
		// Skip pairs already adjacent on the ring.
		for i := 0; i < size/2; i++ {
			j := i + size/2
			if j-i == 1 || (i == 0 && j == size-1) {
				continue
			}
			edges = append(edges, Edge{
				From:     nodes[i].ID,
				To:       nodes[j].ID,
				Friction: friction(rng),
			})
		}
	}

	return &Network{Nodes: nodes, Edges: edges}, nil
}

func friction(rng *rand.Rand) float64 {
	return minFriction + rng.Float64()*(maxFriction-minFriction)
}
