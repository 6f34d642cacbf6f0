package capacity

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// TestBuildNetwork_InvalidSize tests that sizes below 1 are rejected
func TestBuildNetwork_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -100} {
		_, err := BuildNetwork(size, rand.New(rand.NewSource(1)))
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("BuildNetwork(%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
}

// TestBuildNetwork_NilRand tests that a missing random source is rejected
func TestBuildNetwork_NilRand(t *testing.T) {
	_, err := BuildNetwork(6, nil)
	if !errors.Is(err, ErrNilRand) {
		t.Errorf("BuildNetwork with nil rng error = %v, want ErrNilRand", err)
	}
}

// TestBuildNetwork_SingleNode tests the degenerate single-node network
func TestBuildNetwork_SingleNode(t *testing.T) {
	nw, err := BuildNetwork(1, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}
	if nw.Size() != 1 {
		t.Errorf("Size() = %d, want 1", nw.Size())
	}
	if len(nw.Edges) != 0 {
		t.Errorf("single-node network has %d edges, want 0", len(nw.Edges))
	}
}

// TestBuildNetwork_NodeRanges tests that draws stay within the documented ranges
func TestBuildNetwork_NodeRanges(t *testing.T) {
	nw, err := BuildNetwork(12, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}

	for _, n := range nw.Nodes {
		if n.Capacity < minCapacity || n.Capacity > maxCapacity {
			t.Errorf("node %s capacity %.0f outside [%d, %d]", n.ID, n.Capacity, minCapacity, maxCapacity)
		}
		if n.Load < minLoad || n.Load > n.Capacity {
			t.Errorf("node %s load %.0f outside [%d, capacity]", n.ID, n.Load, minLoad)
		}
	}
	for _, e := range nw.Edges {
		if e.Friction < minFriction || e.Friction > maxFriction {
			t.Errorf("edge %s-%s friction %.3f outside [%.1f, %.1f]", e.From, e.To, e.Friction, minFriction, maxFriction)
		}
	}
}

// TestBuildNetwork_DeterministicTopology tests that the edge set is a
// pure function of size
func TestBuildNetwork_DeterministicTopology(t *testing.T) {
	a, err := BuildNetwork(8, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}
	b, err := BuildNetwork(8, rand.New(rand.NewSource(999)))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}

	if len(a.Edges) != len(b.Edges) {
		t.Fatalf("edge counts differ for same size: %d vs %d", len(a.Edges), len(b.Edges))
	}
	for i := range a.Edges {
		if a.Edges[i].From != b.Edges[i].From || a.Edges[i].To != b.Edges[i].To {
			t.Errorf("edge %d endpoints differ: %s-%s vs %s-%s",
				i, a.Edges[i].From, a.Edges[i].To, b.Edges[i].From, b.Edges[i].To)
		}
	}
}

// TestBuildNetwork_Reproducible tests bit-identical rebuilds from the same seed
func TestBuildNetwork_Reproducible(t *testing.T) {
	a, err := BuildNetwork(6, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}
	b, err := BuildNetwork(6, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("identically seeded builds differ")
	}
	if ComputeMetrics(a) != ComputeMetrics(b) {
		t.Error("identically seeded builds yield different metrics")
	}
}

// TestBuildNetwork_TwoNodes tests that the two-node ring collapses to one edge
func TestBuildNetwork_TwoNodes(t *testing.T) {
	nw, err := BuildNetwork(2, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}
	if len(nw.Edges) != 1 {
		t.Errorf("two-node network has %d edges, want 1", len(nw.Edges))
	}
}

// TestDegrees tests degree derivation including isolated nodes
func TestDegrees(t *testing.T) {
	nw := &Network{
		Nodes: []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []Edge{{From: "A", To: "B", Friction: 0.2}},
	}

	degrees := nw.Degrees()
	if degrees["A"] != 1 || degrees["B"] != 1 {
		t.Errorf("degrees = %v, want A=1 B=1", degrees)
	}
	if degrees["C"] != 0 {
		t.Errorf("isolated node degree = %d, want 0", degrees["C"])
	}
}

func BenchmarkBuildNetwork_Small(b *testing.B) {
	rng := rand.New(rand.NewSource(42))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildNetwork(6, rng); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildNetwork_Large(b *testing.B) {
	rng := rand.New(rand.NewSource(42))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildNetwork(20, rng); err != nil {
			b.Fatal(err)
		}
	}
}
