package topo

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func edge(id string, from, to int) Edge {
	return Edge{ID: id, From: from, To: to}
}

func TestFundamentalCycles_Tree(t *testing.T) {
	// A path graph has no cycles.
	basis := FundamentalCycles(4, []Edge{
		edge("e0", 0, 1),
		edge("e1", 1, 2),
		edge("e2", 2, 3),
	})
	if len(basis.Cycles) != 0 {
		t.Errorf("expected no cycles in a tree, got %d", len(basis.Cycles))
	}
	if basis.Components != 1 {
		t.Errorf("expected 1 component, got %d", basis.Components)
	}
}

func TestFundamentalCycles_Triangle(t *testing.T) {
	basis := FundamentalCycles(3, []Edge{
		edge("e0", 0, 1),
		edge("e1", 1, 2),
		edge("e2", 2, 0),
	})
	if len(basis.Cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(basis.Cycles))
	}
	c := basis.Cycles[0]
	if len(c.Nodes) != 3 || len(c.Edges) != 3 {
		t.Errorf("expected a 3-node 3-edge cycle, got nodes %v edges %v", c.Nodes, c.Edges)
	}
	if c.Edges[len(c.Edges)-1] != c.Chord {
		t.Errorf("last walk edge should be the chord")
	}
}

func TestFundamentalCycles_SelfLoop(t *testing.T) {
	basis := FundamentalCycles(2, []Edge{
		edge("e0", 0, 1),
		edge("loop", 1, 1),
	})
	if len(basis.Cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(basis.Cycles))
	}
	c := basis.Cycles[0]
	if len(c.Nodes) != 1 || len(c.Edges) != 1 {
		t.Errorf("self-loop should yield a single-branch cycle, got nodes %v edges %v", c.Nodes, c.Edges)
	}
}

func TestFundamentalCycles_ParallelEdges(t *testing.T) {
	// Two branches between the same pair: one tree edge, one chord.
	basis := FundamentalCycles(2, []Edge{
		edge("e0", 0, 1),
		edge("e1", 0, 1),
	})
	if len(basis.Cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(basis.Cycles))
	}
	c := basis.Cycles[0]
	if len(c.Nodes) != 2 || len(c.Edges) != 2 {
		t.Errorf("parallel-edge cycle should have 2 nodes and 2 edges, got %v %v", c.Nodes, c.Edges)
	}
}

func TestFundamentalCycles_Disconnected(t *testing.T) {
	// Two triangles sharing nothing, plus one isolated node.
	basis := FundamentalCycles(7, []Edge{
		edge("a0", 0, 1), edge("a1", 1, 2), edge("a2", 2, 0),
		edge("b0", 3, 4), edge("b1", 4, 5), edge("b2", 5, 3),
	})
	if basis.Components != 3 {
		t.Errorf("expected 3 components, got %d", basis.Components)
	}
	if len(basis.Cycles) != 2 {
		t.Errorf("expected 2 cycles, got %d", len(basis.Cycles))
	}
}

func TestCycleWalk_EdgesConnectConsecutiveNodes(t *testing.T) {
	edges := []Edge{
		edge("e0", 0, 1), edge("e1", 1, 2), edge("e2", 2, 3),
		edge("e3", 3, 0), edge("e4", 1, 3),
	}
	basis := FundamentalCycles(4, edges)
	for _, c := range basis.Cycles {
		for i := range c.Edges {
			a := c.Nodes[i]
			b := c.Nodes[(i+1)%len(c.Nodes)]
			e := edges[c.Edges[i]]
			ok := (e.From == a && e.To == b) || (e.From == b && e.To == a)
			if !ok {
				t.Errorf("walk step %d: edge %s does not connect %d and %d", i, e.ID, a, b)
			}
			orient := c.Orientation(i, edges)
			if orient == 1 && e.From != a && e.From != e.To {
				t.Errorf("walk step %d: forward orientation but edge starts at %d, walk at %d", i, e.From, a)
			}
		}
	}
}

// components computes connected components by union-find, independent
// of the DFS in the implementation.
func components(numNodes int, edges []Edge) int {
	parent := make([]int, numNodes)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, e := range edges {
		parent[find(e.From)] = find(e.To)
	}
	count := 0
	for i := range parent {
		if find(i) == i {
			count++
		}
	}
	return count
}

func TestFundamentalCycles_CountInvariant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("cycle count equals |E| - |V| + components", prop.ForAll(
		func(numNodes int, seed []int) bool {
			edges := make([]Edge, 0, len(seed)/2)
			for i := 0; i+1 < len(seed); i += 2 {
				edges = append(edges, Edge{
					From: seed[i] % numNodes,
					To:   seed[i+1] % numNodes,
				})
			}
			basis := FundamentalCycles(numNodes, edges)
			want := len(edges) - numNodes + components(numNodes, edges)
			return len(basis.Cycles) == want && basis.Components == components(numNodes, edges)
		},
		gen.IntRange(1, 9),
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t)
}
