// Package topo derives the fundamental cycle basis of a circuit graph:
// a DFS spanning forest plus one cycle per non-tree edge (chord). The
// basis has exactly |edges| - |nodes| + components members, the
// dimension of the graph's cycle space.
package topo

// Edge is an undirected graph edge between two node handles. The
// From→To order is kept because it carries the branch sign convention
// downstream.
type Edge struct {
	ID   string
	From int
	To   int
}

// Cycle is a closed walk. Nodes lists the vertices in walk order;
// Edges[i] is the index (into the input edge list) of the edge
// traversed from Nodes[i] to Nodes[(i+1) % len(Nodes)], so the last
// entry is always the chord that closes the cycle. A self-loop chord
// yields a single-node, single-edge cycle.
type Cycle struct {
	Nodes []int
	Edges []int
	Chord int
}

// Basis is a fundamental cycle basis over a (possibly disconnected)
// graph. Disconnection is reported through Components, not treated as
// an error.
type Basis struct {
	Cycles     []Cycle
	Components int
}

// FundamentalCycles builds a DFS spanning forest over nodes 0..numNodes-1
// and emits one cycle per chord by walking parent pointers from both
// chord endpoints to their lowest common ancestor.
func FundamentalCycles(numNodes int, edges []Edge) Basis {
	type arc struct {
		edge int
		to   int
	}
	adj := make([][]arc, numNodes)
	for i, e := range edges {
		if e.From == e.To {
			continue // self-loops are never tree edges
		}
		adj[e.From] = append(adj[e.From], arc{edge: i, to: e.To})
		adj[e.To] = append(adj[e.To], arc{edge: i, to: e.From})
	}

	visited := make([]bool, numNodes)
	parent := make([]int, numNodes)
	parentEdge := make([]int, numNodes)
	depth := make([]int, numNodes)
	treeEdge := make([]bool, len(edges))

	var dfs func(n int)
	dfs = func(n int) {
		visited[n] = true
		for _, a := range adj[n] {
			if visited[a.to] {
				continue
			}
			parent[a.to] = n
			parentEdge[a.to] = a.edge
			depth[a.to] = depth[n] + 1
			treeEdge[a.edge] = true
			dfs(a.to)
		}
	}

	components := 0
	for n := 0; n < numNodes; n++ {
		if !visited[n] {
			parent[n] = -1
			parentEdge[n] = -1
			depth[n] = 0
			components++
			dfs(n)
		}
	}

	var basis Basis
	basis.Components = components
	for i, e := range edges {
		if treeEdge[i] {
			continue
		}
		basis.Cycles = append(basis.Cycles, spliceCycle(i, e, parent, parentEdge, depth))
	}
	return basis
}

// spliceCycle joins the tree paths from both chord endpoints at their
// lowest common ancestor: Nodes runs u → lca → v and the chord closes
// v back to u.
func spliceCycle(chordIdx int, chord Edge, parent, parentEdge, depth []int) Cycle {
	if chord.From == chord.To {
		return Cycle{Nodes: []int{chord.From}, Edges: []int{chordIdx}, Chord: chordIdx}
	}

	u, v := chord.From, chord.To
	var upNodes, upEdges []int // u side, walking toward the root
	var dnNodes, dnEdges []int // v side

	for depth[u] > depth[v] {
		upNodes = append(upNodes, u)
		upEdges = append(upEdges, parentEdge[u])
		u = parent[u]
	}
	for depth[v] > depth[u] {
		dnNodes = append(dnNodes, v)
		dnEdges = append(dnEdges, parentEdge[v])
		v = parent[v]
	}
	for u != v {
		upNodes = append(upNodes, u)
		upEdges = append(upEdges, parentEdge[u])
		u = parent[u]
		dnNodes = append(dnNodes, v)
		dnEdges = append(dnEdges, parentEdge[v])
		v = parent[v]
	}
	lca := u

	nodes := append([]int{}, upNodes...)
	nodes = append(nodes, lca)
	for i := len(dnNodes) - 1; i >= 0; i-- {
		nodes = append(nodes, dnNodes[i])
	}

	edges := append([]int{}, upEdges...)
	for i := len(dnEdges) - 1; i >= 0; i-- {
		edges = append(edges, dnEdges[i])
	}
	edges = append(edges, chordIdx)

	return Cycle{Nodes: nodes, Edges: edges, Chord: chordIdx}
}

// Orientation reports how the walk traverses step i of a cycle: +1
// when the edge is crossed From→To, -1 when crossed To→From. Self-loop
// steps count as forward.
func (c Cycle) Orientation(i int, edges []Edge) int {
	e := edges[c.Edges[i]]
	a := c.Nodes[i]
	if e.From == e.To {
		return 1
	}
	if e.From == a {
		return 1
	}
	return -1
}
