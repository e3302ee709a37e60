package analysis

import (
	"fmt"

	"meshnodal/pkg/circuit"
	"meshnodal/pkg/matrix"
	"meshnodal/pkg/topo"
)

// Mesh runs nodal analysis and then re-expresses the branch currents
// as loop currents, one per fundamental cycle of the circuit graph.
// The loop currents are the least-squares solution of C·m ≈ i, where C
// is the branch-by-cycle traversal incidence matrix, obtained from the
// normal equations (CᵀC)m = Cᵀi with the same eliminator as the main
// solve.
//
// Independent current sources make loop currents ill-defined for this
// formulation, so their presence fails with ErrUnsupportedTopology, as
// does a circuit with no cycles at all.
type Mesh struct {
	BaseAnalysis
	backend Backend
	result  *Result
}

func NewMesh() *Mesh {
	return &Mesh{BaseAnalysis: *NewBaseAnalysis()}
}

func NewMeshWithBackend(backend Backend) *Mesh {
	m := NewMesh()
	m.backend = backend
	return m
}

func (m *Mesh) Setup(ckt *circuit.Circuit) error {
	m.Circuit = ckt
	return nil
}

func (m *Mesh) Result() *Result {
	return m.result
}

func (m *Mesh) Execute() error {
	for _, b := range m.Circuit.Branches() {
		if b.Kind == circuit.CurrentSource {
			return fmt.Errorf("current source %s present: %w", b.ID, ErrUnsupportedTopology)
		}
	}

	sys, res, err := solveForMesh(m.Circuit, m.backend)
	if err != nil {
		return err
	}

	handles, edges := graphOf(sys)
	basis := topo.FundamentalCycles(len(handles), edges)
	res.Components = basis.Components
	if len(basis.Cycles) == 0 {
		return fmt.Errorf("no independent loops: %w", ErrUnsupportedTopology)
	}

	mesh, err := loopCurrents(sys, basis, edges, res)
	if err != nil {
		return err
	}

	res.MeshCurrents = mesh
	res.Cycles = cycleWalks(basis, handles)
	m.result = res
	m.storeResult(resultPoint(res))
	return nil
}

func solveForMesh(ckt *circuit.Circuit, backend Backend) (*system, *Result, error) {
	sys, err := assemble(ckt, backend)
	if err != nil {
		return nil, nil, err
	}
	if sys.size() == 0 {
		return nil, nil, fmt.Errorf("no unknowns to decompose: %w", ErrUnsupportedTopology)
	}
	solution, err := sys.mat.Solve()
	if err != nil {
		return nil, nil, fmt.Errorf("circuit has no unique solution, check grounding and sources: %w", err)
	}
	return sys, sys.extract(solution), nil
}

// graphOf projects the stamped branches onto dense node handles for
// the cycle finder. The reference node takes part like any other
// vertex here; grounding plays no role in the cycle space.
func graphOf(sys *system) (names []string, edges []topo.Edge) {
	handle := make(map[string]int)
	intern := func(name string) int {
		h, ok := handle[name]
		if !ok {
			h = len(names)
			handle[name] = h
			names = append(names, name)
		}
		return h
	}

	edges = make([]topo.Edge, 0, len(sys.branches))
	for _, b := range sys.branches {
		edges = append(edges, topo.Edge{
			ID:   b.ID,
			From: intern(b.From),
			To:   intern(b.To),
		})
	}
	return names, edges
}

func loopCurrents(sys *system, basis topo.Basis, edges []topo.Edge, res *Result) ([]float64, error) {
	numCycles := len(basis.Cycles)

	// C[branch][cycle] traversal incidence.
	incidence := make([][]float64, len(edges))
	for i := range incidence {
		incidence[i] = make([]float64, numCycles)
	}
	for c, cycle := range basis.Cycles {
		for step := range cycle.Edges {
			incidence[cycle.Edges[step]][c] = float64(cycle.Orientation(step, edges))
		}
	}

	branchCurrent := make([]float64, len(edges))
	for i, b := range sys.branches {
		branchCurrent[i] = res.BranchCurrents[b.ID]
	}

	// Normal equations, solved by the same routine as the main system.
	normal := matrix.NewDense(numCycles)
	for r := 0; r < numCycles; r++ {
		for c := 0; c < numCycles; c++ {
			var sum float64
			for b := range edges {
				sum += incidence[b][r] * incidence[b][c]
			}
			normal.AddElement(r+1, c+1, sum)
		}
		var rhs float64
		for b := range edges {
			rhs += incidence[b][r] * branchCurrent[b]
		}
		normal.AddRHS(r+1, rhs)
	}

	solution, err := normal.Solve()
	if err != nil {
		return nil, fmt.Errorf("solving loop-current equations: %w", err)
	}

	mesh := make([]float64, numCycles)
	copy(mesh, solution[1:])
	return mesh, nil
}

func cycleWalks(basis topo.Basis, names []string) [][]string {
	walks := make([][]string, len(basis.Cycles))
	for i, cycle := range basis.Cycles {
		walk := make([]string, len(cycle.Nodes))
		for j, h := range cycle.Nodes {
			walk[j] = names[h]
		}
		walks[i] = walk
	}
	return walks
}
