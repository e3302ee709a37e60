package analysis

import (
	"fmt"

	"meshnodal/pkg/circuit"
)

// Nodal computes the operating point of the circuit by modified nodal
// analysis: node voltages against the resolved reference and the
// signed current through every branch.
type Nodal struct {
	BaseAnalysis
	backend Backend
	result  *Result
}

func NewNodal() *Nodal {
	return &Nodal{BaseAnalysis: *NewBaseAnalysis()}
}

// NewNodalWithBackend selects the linear-solver backend; the default
// is the dense eliminator.
func NewNodalWithBackend(backend Backend) *Nodal {
	n := NewNodal()
	n.backend = backend
	return n
}

func (n *Nodal) Setup(ckt *circuit.Circuit) error {
	n.Circuit = ckt
	return nil
}

func (n *Nodal) Execute() error {
	res, err := solveNodal(n.Circuit, n.backend)
	if err != nil {
		return err
	}
	n.result = res
	n.storeResult(resultPoint(res))
	return nil
}

// Result returns the typed solve output; valid after Execute.
func (n *Nodal) Result() *Result {
	return n.result
}

// solveNodal is the single static-solve primitive shared by the
// nodal, mesh, and sweep analyses.
func solveNodal(ckt *circuit.Circuit, backend Backend) (*Result, error) {
	sys, err := assemble(ckt, backend)
	if err != nil {
		return nil, err
	}

	if sys.size() == 0 {
		// Fully grounded: only the reference (and isolated nodes)
		// exist. The trivial solution needs no elimination.
		return sys.extract(nil), nil
	}

	solution, err := sys.mat.Solve()
	if err != nil {
		return nil, fmt.Errorf("circuit has no unique solution, check grounding and sources: %w", err)
	}

	return sys.extract(solution), nil
}
