// Package analysis runs static solves over a circuit model: nodal
// analysis (MNA), mesh-current decomposition, and DC source sweeps.
// Every solve rebuilds its matrices from the model, so repeated runs
// are idempotent.
package analysis

import (
	"errors"

	"meshnodal/pkg/circuit"
)

// ErrUnsupportedTopology reports a mesh decomposition request the
// method cannot serve: the circuit contains independent current
// sources, or it has no independent loops at all.
var ErrUnsupportedTopology = errors.New("analysis: mesh decomposition unsupported for this topology")

// Backend selects the linear-solver implementation.
type Backend int

const (
	BackendDense Backend = iota
	BackendSparse
)

// Warning flags a branch that was skipped during assembly instead of
// aborting the solve, e.g. a resistor with a non-positive or
// non-finite value while the user is still typing.
type Warning struct {
	BranchID string
	Detail   string
}

// Result is one static solve. Voltages are referenced to the resolved
// ground node (always 0.0 there); currents are signed along each
// branch's From→To direction. MeshCurrents is nil unless mesh
// decomposition ran, in which case it aligns with Cycles.
type Result struct {
	Reference      string
	NodeVoltages   map[string]float64
	BranchCurrents map[string]float64
	MeshCurrents   []float64
	Cycles         [][]string
	Components     int
	Warnings       []Warning
}

type Analysis interface {
	Setup(ckt *circuit.Circuit) error
	Execute() error
	GetResults() map[string][]float64
}

// BaseAnalysis accumulates named result series ("V(n1)", "I(R1)") the
// way the printing layer consumes them.
type BaseAnalysis struct {
	Circuit *circuit.Circuit
	results map[string][]float64
}

func NewBaseAnalysis() *BaseAnalysis {
	return &BaseAnalysis{results: make(map[string][]float64)}
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}

func (a *BaseAnalysis) storeResult(point map[string]float64) {
	for name, value := range point {
		a.results[name] = append(a.results[name], value)
	}
}

// resultPoint flattens a Result into printable series keys.
func resultPoint(res *Result) map[string]float64 {
	point := make(map[string]float64, len(res.NodeVoltages)+len(res.BranchCurrents))
	for name, v := range res.NodeVoltages {
		point["V("+name+")"] = v
	}
	for name, i := range res.BranchCurrents {
		point["I("+name+")"] = i
	}
	return point
}
