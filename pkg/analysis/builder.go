package analysis

import (
	"fmt"
	"math"

	"meshnodal/pkg/circuit"
	"meshnodal/pkg/device"
	"meshnodal/pkg/matrix"
)

// system is the assembled MNA view of one circuit snapshot: unknowns
// are the non-reference node voltages 1..N followed by the voltage
// source branch currents N+1..N+M.
type system struct {
	ref       string
	nodeMap   map[string]int // node name -> 1..N
	branchMap map[string]int // voltage source name -> N+1..N+M
	isolated  []string       // live nodes with no stamped branch, held at 0V
	devices   []device.Device
	branches  []circuit.Branch // the stamped branches, model order
	warnings  []Warning
	mat       matrix.System
}

// assemble indexes the circuit and stamps every usable branch.
// Resistors with a non-positive or non-finite value are skipped with a
// warning rather than failing the whole solve; source values only need
// to be finite.
func assemble(ckt *circuit.Circuit, backend Backend) (*system, error) {
	sys := &system{
		ref:       ckt.Reference(),
		nodeMap:   make(map[string]int),
		branchMap: make(map[string]int),
	}

	branches := ckt.Branches()
	usable := make([]circuit.Branch, 0, len(branches))
	for _, b := range branches {
		if reason := rejectBranch(b); reason != "" {
			sys.warnings = append(sys.warnings, Warning{BranchID: b.ID, Detail: reason})
			continue
		}
		usable = append(usable, b)
	}
	sys.branches = usable

	// Index the non-reference nodes that some stamped branch touches.
	// A node left with no usable branch has no KCL equation; it is
	// reported at 0V instead of poisoning the matrix with a zero row.
	touched := make(map[string]bool, len(usable)*2)
	for _, b := range usable {
		touched[b.From] = true
		touched[b.To] = true
	}
	for _, name := range ckt.Nodes() {
		if name == sys.ref {
			continue
		}
		if !touched[name] {
			sys.isolated = append(sys.isolated, name)
			continue
		}
		sys.nodeMap[name] = len(sys.nodeMap) + 1
	}

	numNodes := len(sys.nodeMap)
	branchIdx := numNodes
	for _, b := range usable {
		if b.Kind == circuit.VoltageSource {
			branchIdx++
			sys.branchMap[b.ID] = branchIdx
		}
	}

	size := branchIdx
	if size == 0 {
		return sys, nil // fully grounded, nothing to solve
	}

	switch backend {
	case BackendSparse:
		mat, err := matrix.NewSparse(size)
		if err != nil {
			return nil, fmt.Errorf("creating system of order %d: %w", size, err)
		}
		sys.mat = mat
	default:
		sys.mat = matrix.NewDense(size)
	}

	for _, b := range usable {
		dev := sys.newDevice(b)
		sys.devices = append(sys.devices, dev)
		if err := dev.Stamp(sys.mat); err != nil {
			return nil, fmt.Errorf("stamping %s: %w", b.ID, err)
		}
	}

	return sys, nil
}

func rejectBranch(b circuit.Branch) string {
	switch b.Kind {
	case circuit.Resistor:
		if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
			return "resistance is not finite"
		}
		if b.Value <= 0 {
			return "resistance must be positive"
		}
	default:
		if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
			return "source value is not finite"
		}
	}
	return ""
}

func (s *system) newDevice(b circuit.Branch) device.Device {
	nodeNames := []string{b.From, b.To}
	nodes := []int{s.nodeMap[b.From], s.nodeMap[b.To]} // reference maps to 0

	var dev device.Device
	switch b.Kind {
	case circuit.VoltageSource:
		v := device.NewVoltageSource(b.ID, nodeNames, b.Value)
		v.SetBranchIndex(s.branchMap[b.ID])
		dev = v
	case circuit.CurrentSource:
		dev = device.NewCurrentSource(b.ID, nodeNames, b.Value)
	default:
		dev = device.NewResistor(b.ID, nodeNames, b.Value)
	}
	dev.SetNodes(nodes)
	return dev
}

// size is the order of the assembled system, zero when degenerate.
func (s *system) size() int {
	if s.mat == nil {
		return 0
	}
	return s.mat.Size()
}

// extract converts a raw 1-based solution vector into the per-node and
// per-branch maps of a Result.
func (s *system) extract(solution []float64) *Result {
	res := &Result{
		Reference:      s.ref,
		NodeVoltages:   make(map[string]float64),
		BranchCurrents: make(map[string]float64),
		Warnings:       s.warnings,
	}

	if s.ref != "" {
		res.NodeVoltages[s.ref] = 0
	}
	for name, idx := range s.nodeMap {
		res.NodeVoltages[name] = solution[idx]
	}
	for _, name := range s.isolated {
		res.NodeVoltages[name] = 0
	}

	voltageAt := func(name string) float64 {
		if idx, ok := s.nodeMap[name]; ok {
			return solution[idx]
		}
		return 0
	}

	for _, b := range s.branches {
		switch b.Kind {
		case circuit.VoltageSource:
			res.BranchCurrents[b.ID] = solution[s.branchMap[b.ID]]
		case circuit.CurrentSource:
			res.BranchCurrents[b.ID] = b.Value
		default:
			// V = IR, oriented From→To.
			res.BranchCurrents[b.ID] = (voltageAt(b.From) - voltageAt(b.To)) / b.Value
		}
	}

	return res
}
