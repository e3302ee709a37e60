package device

import (
	"fmt"

	"meshnodal/pkg/matrix"
)

// VoltageSource is an independent DC source asserting
// V(node1) - V(node2) = Value. Its branch current is an extra MNA
// unknown at branchIdx; the stamp orientation makes that unknown the
// current flowing node1→node2 through the source.
type VoltageSource struct {
	BaseDevice
	branchIdx int
}

func NewVoltageSource(name string, nodeNames []string, value float64) *VoltageSource {
	return &VoltageSource{
		BaseDevice: BaseDevice{
			Name:      name,
			Nodes:     make([]int, len(nodeNames)),
			NodeNames: nodeNames,
			Value:     value,
		},
	}
}

func (v *VoltageSource) GetType() string { return "V" }

func (v *VoltageSource) SetBranchIndex(idx int) { v.branchIdx = idx }

func (v *VoltageSource) BranchIndex() int { return v.branchIdx }

func (v *VoltageSource) Stamp(m matrix.DeviceMatrix) error {
	if len(v.Nodes) != 2 {
		return fmt.Errorf("voltage source %s: requires exactly 2 nodes", v.Name)
	}
	if v.branchIdx == 0 {
		return fmt.Errorf("voltage source %s: branch index not assigned", v.Name)
	}

	n1, n2 := v.Nodes[0], v.Nodes[1]

	// Incidence block and its transpose.
	if n1 != 0 {
		m.AddElement(n1, v.branchIdx, 1)
		m.AddElement(v.branchIdx, n1, 1)
	}
	if n2 != 0 {
		m.AddElement(n2, v.branchIdx, -1)
		m.AddElement(v.branchIdx, n2, -1)
	}
	m.AddRHS(v.branchIdx, v.Value)

	return nil
}
