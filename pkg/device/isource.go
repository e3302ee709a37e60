package device

import (
	"fmt"

	"meshnodal/pkg/matrix"
)

// CurrentSource is an independent DC source driving Value amps from
// node1 to node2 through itself.
type CurrentSource struct {
	BaseDevice
}

func NewCurrentSource(name string, nodeNames []string, value float64) *CurrentSource {
	return &CurrentSource{
		BaseDevice: BaseDevice{
			Name:      name,
			Nodes:     make([]int, len(nodeNames)),
			NodeNames: nodeNames,
			Value:     value,
		},
	}
}

func (i *CurrentSource) GetType() string { return "I" }

func (i *CurrentSource) Stamp(m matrix.DeviceMatrix) error {
	if len(i.Nodes) != 2 {
		return fmt.Errorf("current source %s: requires exactly 2 nodes", i.Name)
	}

	n1, n2 := i.Nodes[0], i.Nodes[1]

	// The source pulls Value amps out of n1 and pushes them into n2.
	if n1 != 0 {
		m.AddRHS(n1, -i.Value)
	}
	if n2 != 0 {
		m.AddRHS(n2, i.Value)
	}

	return nil
}
