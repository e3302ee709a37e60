// Package device implements the stampable circuit elements. Each
// device knows how to load its own contribution into the MNA system;
// the assembler only walks the device list.
package device

import (
	"meshnodal/pkg/matrix"
)

type Device interface {
	GetName() string
	GetType() string
	GetNodeNames() []string
	GetNodes() []int
	GetValue() float64
	SetNodes(nodes []int)
	Stamp(m matrix.DeviceMatrix) error
}

// BaseDevice carries the fields shared by every element. Nodes holds
// 1-based matrix indices with 0 meaning ground.
type BaseDevice struct {
	Name      string
	Nodes     []int
	Value     float64
	NodeNames []string
}

func (d *BaseDevice) GetName() string { return d.Name }

func (d *BaseDevice) GetNodes() []int { return d.Nodes }

func (d *BaseDevice) GetNodeNames() []string { return d.NodeNames }

func (d *BaseDevice) GetValue() float64 { return d.Value }

func (d *BaseDevice) SetNodes(nodes []int) { d.Nodes = nodes }
