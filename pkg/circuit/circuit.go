// Package circuit holds the in-memory model of a resistive network:
// nodes and two-terminal branches (resistors, voltage sources, current
// sources). Nodes and branches live in flat arenas referenced by stable
// integer handles; string ids are resolved through boundary maps, so
// lookups never scan.
package circuit

import "fmt"

// Kind tags a branch with its element type.
type Kind int

const (
	Resistor Kind = iota
	VoltageSource
	CurrentSource
)

func (k Kind) String() string {
	switch k {
	case Resistor:
		return "R"
	case VoltageSource:
		return "V"
	case CurrentSource:
		return "I"
	default:
		return "?"
	}
}

// Branch is the external view of one circuit element. Direction
// matters: From→To fixes the sign convention for the element's voltage
// and current. Value is ohms, volts, or amps depending on Kind; a
// voltage source of value E asserts V(From) - V(To) = E.
type Branch struct {
	ID    string
	From  string
	To    string
	Kind  Kind
	Value float64
}

type nodeRec struct {
	id      string
	removed bool
}

type branchRec struct {
	id       string
	from, to int // node handles
	kind     Kind
	value    float64
	removed  bool
}

// Circuit is the mutable graph model. It is not safe for concurrent
// mutation; callers serialize edits.
type Circuit struct {
	name        string
	nodes       []nodeRec
	branches    []branchRec
	nodeIndex   map[string]int
	branchIndex map[string]int
}

func New(name string) *Circuit {
	return &Circuit{
		name:        name,
		nodeIndex:   make(map[string]int),
		branchIndex: make(map[string]int),
	}
}

func (c *Circuit) Name() string { return c.name }

// AddNode registers a new node id. Fails with ErrDuplicateID if the id
// is already present.
func (c *Circuit) AddNode(id string) error {
	if _, exists := c.nodeIndex[id]; exists {
		return fmt.Errorf("node %q: %w", id, ErrDuplicateID)
	}
	c.nodes = append(c.nodes, nodeRec{id: id})
	c.nodeIndex[id] = len(c.nodes) - 1
	return nil
}

// RemoveNode deletes a node and, as a documented side effect, every
// branch incident to it.
func (c *Circuit) RemoveNode(id string) error {
	h, exists := c.nodeIndex[id]
	if !exists {
		return fmt.Errorf("node %q: %w", id, ErrUnknownNode)
	}
	for i := range c.branches {
		b := &c.branches[i]
		if b.removed {
			continue
		}
		if b.from == h || b.to == h {
			b.removed = true
			delete(c.branchIndex, b.id)
		}
	}
	c.nodes[h].removed = true
	delete(c.nodeIndex, id)
	return nil
}

// AddBranch registers a new element between two existing nodes.
// Self-loops (from == to) are legal; the solver treats them as inert
// for nodal analysis but they still contribute a fundamental cycle.
// Value validity is checked at solve time, not here, so a live editor
// can hold a half-typed element in the model.
func (c *Circuit) AddBranch(id, from, to string, kind Kind, value float64) error {
	if _, exists := c.branchIndex[id]; exists {
		return fmt.Errorf("branch %q: %w", id, ErrDuplicateID)
	}
	fh, ok := c.nodeIndex[from]
	if !ok {
		return fmt.Errorf("branch %q from %q: %w", id, from, ErrDanglingReference)
	}
	th, ok := c.nodeIndex[to]
	if !ok {
		return fmt.Errorf("branch %q to %q: %w", id, to, ErrDanglingReference)
	}
	c.branches = append(c.branches, branchRec{id: id, from: fh, to: th, kind: kind, value: value})
	c.branchIndex[id] = len(c.branches) - 1
	return nil
}

func (c *Circuit) RemoveBranch(id string) error {
	h, exists := c.branchIndex[id]
	if !exists {
		return fmt.Errorf("branch %q: %w", id, ErrUnknownBranch)
	}
	c.branches[h].removed = true
	delete(c.branchIndex, id)
	return nil
}

// UpdateBranch changes an element's value in place. Endpoint or kind
// changes are remove-and-add.
func (c *Circuit) UpdateBranch(id string, value float64) error {
	h, exists := c.branchIndex[id]
	if !exists {
		return fmt.Errorf("branch %q: %w", id, ErrUnknownBranch)
	}
	c.branches[h].value = value
	return nil
}

// Nodes returns the live node ids in insertion order.
func (c *Circuit) Nodes() []string {
	ids := make([]string, 0, len(c.nodeIndex))
	for _, n := range c.nodes {
		if !n.removed {
			ids = append(ids, n.id)
		}
	}
	return ids
}

// Branches returns the live branches in insertion order.
func (c *Circuit) Branches() []Branch {
	out := make([]Branch, 0, len(c.branchIndex))
	for _, b := range c.branches {
		if b.removed {
			continue
		}
		out = append(out, Branch{
			ID:    b.id,
			From:  c.nodes[b.from].id,
			To:    c.nodes[b.to].id,
			Kind:  b.kind,
			Value: b.value,
		})
	}
	return out
}

// HasNode reports whether a node id is live.
func (c *Circuit) HasNode(id string) bool {
	_, ok := c.nodeIndex[id]
	return ok
}

// Reference resolves the 0V reference node: a node literally named
// "0", "GND" or "gnd" wins, otherwise the first node in insertion
// order. Returns "" for an empty circuit.
func (c *Circuit) Reference() string {
	for _, ground := range []string{"0", "GND", "gnd"} {
		if _, ok := c.nodeIndex[ground]; ok {
			return ground
		}
	}
	for _, n := range c.nodes {
		if !n.removed {
			return n.id
		}
	}
	return ""
}
