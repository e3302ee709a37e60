// Package netlist parses SPICE-flavored decks restricted to the
// elements the solver handles: resistors, DC voltage sources, and DC
// current sources.
package netlist

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"meshnodal/pkg/circuit"
)

type Element struct {
	Type  string   // R, V or I
	Name  string   // full element name, e.g. R1
	Nodes []string // node names, from then to
	Value float64
}

type Deck struct {
	Title    string
	Elements []Element
}

var unitMap = map[byte]float64{
	't': 1e12,
	'g': 1e9,
	'k': 1e3,
	'm': 1e-3,
	'u': 1e-6,
	'n': 1e-9,
	'p': 1e-12,
	'f': 1e-15,
}

// Parse reads a deck: first line is the title, "*" starts a comment,
// "+" continues the previous line, ".end" stops parsing. Any other
// dot directive is rejected.
func Parse(input string) (*Deck, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	deck := &Deck{}

	if scanner.Scan() {
		deck.Title = strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "*"))
	}

	var pending string
	flush := func() error {
		if pending == "" {
			return nil
		}
		err := parseLine(deck, pending)
		pending = ""
		return err
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || strings.HasPrefix(line, "*"):
			if err := flush(); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "+"):
			pending += " " + strings.TrimSpace(line[1:])
		default:
			if err := flush(); err != nil {
				return nil, err
			}
			pending = line
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return deck, nil
}

func parseLine(deck *Deck, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	if strings.HasPrefix(fields[0], ".") {
		directive := strings.ToLower(fields[0])
		switch directive {
		case ".end", ".op":
			return nil
		default:
			return fmt.Errorf("unsupported directive %s", fields[0])
		}
	}

	name := fields[0]
	elemType := strings.ToUpper(name[:1])
	switch elemType {
	case "R", "V", "I":
	default:
		return fmt.Errorf("unsupported element %s: only R, V and I are handled", name)
	}

	args := fields[1:]
	if len(args) >= 3 && strings.EqualFold(args[2], "dc") {
		// "V1 1 0 DC 10" form
		args = append(args[:2:2], args[3:]...)
	}
	if len(args) < 3 {
		return fmt.Errorf("element %s: want node node value, got %q", name, line)
	}

	value, err := ParseValue(args[2])
	if err != nil {
		return fmt.Errorf("element %s: %w", name, err)
	}

	deck.Elements = append(deck.Elements, Element{
		Type:  elemType,
		Name:  name,
		Nodes: []string{args[0], args[1]},
		Value: value,
	})
	return nil
}

// ParseValue reads a number with an optional engineering suffix
// (k, meg, m, u, n, p, f, t, g). Trailing unit text after the suffix
// ("10kohm") is ignored. The longest numeric prefix wins, so plain
// scientific notation ("1.5e3") passes through untouched.
func ParseValue(s string) (float64, error) {
	var base float64
	var err error
	cut := len(s)
	for ; cut > 0; cut-- {
		base, err = strconv.ParseFloat(s[:cut], 64)
		if err == nil {
			break
		}
	}
	if cut == 0 {
		return 0, fmt.Errorf("bad numeric value %q", s)
	}

	suffix := strings.ToLower(s[cut:])
	if suffix == "" {
		return base, nil
	}
	if strings.HasPrefix(suffix, "meg") {
		return base * 1e6, nil
	}
	if factor, ok := unitMap[suffix[0]]; ok {
		return base * factor, nil
	}
	return 0, fmt.Errorf("unknown unit suffix in %q", s)
}

// BuildCircuit materializes a deck into the graph model. Nodes are
// registered in first-seen order, so the reference resolution rules
// apply naturally ("0"/"GND" if present, else the first node).
func (d *Deck) BuildCircuit() (*circuit.Circuit, error) {
	ckt := circuit.New(d.Title)

	for _, elem := range d.Elements {
		for _, node := range elem.Nodes {
			if !ckt.HasNode(node) {
				if err := ckt.AddNode(node); err != nil {
					return nil, fmt.Errorf("adding node %s: %w", node, err)
				}
			}
		}

		var kind circuit.Kind
		switch elem.Type {
		case "V":
			kind = circuit.VoltageSource
		case "I":
			kind = circuit.CurrentSource
		default:
			kind = circuit.Resistor
		}
		if err := ckt.AddBranch(elem.Name, elem.Nodes[0], elem.Nodes[1], kind, elem.Value); err != nil {
			return nil, fmt.Errorf("adding element %s: %w", elem.Name, err)
		}
	}

	return ckt, nil
}
