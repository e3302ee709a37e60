package analysis

import (
	"fmt"

	"meshnodal/pkg/circuit"
)

// Sweep steps one independent source through a value range, running a
// full static solve at every point. Results are stored as aligned
// series under "SWEEP1" plus the usual V(...)/I(...) keys.
type Sweep struct {
	BaseAnalysis
	backend    Backend
	sourceName string
	start      float64
	stop       float64
	increment  float64
	origValue  float64
}

func NewSweep(source string, start, stop, increment float64) *Sweep {
	return &Sweep{
		BaseAnalysis: *NewBaseAnalysis(),
		sourceName:   source,
		start:        start,
		stop:         stop,
		increment:    increment,
	}
}

func (s *Sweep) Setup(ckt *circuit.Circuit) error {
	if s.increment <= 0 {
		return fmt.Errorf("sweep increment must be positive, got %g", s.increment)
	}
	found := false
	for _, b := range ckt.Branches() {
		if b.ID != s.sourceName {
			continue
		}
		if b.Kind == circuit.Resistor {
			return fmt.Errorf("sweep source %s is not an independent source", s.sourceName)
		}
		s.origValue = b.Value
		found = true
		break
	}
	if !found {
		return fmt.Errorf("sweep source %s not found", s.sourceName)
	}
	s.Circuit = ckt
	return nil
}

func (s *Sweep) Execute() error {
	ckt := s.Circuit

	// The model is mutated step by step and restored afterwards, even
	// when a step fails.
	defer func() {
		_ = ckt.UpdateBranch(s.sourceName, s.origValue)
	}()

	for v := s.start; v <= s.stop+s.increment/2; v += s.increment {
		if err := ckt.UpdateBranch(s.sourceName, v); err != nil {
			return err
		}
		res, err := solveNodal(ckt, s.backend)
		if err != nil {
			return fmt.Errorf("sweep point %s=%g: %w", s.sourceName, v, err)
		}
		point := resultPoint(res)
		point["SWEEP1"] = v
		s.storeResult(point)
	}

	return nil
}
