package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// Sparse wraps a sparse-LU factorization backend behind the same
// stamping surface as Dense. It pays off on larger systems where the
// MNA matrix is mostly zeros; results must agree with Dense within
// floating-point noise.
type Sparse struct {
	size        int
	matrix      *sparse.Matrix
	rhs         []float64
	initialized bool
}

func NewSparse(size int) (*Sparse, error) {
	config := &sparse.Configuration{
		Real:           true,
		Complex:        false,
		Expandable:     true,
		Translate:      false,
		ModifiedNodal:  true,
		TiesMultiplier: 5,
		PrinterWidth:   140,
		Annotate:       0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %w", err)
	}

	return &Sparse{
		size:   size,
		matrix: mat,
		rhs:    make([]float64, size+1), // 1-based indexing
	}, nil
}

func (m *Sparse) Size() int { return m.size }

func (m *Sparse) AddElement(i, j int, value float64) {
	if i <= 0 || j <= 0 || i > m.size || j > m.size {
		return
	}
	m.matrix.GetElement(int64(i), int64(j)).Real += value
}

func (m *Sparse) AddRHS(i int, value float64) {
	if i <= 0 || i > m.size {
		return
	}
	m.rhs[i] += value
}

func (m *Sparse) Clear() {
	m.matrix.Clear()
	for i := range m.rhs {
		m.rhs[i] = 0
	}
}

// Solve factors and solves the stamped system. Failures from the
// factorization (zero or near-zero pivots) and non-finite entries in
// the returned vector are both reported as ErrSingular so callers see
// the same two-outcome contract as Dense.Solve.
func (m *Sparse) Solve() ([]float64, error) {
	if !m.initialized {
		// Touch every position once so the factorization never has to
		// grow fill-in storage mid-elimination.
		for i := 1; i <= m.size; i++ {
			for j := 1; j <= m.size; j++ {
				m.matrix.GetElement(int64(i), int64(j))
			}
		}
		m.initialized = true
	}

	if err := m.matrix.Factor(); err != nil {
		return nil, fmt.Errorf("factorization failed (%v): %w", err, ErrSingular)
	}

	solution, err := m.matrix.Solve(m.rhs)
	if err != nil {
		return nil, fmt.Errorf("solve failed (%v): %w", err, ErrSingular)
	}
	for i := 1; i <= m.size && i < len(solution); i++ {
		if !isFinite(solution[i]) {
			return nil, fmt.Errorf("non-finite solution entry %d: %w", i, ErrSingular)
		}
	}

	return solution, nil
}

func (m *Sparse) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}
