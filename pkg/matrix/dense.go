package matrix

import (
	"errors"
	"fmt"
	"math"
)

// PivotEpsilon is the absolute magnitude below which a pivot is treated
// as zero during elimination.
const PivotEpsilon = 1e-12

// ErrSingular reports a system with no unique solution, typically a
// floating node, shorted voltage sources, or conflicting sources.
var ErrSingular = errors.New("matrix: singular system")

// Dense is a dense MNA system solved by Gaussian elimination with
// partial pivoting. Rows and columns are 1-based; stamps against
// index 0 (ground) are dropped.
type Dense struct {
	size int
	a    [][]float64
	rhs  []float64
}

func NewDense(size int) *Dense {
	a := make([][]float64, size)
	for i := range a {
		a[i] = make([]float64, size)
	}
	return &Dense{
		size: size,
		a:    a,
		rhs:  make([]float64, size),
	}
}

func (m *Dense) Size() int { return m.size }

func (m *Dense) AddElement(i, j int, value float64) {
	if i <= 0 || j <= 0 {
		return
	}
	if i > m.size || j > m.size {
		return
	}
	m.a[i-1][j-1] += value
}

func (m *Dense) AddRHS(i int, value float64) {
	if i <= 0 || i > m.size {
		return
	}
	m.rhs[i-1] += value
}

func (m *Dense) Clear() {
	for i := range m.a {
		for j := range m.a[i] {
			m.a[i][j] = 0
		}
		m.rhs[i] = 0
	}
}

// Solve runs Gaussian elimination with partial pivoting and back
// substitution. It either returns the full solution as a 1-based slice
// of length Size()+1, or ErrSingular; it never returns a partial
// vector. A pivot below PivotEpsilon or any non-finite intermediate
// yields ErrSingular.
func (m *Dense) Solve() ([]float64, error) {
	n := m.size

	// Work on copies so a failed solve leaves the stamps untouched and
	// the same system can be inspected or re-solved.
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		copy(a[i], m.a[i])
	}
	b := make([]float64, n)
	copy(b, m.rhs)

	x, err := eliminate(a, b)
	if err != nil {
		return nil, err
	}

	solution := make([]float64, n+1)
	copy(solution[1:], x)
	return solution, nil
}

func eliminate(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)

	for k := 0; k < n; k++ {
		// Partial pivoting: largest magnitude in column k at or below row k.
		pivotRow := k
		pivotMag := math.Abs(a[k][k])
		for r := k + 1; r < n; r++ {
			if mag := math.Abs(a[r][k]); mag > pivotMag {
				pivotRow = r
				pivotMag = mag
			}
		}
		if pivotMag < PivotEpsilon || math.IsNaN(pivotMag) {
			return nil, fmt.Errorf("pivot %d magnitude %g: %w", k+1, pivotMag, ErrSingular)
		}
		if pivotRow != k {
			a[k], a[pivotRow] = a[pivotRow], a[k]
			b[k], b[pivotRow] = b[pivotRow], b[k]
		}

		for r := k + 1; r < n; r++ {
			factor := a[r][k] / a[k][k]
			if factor == 0 {
				continue
			}
			if !isFinite(factor) {
				return nil, fmt.Errorf("elimination at row %d: %w", r+1, ErrSingular)
			}
			a[r][k] = 0
			for c := k + 1; c < n; c++ {
				a[r][c] -= factor * a[k][c]
			}
			b[r] -= factor * b[k]
		}
	}

	x := make([]float64, n)
	for k := n - 1; k >= 0; k-- {
		sum := b[k]
		for c := k + 1; c < n; c++ {
			sum -= a[k][c] * x[c]
		}
		x[k] = sum / a[k][k]
		if !isFinite(x[k]) {
			return nil, fmt.Errorf("back substitution at row %d: %w", k+1, ErrSingular)
		}
	}
	return x, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
