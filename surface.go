// Package vault composes parametric vault surfaces as the sum of closed
// form height terms sampled over a structured 2D grid.
//
// Two surfaces are provided. [Arch] builds an architectural vault over a
// sheared and rotated rhombic domain from dome, rib, twist, wave and petal
// terms. [Organic] builds a multi-peak surface over a square domain from a
// base undulation, randomly placed Gaussian peaks and a radial wave.
//
// Every term is a pure function of grid coordinates returning a new matrix,
// so surfaces can be taken apart and recombined with [Sum].
package vault

import (
	"math"

	"github.com/soypat/vault/internal/d3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon guards min-max normalization against zero spans.
const epsilon = 1e-9

// Surface is a height field sampled over a structured grid. X, Y and Z share
// dimensions: rows follow the second parametric axis (V) and columns the
// first (U). U and V hold the parametric samples along columns and rows.
type Surface struct {
	X, Y, Z *mat.Dense
	U, V    []float64
}

// Dims returns the number of rows and columns of the sampling grid.
func (s Surface) Dims() (rows, cols int) {
	return s.Z.Dims()
}

// Vertex returns the world position of grid sample (i, j).
func (s Surface) Vertex(i, j int) r3.Vec {
	return r3.Vec{X: s.X.At(i, j), Y: s.Y.At(i, j), Z: s.Z.At(i, j)}
}

// Bounds returns the axis aligned box containing all vertices.
func (s Surface) Bounds() r3.Box {
	bb := d3.EmptyBox()
	r, c := s.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			bb = bb.Include(s.Vertex(i, j))
		}
	}
	return r3.Box(bb)
}

// Finite reports whether every vertex coordinate is neither NaN nor infinite.
func (s Surface) Finite() bool {
	return finite(s.X) && finite(s.Y) && finite(s.Z)
}

func finite(m *mat.Dense) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Sum adds height terms elementwise into a new matrix. All terms must share
// dimensions.
func Sum(first mat.Matrix, rest ...mat.Matrix) *mat.Dense {
	z := mat.DenseCopyOf(first)
	for _, term := range rest {
		z.Add(z, term)
	}
	return z
}

// NormalizeMinMax maps the values of m onto [0, 1]. The span is guarded with a
// small epsilon so a constant field normalizes to zeros instead of NaN.
func NormalizeMinMax(m mat.Matrix) *mat.Dense {
	lo, hi := mat.Min(m), mat.Max(m)
	span := hi - lo + epsilon
	var n mat.Dense
	n.Apply(func(_, _ int, v float64) float64 {
		return (v - lo) / span
	}, m)
	return &n
}
