package vault

import (
	"math"
	"testing"

	"github.com/soypat/vault/internal/d3"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSurfaceBounds(t *testing.T) {
	s := Arch(DefaultArchConfig())
	bb := s.Bounds()
	rows, cols := s.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := s.Vertex(i, j)
			if v != d3.MaxElem(bb.Min, v) || v != d3.MinElem(bb.Max, v) {
				t.Fatalf("vertex (%d,%d) outside bounds %+v", i, j, bb)
			}
		}
	}
	size := r3.Sub(bb.Max, bb.Min)
	assert.Greater(t, size.X, 0.)
	assert.Greater(t, size.Y, 0.)
	assert.Greater(t, size.Z, 0.)
}

func TestSurfaceBoundsFlat(t *testing.T) {
	u := Linspace(-2, 2, 5)
	X, Y := Meshgrid(u, u)
	s := Surface{X: X, Y: Y, Z: mat.NewDense(5, 5, nil), U: u, V: u}
	bb := s.Bounds()
	want := r3.Box{Min: r3.Vec{X: -2, Y: -2}, Max: r3.Vec{X: 2, Y: 2}}
	assert.Equal(t, want, bb)
}

func TestSurfaceFinite(t *testing.T) {
	s := Arch(DefaultArchConfig())
	assert.True(t, s.Finite())
	s.Z.Set(0, 0, math.NaN())
	assert.False(t, s.Finite())
	s.Z.Set(0, 0, math.Inf(-1))
	assert.False(t, s.Finite())
}

func TestSum(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{10, 20, 30, 40})
	got := Sum(a, b, b)
	assert.True(t, mat.Equal(got, mat.NewDense(2, 2, []float64{21, 42, 63, 84})))
	// first term untouched
	assert.Equal(t, 1., a.At(0, 0))
}
