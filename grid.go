package vault

import (
	"github.com/soypat/vault/internal/d2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Linspace returns n evenly spaced samples over the closed interval [lo, hi].
// n is raised to 1 when smaller; a single sample lies at lo.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Meshgrid returns coordinate matrices for the axis samples u and v.
// Row i and column j hold (u[j], v[i]).
func Meshgrid(u, v []float64) (U, V *mat.Dense) {
	U = mat.NewDense(len(v), len(u), nil)
	V = mat.NewDense(len(v), len(u), nil)
	for i := range v {
		for j := range u {
			U.Set(i, j, u[j])
			V.Set(i, j, v[i])
		}
	}
	return U, V
}

// transformGrid applies an affine transform to every (U, V) grid point.
func transformGrid(t d2.Transform, U, V mat.Matrix) (X, Y *mat.Dense) {
	r, c := U.Dims()
	if vr, vc := V.Dims(); vr != r || vc != c {
		panic("mismatched grid dimensions")
	}
	X = mat.NewDense(r, c, nil)
	Y = mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			p := t.ApplyPos(r2.Vec{X: U.At(i, j), Y: V.At(i, j)})
			X.Set(i, j, p.X)
			Y.Set(i, j, p.Y)
		}
	}
	return X, Y
}

// apply2 evaluates fn at every (x, y) pair of two equally shaped matrices.
func apply2(X, Y mat.Matrix, fn func(x, y float64) float64) *mat.Dense {
	var z mat.Dense
	z.Apply(func(i, j int, x float64) float64 {
		return fn(x, Y.At(i, j))
	}, X)
	return &z
}
