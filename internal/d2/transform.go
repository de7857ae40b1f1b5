package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Transform represents a 2D affine transformation stored as a
// 3x3 homogeneous matrix in row major order.
type Transform struct {
	data [3 * 3]float64 // stack stronk
}

var identityT = Transform{data: [9]float64{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}}

func NewTransform(data []float64) Transform {
	if data == nil {
		return identityT
	}
	if len(data) != 9 {
		panic("bad length")
	}
	t := Transform{}
	copy(t.data[:], data)
	return t
}

// ScaleXY returns a transform scaling the x and y axes independently.
func ScaleXY(sx, sy float64) Transform {
	return NewTransform([]float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	})
}

// ShearX returns a transform that offsets x by k times y.
//  x' = x + k*y
//  y' = y
func ShearX(k float64) Transform {
	return NewTransform([]float64{
		1, k, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// Rotate returns a counter-clockwise rotation by theta radians about the origin.
func Rotate(theta float64) Transform {
	s, c := math.Sincos(theta)
	return NewTransform([]float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

func (t *Transform) At(i, j int) float64 {
	return t.data[i*3+j]
}

func (t *Transform) Set(i, j int, v float64) {
	t.data[i*3+j] = v
}

func (t Transform) isIdentity() bool {
	return t == identityT
}

// Mul multiplies 3x3 matrices. The resulting transform applies b first, then a.
func (a Transform) Mul(b Transform) Transform {
	m := Transform{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, a.At(i, 0)*b.At(0, j)+a.At(i, 1)*b.At(1, j)+a.At(i, 2)*b.At(2, j))
		}
	}
	return m
}

// ApplyPos transforms a position.
func (t Transform) ApplyPos(b r2.Vec) r2.Vec {
	if t.isIdentity() {
		return b
	}
	return r2.Vec{
		X: t.At(0, 0)*b.X + t.At(0, 1)*b.Y + t.At(0, 2),
		Y: t.At(1, 0)*b.X + t.At(1, 1)*b.Y + t.At(1, 2),
	}
}
