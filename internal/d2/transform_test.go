package d2

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestTransformCompose(t *testing.T) {
	const tol = 1e-12
	theta := 28 * math.Pi / 180
	T := Rotate(theta).Mul(ShearX(0.75)).Mul(ScaleXY(1, 1.35))
	for _, p := range []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: -1, Y: 0.5}, {X: 0.3, Y: -0.9}} {
		// step by step, as the vault grid is built.
		u, v := p.X*1, p.Y*1.35
		us, vs := u+0.75*v, v
		s, c := math.Sincos(theta)
		want := r2.Vec{X: c*us - s*vs, Y: s*us + c*vs}
		got := T.ApplyPos(p)
		if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol {
			t.Errorf("transform %v: got %v, want %v", p, got, want)
		}
	}
}

func TestIdentity(t *testing.T) {
	p := r2.Vec{X: 3, Y: -2}
	if got := identityT.ApplyPos(p); got != p {
		t.Errorf("identity moved point: %v", got)
	}
	if got := identityT.Mul(ScaleXY(2, 3)).ApplyPos(p); got != (r2.Vec{X: 6, Y: -6}) {
		t.Errorf("scale got %v", got)
	}
	pol := CartesianToPolar(r2.Vec{X: 0, Y: 2})
	if math.Abs(pol.Theta-math.Pi/2) > 1e-12 || pol.R != 2 {
		t.Errorf("polar got %+v", pol)
	}
}
