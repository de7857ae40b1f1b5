package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type Pol struct {
	R, Theta float64
}

// CartesianToPolar converts a cartesian to a polar coordinate.
// Theta lies in [-pi, pi] as given by math.Atan2.
func CartesianToPolar(a r2.Vec) Pol {
	return Pol{R: math.Hypot(a.X, a.Y), Theta: math.Atan2(a.Y, a.X)}
}
