package vault

import (
	"math"

	"github.com/soypat/vault/internal/d2"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// ArchConfig parametrizes the architectural vault built by [Arch].
// Amplitudes named *Amp are fractions of Height; falloffs and spans are
// fractions of Radius.
type ArchConfig struct {
	// Grid divisions along U and V. The grid has ResU+1 by ResV+1 samples.
	ResU int `toml:"res_u" yaml:"res_u"`
	ResV int `toml:"res_v" yaml:"res_v"`
	// Radius maps the parametric domain into world units.
	Radius float64 `toml:"radius" yaml:"radius"`
	// Height is the dome peak height.
	Height float64 `toml:"height" yaml:"height"`

	// Rhombus control.
	Shear  float64 `toml:"shear" yaml:"shear"`
	Angle  float64 `toml:"angle" yaml:"angle"` // degrees
	ScaleU float64 `toml:"scale_u" yaml:"scale_u"`
	ScaleV float64 `toml:"scale_v" yaml:"scale_v"`

	DomeFalloff float64 `toml:"dome_falloff" yaml:"dome_falloff"`

	// Catenary ribs.
	RibSpan    float64 `toml:"rib_span" yaml:"rib_span"`
	RibFalloff float64 `toml:"rib_falloff" yaml:"rib_falloff"`
	RibAmp     float64 `toml:"rib_amp" yaml:"rib_amp"`

	// TwistStrength is a fraction of Radius.
	TwistStrength float64 `toml:"twist_strength" yaml:"twist_strength"`
	TwistFreq     float64 `toml:"twist_freq" yaml:"twist_freq"`

	WaveAmp        float64 `toml:"wave_amp" yaml:"wave_amp"`
	WaveFreq       float64 `toml:"wave_freq" yaml:"wave_freq"`
	WaveMix        float64 `toml:"wave_mix" yaml:"wave_mix"`
	WaveDecayPower float64 `toml:"wave_decay_power" yaml:"wave_decay_power"`

	PetalFreq    float64 `toml:"petal_freq" yaml:"petal_freq"`
	PetalAmp     float64 `toml:"petal_amp" yaml:"petal_amp"`
	PetalFalloff float64 `toml:"petal_falloff" yaml:"petal_falloff"`
}

// DefaultArchConfig returns the dense, strongly deformed vault.
func DefaultArchConfig() ArchConfig {
	return ArchConfig{
		ResU:           64,
		ResV:           48,
		Radius:         16,
		Height:         7.5,
		Shear:          0.75,
		Angle:          28,
		ScaleU:         1,
		ScaleV:         1.35,
		DomeFalloff:    0.55,
		RibSpan:        0.8,
		RibFalloff:     0.75,
		RibAmp:         0.5,
		TwistStrength:  0.55,
		TwistFreq:      1.5,
		WaveAmp:        0.18,
		WaveFreq:       4.2,
		WaveMix:        0.7,
		WaveDecayPower: 1.2,
		PetalFreq:      10,
		PetalAmp:       0.12,
		PetalFalloff:   0.8,
	}
}

// Transform returns the affine map from the raw [-1,1]² parameter grid to
// world XY: axis scaling, then shear, then rotation, then Radius scaling.
func (cfg ArchConfig) Transform() d2.Transform {
	theta := cfg.Angle * math.Pi / 180
	return d2.ScaleXY(cfg.Radius, cfg.Radius).
		Mul(d2.Rotate(theta)).
		Mul(d2.ShearX(cfg.Shear)).
		Mul(d2.ScaleXY(cfg.ScaleU, cfg.ScaleV))
}

// Arch composes the architectural vault surface.
func Arch(cfg ArchConfig) Surface {
	u := Linspace(-1, 1, cfg.ResU+1)
	v := Linspace(-1, 1, cfg.ResV+1)
	U0, V0 := Meshgrid(u, v)
	X, Y := transformGrid(cfg.Transform(), U0, V0)
	// Wave term samples the axis scaled grid, before shear and rotation.
	var U, V mat.Dense
	U.Scale(cfg.ScaleU, U0)
	V.Scale(cfg.ScaleV, V0)

	h, R := cfg.Height, cfg.Radius
	Z := Sum(
		DomeTerm(X, Y, h, cfg.DomeFalloff*R),
		RibTerm(X, Y, cfg.RibSpan*R, cfg.RibFalloff*R, cfg.RibAmp*h),
		TwistTerm(X, Y, cfg.TwistStrength*R, cfg.TwistFreq),
		WaveTerm(&U, &V, X, Y, cfg.WaveAmp*h, cfg.WaveFreq, cfg.WaveMix, R, cfg.WaveDecayPower),
		PetalTerm(X, Y, cfg.PetalAmp*h, cfg.PetalFreq, cfg.PetalFalloff*R),
	)
	return Surface{X: X, Y: Y, Z: Z, U: u, V: v}
}

// DomeTerm is an isotropic Gaussian of peak height centered at the origin.
func DomeTerm(X, Y mat.Matrix, height, sigma float64) *mat.Dense {
	s2 := 2 * sigma * sigma
	return apply2(X, Y, func(x, y float64) float64 {
		return height * math.Exp(-(x*x+y*y)/s2)
	})
}

// Catenary returns a·(cosh(x/a) - 1) evaluated over X.
func Catenary(X mat.Matrix, a float64) *mat.Dense {
	var c mat.Dense
	c.Apply(func(_, _ int, x float64) float64 {
		return a * (math.Cosh(x/a) - 1)
	}, X)
	return &c
}

// RibTerm is a catenary ridge running along X, normalized to [0,1] over the
// whole grid and localized along Y by a Gaussian envelope.
func RibTerm(X, Y mat.Matrix, a, sigma, amp float64) *mat.Dense {
	cat := NormalizeMinMax(Catenary(X, a))
	s2 := 2 * sigma * sigma
	return apply2(cat, Y, func(c, y float64) float64 {
		return amp * c * math.Exp(-(y*y)/s2)
	})
}

// TwistTerm oscillates with the polar angle of each point regardless of its
// distance to the origin.
func TwistTerm(X, Y mat.Matrix, amp, freq float64) *mat.Dense {
	return apply2(X, Y, func(x, y float64) float64 {
		pol := d2.CartesianToPolar(r2.Vec{X: x, Y: y})
		return amp * math.Sin(freq*pol.Theta)
	})
}

// WaveTerm wrinkles the surface with a sinusoid over the parametric
// coordinates U+mix·V, damped by exp(-(r/radius)^power) where r is the
// world distance of (X, Y) to the origin.
func WaveTerm(U, V, X, Y mat.Matrix, amp, freq, mix, radius, power float64) *mat.Dense {
	var z mat.Dense
	z.Apply(func(i, j int, u float64) float64 {
		r := math.Hypot(X.At(i, j), Y.At(i, j))
		return amp * math.Sin(freq*(u+V.At(i, j)*mix)) * math.Exp(-math.Pow(r/radius, power))
	}, U)
	return &z
}

// PetalTerm is a cosine of the polar angle with freq lobes, damped by a
// Gaussian in world radius.
func PetalTerm(X, Y mat.Matrix, amp, freq, falloff float64) *mat.Dense {
	return apply2(X, Y, func(x, y float64) float64 {
		pol := d2.CartesianToPolar(r2.Vec{X: x, Y: y})
		rr := pol.R / falloff
		return amp * math.Cos(freq*pol.Theta) * math.Exp(-rr*rr)
	})
}
