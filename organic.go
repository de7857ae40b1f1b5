package vault

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distuv"
)

// OrganicConfig parametrizes the multi-peak surface built by [Organic].
type OrganicConfig struct {
	// Samples along X and Y.
	ResX int `toml:"res_x" yaml:"res_x"`
	ResY int `toml:"res_y" yaml:"res_y"`
	// Size is the half extent of the square domain [-Size, Size]².
	Size float64 `toml:"size" yaml:"size"`

	// Base undulation:
	//  BaseHeight·(sin(BaseFreq·x)·cos(BaseFreq·y) + CrossAmp·sin(CrossFreqX·x + CrossFreqY·y))
	BaseHeight float64 `toml:"base_height" yaml:"base_height"`
	BaseFreq   float64 `toml:"base_freq" yaml:"base_freq"`
	CrossAmp   float64 `toml:"cross_amp" yaml:"cross_amp"`
	CrossFreqX float64 `toml:"cross_freq_x" yaml:"cross_freq_x"`
	CrossFreqY float64 `toml:"cross_freq_y" yaml:"cross_freq_y"`

	PeakHeight float64 `toml:"peak_height" yaml:"peak_height"`
	NumPeaks   int     `toml:"num_peaks" yaml:"num_peaks"`
	// PeakSpread bounds peak centers to [-PeakSpread·Size, PeakSpread·Size)².
	PeakSpread    float64 `toml:"peak_spread" yaml:"peak_spread"`
	PeakRadiusMin float64 `toml:"peak_radius_min" yaml:"peak_radius_min"`
	PeakRadiusMax float64 `toml:"peak_radius_max" yaml:"peak_radius_max"`

	// Radial wave, undamped out to the domain edge.
	WaveAmp  float64 `toml:"wave_amp" yaml:"wave_amp"`
	WaveFreq float64 `toml:"wave_freq" yaml:"wave_freq"`

	Seed uint64 `toml:"seed" yaml:"seed"`
}

// DefaultOrganicConfig returns a six peak surface with strong ripples.
func DefaultOrganicConfig() OrganicConfig {
	return OrganicConfig{
		ResX:          120,
		ResY:          120,
		Size:          10,
		BaseHeight:    0.5,
		BaseFreq:      0.25,
		CrossAmp:      0.3,
		CrossFreqX:    0.45,
		CrossFreqY:    1.2,
		PeakHeight:    3,
		NumPeaks:      6,
		PeakSpread:    0.7,
		PeakRadiusMin: 1.8,
		PeakRadiusMax: 3.5,
		WaveAmp:       0.8,
		WaveFreq:      5,
		Seed:          3,
	}
}

// Source returns a new random source seeded with cfg.Seed.
func (cfg OrganicConfig) Source() rand.Source {
	return rand.NewSource(cfg.Seed)
}

// Peak is a Gaussian bump location and falloff radius.
type Peak struct {
	Center r2.Vec
	Radius float64
}

// Peaks draws cfg.NumPeaks peaks from src. Each peak consumes three uniform
// draws in order: center x, center y, radius.
func Peaks(cfg OrganicConfig, src rand.Source) []Peak {
	if cfg.NumPeaks <= 0 {
		return nil
	}
	span := cfg.PeakSpread * cfg.Size
	pos := distuv.Uniform{Min: -span, Max: span, Src: src}
	rad := distuv.Uniform{Min: cfg.PeakRadiusMin, Max: cfg.PeakRadiusMax, Src: src}
	peaks := make([]Peak, cfg.NumPeaks)
	for i := range peaks {
		px := pos.Rand()
		py := pos.Rand()
		pr := rad.Rand()
		peaks[i] = Peak{Center: r2.Vec{X: px, Y: py}, Radius: pr}
	}
	return peaks
}

// Organic composes the multi-peak surface drawing peak placement from src.
func Organic(cfg OrganicConfig, src rand.Source) Surface {
	return OrganicWithPeaks(cfg, Peaks(cfg, src))
}

// OrganicWithPeaks composes the multi-peak surface over an already drawn
// peak list.
func OrganicWithPeaks(cfg OrganicConfig, peaks []Peak) Surface {
	x := Linspace(-cfg.Size, cfg.Size, cfg.ResX)
	y := Linspace(-cfg.Size, cfg.Size, cfg.ResY)
	X, Y := Meshgrid(x, y)
	terms := make([]mat.Matrix, 0, len(peaks)+1)
	for _, p := range peaks {
		terms = append(terms, PeakTerm(X, Y, p, cfg.PeakHeight))
	}
	terms = append(terms, RadialWaveTerm(X, Y, cfg.WaveAmp, cfg.WaveFreq))
	Z := Sum(BaseTerm(X, Y, cfg), terms...)
	return Surface{X: X, Y: Y, Z: Z, U: x, V: y}
}

// BaseTerm is the low frequency undulation under the peaks.
func BaseTerm(X, Y mat.Matrix, cfg OrganicConfig) *mat.Dense {
	f := cfg.BaseFreq
	return apply2(X, Y, func(x, y float64) float64 {
		return cfg.BaseHeight * (math.Sin(f*x)*math.Cos(f*y) +
			cfg.CrossAmp*math.Sin(cfg.CrossFreqX*x+cfg.CrossFreqY*y))
	})
}

// PeakTerm is an isotropic Gaussian bump of the given height centered on p.
func PeakTerm(X, Y mat.Matrix, p Peak, height float64) *mat.Dense {
	s2 := 2 * p.Radius * p.Radius
	return apply2(X, Y, func(x, y float64) float64 {
		dx, dy := x-p.Center.X, y-p.Center.Y
		return height * math.Exp(-(dx*dx+dy*dy)/s2)
	})
}

// RadialWaveTerm ripples outward from the origin with no decay envelope.
func RadialWaveTerm(X, Y mat.Matrix, amp, freq float64) *mat.Dense {
	return apply2(X, Y, func(x, y float64) float64 {
		return amp * math.Sin(freq*math.Hypot(x, y))
	})
}
