package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestProbeNearest(t *testing.T) {
	cfg := DefaultArchConfig()
	cfg.ResU, cfg.ResV = 16, 12
	s := Arch(cfg)
	pb := NewProbe(s)
	r, c := s.Dims()
	for _, ij := range [][2]int{{0, 0}, {r - 1, c - 1}, {r / 2, c / 3}, {3, 7}} {
		p := r2.Vec{X: s.X.At(ij[0], ij[1]), Y: s.Y.At(ij[0], ij[1])}
		i, j, d := pb.Nearest(p)
		assert.Equal(t, ij, [2]int{i, j})
		assert.Equal(t, 0.0, d)
		assert.Equal(t, s.Z.At(ij[0], ij[1]), pb.HeightAt(p))
	}
}

func TestProbePeakSummit(t *testing.T) {
	cfg := DefaultOrganicConfig()
	cfg.ResX, cfg.ResY = 81, 81
	peaks := []Peak{{Center: r2.Vec{X: 2.5, Y: -5}, Radius: 2}}
	s := OrganicWithPeaks(cfg, peaks)
	pb := NewProbe(s)
	// Grid spacing is 0.25 so the peak center is sampled exactly.
	i, j, d := pb.Nearest(peaks[0].Center)
	assert.InDelta(t, 0, d, 1e-9)
	assert.InDelta(t, 2.5, s.X.At(i, j), 1e-9)
	assert.InDelta(t, -5, s.Y.At(i, j), 1e-9)
}
