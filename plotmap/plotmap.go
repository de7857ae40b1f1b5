// Package plotmap draws top-down height maps of vault surfaces as a heat map
// overlaid with contour lines.
package plotmap

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/soypat/vault"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Options configures the height map.
type Options struct {
	Title          string
	XLabel, YLabel string
	// Number of heat map colors.
	Colors int
	// Number of contour levels between the height extremes. Zero disables
	// contours.
	Levels       int
	ContourColor color.Color
	// Size of the saved image.
	Width, Height vg.Length
}

// DefaultOptions returns a 6x6 inch map with 64 colors and 12 contour levels.
func DefaultOptions() Options {
	return Options{
		XLabel:       "u",
		YLabel:       "v",
		Colors:       64,
		Levels:       12,
		ContourColor: color.Gray{Y: 40},
		Width:        6 * vg.Inch,
		Height:       6 * vg.Inch,
	}
}

// New builds the height map plot of s over its parametric axes.
func New(s vault.Surface, opts Options) (*plot.Plot, error) {
	g, err := newGrid(s)
	if err != nil {
		return nil, err
	}
	if opts.Colors < 2 {
		return nil, fmt.Errorf("need at least 2 colors, got %d", opts.Colors)
	}
	lo, hi := mat.Min(s.Z), mat.Max(s.Z)
	flat := hi-lo <= 0

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	heat := plotter.NewHeatMap(g, palette.Heat(opts.Colors, 1))
	if flat {
		// A zero span would divide by zero when picking colors.
		heat.Min, heat.Max = lo, lo+1
	}
	p.Add(heat)

	if opts.Levels > 0 && !flat {
		levels := contourLevels(lo, hi, opts.Levels)
		c := plotter.NewContour(g, levels, monochrome{opts.ContourColor})
		p.Add(c)
	}
	return p, nil
}

// Save writes the height map of s to path. The image format follows the
// file extension.
func Save(path string, s vault.Surface, opts Options) error {
	p, err := New(s, opts)
	if err != nil {
		return err
	}
	return p.Save(opts.Width, opts.Height, path)
}

// contourLevels returns n levels strictly inside (lo, hi).
func contourLevels(lo, hi float64, n int) []float64 {
	levels := floats.Span(make([]float64, n+2), lo, hi)
	return levels[1 : n+1]
}

// grid adapts a Surface to plotter.GridXYZ. Columns follow U, rows follow V.
type grid struct {
	z    mat.Matrix
	u, v []float64
}

func newGrid(s vault.Surface) (grid, error) {
	r, c := s.Dims()
	if r < 2 || c < 2 {
		return grid{}, errors.New("height map needs at least a 2x2 grid")
	}
	if len(s.U) != c || len(s.V) != r {
		return grid{}, fmt.Errorf("axis samples %dx%d do not match grid %dx%d", len(s.V), len(s.U), r, c)
	}
	return grid{z: s.Z, u: s.U, v: s.V}, nil
}

func (g grid) Dims() (c, r int) {
	r, c = g.z.Dims()
	return c, r
}

func (g grid) Z(c, r int) float64 { return g.z.At(r, c) }
func (g grid) X(c int) float64    { return g.u[c] }
func (g grid) Y(r int) float64    { return g.v[r] }

// monochrome is a single color palette.
type monochrome struct{ c color.Color }

func (m monochrome) Colors() []color.Color { return []color.Color{m.c} }
