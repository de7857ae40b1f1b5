package render

import (
	"io"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/vault"
)

var _ Renderer = (*SurfaceRenderer)(nil)

// SurfaceRenderer triangulates a structured surface grid. Every grid quad
// yields two triangles wound counter-clockwise when seen from +Z on a
// positively oriented grid.
type SurfaceRenderer struct {
	s          vault.Surface
	rows, cols int
	// next is the index of the next quad to triangulate.
	next      int
	unwritten triangleBuffer
}

// NewSurfaceRenderer returns a renderer streaming the triangles of s.
func NewSurfaceRenderer(s vault.Surface) *SurfaceRenderer {
	r, c := s.Dims()
	return &SurfaceRenderer{
		s:         s,
		rows:      r,
		cols:      c,
		unwritten: triangleBuffer{buf: make([]ms3.Triangle, 0, 1)},
	}
}

// NumTriangles returns the total number of triangles in the mesh.
func (sr *SurfaceRenderer) NumTriangles() int {
	return 2 * sr.quads()
}

func (sr *SurfaceRenderer) quads() int {
	if sr.rows < 2 || sr.cols < 2 {
		return 0
	}
	return (sr.rows - 1) * (sr.cols - 1)
}

// ReadTriangles writes triangles of the surface into dst.
func (sr *SurfaceRenderer) ReadTriangles(dst []ms3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if sr.unwritten.Len() > 0 {
		n += sr.unwritten.Read(dst)
	}
	nq := sr.quads()
	if sr.next >= nq && n == 0 {
		return 0, io.EOF
	}
	for n < len(dst) && sr.next < nq {
		t1, t2 := sr.quad(sr.next)
		sr.next++
		dst[n] = t1
		n++
		if n == len(dst) {
			sr.unwritten.Write([]ms3.Triangle{t2})
			break
		}
		dst[n] = t2
		n++
	}
	return n, nil
}

// quad returns the two triangles of quad k in row major order.
func (sr *SurfaceRenderer) quad(k int) (t1, t2 ms3.Triangle) {
	i, j := k/(sr.cols-1), k%(sr.cols-1)
	a := sr.vertex(i, j)
	b := sr.vertex(i, j+1)
	c := sr.vertex(i+1, j+1)
	d := sr.vertex(i+1, j)
	return ms3.Triangle{a, b, c}, ms3.Triangle{a, c, d}
}

func (sr *SurfaceRenderer) vertex(i, j int) ms3.Vec {
	return vec32(sr.s.X.At(i, j), sr.s.Y.At(i, j), sr.s.Z.At(i, j))
}

func vec32(x, y, z float64) ms3.Vec {
	return ms3.Vec{X: float32(x), Y: float32(y), Z: float32(z)}
}
