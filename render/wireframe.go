package render

import (
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/vault"
)

// Segment is a straight edge between two vertices.
type Segment [2]ms3.Vec

// Wireframe returns the grid lines of s along every rowStride-th row and every
// colStride-th column. The last row and column are always included so the
// mesh outline is closed. Strides below 1 are treated as 1.
func Wireframe(s vault.Surface, rowStride, colStride int) []Segment {
	r, c := s.Dims()
	rowIdx := strided(r, rowStride)
	colIdx := strided(c, colStride)
	segs := make([]Segment, 0, len(rowIdx)*(c-1)+len(colIdx)*(r-1))
	v := func(i, j int) ms3.Vec {
		return vec32(s.X.At(i, j), s.Y.At(i, j), s.Z.At(i, j))
	}
	for _, i := range rowIdx {
		for j := 0; j < c-1; j++ {
			segs = append(segs, Segment{v(i, j), v(i, j+1)})
		}
	}
	for _, j := range colIdx {
		for i := 0; i < r-1; i++ {
			segs = append(segs, Segment{v(i, j), v(i+1, j)})
		}
	}
	return segs
}

func strided(n, stride int) []int {
	if stride < 1 {
		stride = 1
	}
	idx := make([]int, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		idx = append(idx, i)
	}
	if n > 0 && idx[len(idx)-1] != n-1 {
		idx = append(idx, n-1)
	}
	return idx
}
