package vault

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	_ kdtree.Interface  = kdVertices{}
	_ kdtree.Comparable = kdVertex{}
)

// Probe finds surface samples nearest to a point in the XY plane.
type Probe struct {
	s    Surface
	tree *kdtree.Tree
}

// NewProbe indexes the XY positions of every vertex of s.
func NewProbe(s Surface) *Probe {
	r, c := s.Dims()
	verts := make(kdVertices, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			verts = append(verts, kdVertex{
				p: r2.Vec{X: s.X.At(i, j), Y: s.Y.At(i, j)},
				i: i,
				j: j,
			})
		}
	}
	return &Probe{s: s, tree: kdtree.New(verts, false)}
}

// Nearest returns the grid indices of the vertex closest to p in the XY
// plane and its distance to p.
func (pb *Probe) Nearest(p r2.Vec) (i, j int, dist float64) {
	got, d2 := pb.tree.Nearest(kdVertex{p: p})
	v := got.(kdVertex)
	return v.i, v.j, math.Sqrt(d2)
}

// HeightAt returns the height of the vertex closest to p.
func (pb *Probe) HeightAt(p r2.Vec) float64 {
	i, j, _ := pb.Nearest(p)
	return pb.s.Z.At(i, j)
}

type kdVertex struct {
	p    r2.Vec
	i, j int
}

type kdVertices []kdVertex

func (k kdVertices) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdVertices) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdVertices) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: d, vertices: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdVertices) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a kdVertex) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdVertex), d)
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdVertex) Dims() int { return 2 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdVertex) Distance(b kdtree.Comparable) float64 {
	return r2.Norm2(r2.Sub(a.p, b.(kdVertex).p))
}

// c = a.dim - b.dim
func kdComp(a, b kdVertex, dim kdtree.Dim) float64 {
	if dim == 0 {
		return a.p.X - b.p.X
	}
	return a.p.Y - b.p.Y
}

type kdPlane struct {
	dim      kdtree.Dim
	vertices kdVertices
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.vertices[i], p.vertices[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}
func (p kdPlane) Len() int {
	return len(p.vertices)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}
