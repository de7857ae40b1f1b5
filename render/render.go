// Package render converts vault surfaces into triangle meshes and writes
// them out in binary STL format.
package render

import (
	"github.com/soypat/glgl/math/ms3"
)

// Renderer streams the triangles of a mesh. ReadTriangles fills dst and
// returns the number of triangles written. It returns io.EOF once the mesh is
// exhausted and no triangles were written.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle) (int, error)
}
