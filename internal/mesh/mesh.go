// Package mesh provides the indexed triangle solid shared by every
// generation stage.
package mesh

import (
	"github.com/Faultbox/printgeo/pkg/math"
)

// Solid is an indexed triangle mesh. Triangles are wound counter-clockwise
// when seen from outside the solid.
type Solid struct {
	Vertices  [][3]float32
	Triangles [][3]uint32
}

// Bounds holds the axis-aligned bounding box of a solid.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// VertexCount returns the number of vertices.
func (s *Solid) VertexCount() int {
	return len(s.Vertices)
}

// TriangleCount returns the number of triangles.
func (s *Solid) TriangleCount() int {
	return len(s.Triangles)
}

// IsEmpty returns true if the solid has no geometry.
func (s *Solid) IsEmpty() bool {
	return len(s.Triangles) == 0
}

// AddVertex appends a vertex and returns its index.
func (s *Solid) AddVertex(v math.Vec3) uint32 {
	s.Vertices = append(s.Vertices, v.Float32())
	return uint32(len(s.Vertices) - 1)
}

// AddTriangle appends triangle (a, b, c).
func (s *Solid) AddTriangle(a, b, c uint32) {
	s.Triangles = append(s.Triangles, [3]uint32{a, b, c})
}

// AddQuad appends quad a-b-c-d as two triangles sharing the a-c diagonal.
// The quad is wound a→b→c→d.
func (s *Solid) AddQuad(a, b, c, d uint32) {
	s.Triangles = append(s.Triangles, [3]uint32{a, b, c}, [3]uint32{a, c, d})
}

// Append copies other into s, re-basing its indices.
func (s *Solid) Append(other Solid) {
	base := uint32(len(s.Vertices))
	s.Vertices = append(s.Vertices, other.Vertices...)
	for _, t := range other.Triangles {
		s.Triangles = append(s.Triangles, [3]uint32{t[0] + base, t[1] + base, t[2] + base})
	}
}

// Merge combines solids into one.
func Merge(solids ...Solid) Solid {
	var out Solid
	for _, s := range solids {
		out.Append(s)
	}
	return out
}

// Bounds computes the bounding box of all vertices.
func (s *Solid) Bounds() Bounds {
	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, v := range s.Vertices {
		for i := range 3 {
			if v[i] < bounds.Min[i] {
				bounds.Min[i] = v[i]
			}
			if v[i] > bounds.Max[i] {
				bounds.Max[i] = v[i]
			}
		}
	}
	return bounds
}

// Triangle returns the three corner positions of triangle i.
func (s *Solid) Triangle(i int) [3][3]float32 {
	t := s.Triangles[i]
	return [3][3]float32{s.Vertices[t[0]], s.Vertices[t[1]], s.Vertices[t[2]]}
}
