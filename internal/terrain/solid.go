package terrain

import (
	"github.com/Faultbox/printgeo/internal/mesh"
)

// BuildSolid turns the grid into a closed solid: the height surface on top,
// a flat bottom at z=0 and four walls joining them along the borders.
func BuildSolid(g *HeightGrid) mesh.Solid {
	gridX, gridY := g.GridX, g.GridY
	if gridX < 2 || gridY < 2 {
		return mesh.Solid{}
	}
	widthSegments := gridX - 1
	heightSegments := gridY - 1

	s := mesh.Solid{
		Vertices:  make([][3]float32, 0, gridX*gridY*2),
		Triangles: make([][3]uint32, 0, widthSegments*heightSegments*4+(widthSegments+heightSegments)*4),
	}

	// Top surface, then bottom surface at z=0, sharing the same lattice.
	for iy := range gridY {
		for ix := range gridX {
			p := g.CellPosition(ix, iy)
			s.Vertices = append(s.Vertices, [3]float32{float32(p.X), float32(p.Y), g.At(ix, iy)})
		}
	}
	for iy := range gridY {
		for ix := range gridX {
			p := g.CellPosition(ix, iy)
			s.Vertices = append(s.Vertices, [3]float32{float32(p.X), float32(p.Y), 0})
		}
	}

	top := func(ix, iy int) uint32 { return uint32(iy*gridX + ix) }
	bottom := func(ix, iy int) uint32 { return uint32(gridX*gridY + iy*gridX + ix) }

	// Top faces, counter-clockwise seen from above.
	for iy := range heightSegments {
		for ix := range widthSegments {
			a, b := top(ix, iy), top(ix+1, iy)
			c, d := top(ix, iy+1), top(ix+1, iy+1)
			s.AddTriangle(a, b, c)
			s.AddTriangle(b, d, c)
		}
	}

	// Bottom faces, clockwise seen from above so normals point down.
	for iy := range heightSegments {
		for ix := range widthSegments {
			a, b := bottom(ix, iy), bottom(ix+1, iy)
			c, d := bottom(ix, iy+1), bottom(ix+1, iy+1)
			s.AddTriangle(a, c, b)
			s.AddTriangle(b, c, d)
		}
	}

	// South wall (iy = 0) faces -Y.
	for ix := range widthSegments {
		topA, topB := top(ix, 0), top(ix+1, 0)
		botA, botB := bottom(ix, 0), bottom(ix+1, 0)
		s.AddTriangle(topA, botA, botB)
		s.AddTriangle(topA, botB, topB)
	}

	// North wall (iy = gridY-1) faces +Y.
	for ix := range widthSegments {
		topA, topB := top(ix, gridY-1), top(ix+1, gridY-1)
		botA, botB := bottom(ix, gridY-1), bottom(ix+1, gridY-1)
		s.AddTriangle(topA, topB, botB)
		s.AddTriangle(topA, botB, botA)
	}

	// West wall (ix = 0) faces -X.
	for iy := range heightSegments {
		topA, topC := top(0, iy), top(0, iy+1)
		botA, botC := bottom(0, iy), bottom(0, iy+1)
		s.AddTriangle(topA, topC, botC)
		s.AddTriangle(topA, botC, botA)
	}

	// East wall (ix = gridX-1) faces +X.
	for iy := range heightSegments {
		topA, topC := top(gridX-1, iy), top(gridX-1, iy+1)
		botA, botC := bottom(gridX-1, iy), bottom(gridX-1, iy+1)
		s.AddTriangle(topA, botA, botC)
		s.AddTriangle(topA, botC, topC)
	}

	return s
}
