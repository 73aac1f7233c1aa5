package extrude

import (
	"fmt"

	libtess2 "github.com/hajimehoshi/go-libtess2"

	"github.com/Faultbox/printgeo/pkg/math"
)

type planarKey [2]float32

// triangulate fills the polygon formed by rings (outer first, then holes)
// and returns triangles indexing into the rings flattened in order. Every
// triangle is counter-clockwise seen from above. It fails when the
// tessellator has to introduce vertices, since walls are built from the
// original ring vertices only.
func triangulate(rings [][]math.Vec2) ([][3]int, error) {
	lookup := make(map[planarKey]int)
	var flat []math.Vec2
	contours := make([]libtess2.Contour, 0, len(rings))
	for _, ring := range rings {
		contour := make(libtess2.Contour, 0, len(ring))
		for _, p := range ring {
			key := planarKey{float32(p.X), float32(p.Y)}
			if _, dup := lookup[key]; dup {
				return nil, fmt.Errorf("duplicate vertex at (%v, %v)", key[0], key[1])
			}
			lookup[key] = len(flat)
			flat = append(flat, p)
			contour = append(contour, libtess2.Vertex{X: key[0], Y: key[1]})
		}
		contours = append(contours, contour)
	}

	elements, vertices, err := libtess2.Tesselate(contours, libtess2.WindingRuleOdd)
	if err != nil {
		return nil, err
	}

	remap := make([]int, len(vertices))
	for i, v := range vertices {
		idx, ok := lookup[planarKey{v.X, v.Y}]
		if !ok {
			return nil, fmt.Errorf("tessellator introduced vertex (%v, %v)", v.X, v.Y)
		}
		remap[i] = idx
	}

	tris := make([][3]int, 0, len(elements)/3)
	for i := 0; i+2 < len(elements); i += 3 {
		var tri [3]int
		valid := true
		for j := range 3 {
			e := elements[i+j]
			if e < 0 || e >= len(remap) {
				valid = false
				break
			}
			tri[j] = remap[e]
		}
		if !valid {
			continue
		}
		a, b, c := flat[tri[0]], flat[tri[1]], flat[tri[2]]
		area := b.Sub(a).Cross(c.Sub(a))
		if area == 0 {
			continue
		}
		if area < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		tris = append(tris, tri)
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("polygon has no area")
	}
	return tris, nil
}
