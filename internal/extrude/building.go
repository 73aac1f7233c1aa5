package extrude

import (
	"fmt"
	stdmath "math"

	"github.com/Faultbox/printgeo/internal/feature"
	"github.com/Faultbox/printgeo/internal/mesh"
	"github.com/Faultbox/printgeo/internal/terrain"
	"github.com/Faultbox/printgeo/pkg/math"
)

const (
	// FoundationDepth is how far a building reaches below the terrain
	// surface so that it stays embedded on slopes.
	FoundationDepth = 5.0
	// MinBuildingBase keeps the building floor above the model bottom.
	MinBuildingBase = 0.2
)

// BuildingOptions controls building extrusion.
type BuildingOptions struct {
	VerticalScale   float64
	HorizontalScale float64
}

// DefaultBuildingOptions returns unscaled building options.
func DefaultBuildingOptions() BuildingOptions {
	return BuildingOptions{VerticalScale: 1, HorizontalScale: 1}
}

// BuildBuildings extrudes every footprint that lies inside the grid into
// one combined solid. Footprints that cannot be built are skipped.
func BuildBuildings(footprints []feature.BuildingFootprint, grid *terrain.HeightGrid, opts BuildingOptions) (mesh.Solid, Stats) {
	var out mesh.Solid
	var stats Stats
	for i := range footprints {
		solid, err := BuildBuilding(footprints[i], grid, opts)
		if err != nil {
			stats.Skipped++
			continue
		}
		out.Append(solid)
		stats.Built++
	}
	return out, stats
}

// BuildBuilding extrudes a single footprint from just below the terrain up
// to its roof height.
func BuildBuilding(fp feature.BuildingFootprint, grid *terrain.HeightGrid, opts BuildingOptions) (mesh.Solid, error) {
	outer := math.CleanRing(fp.Outer())
	if len(outer) < 3 {
		return mesh.Solid{}, fmt.Errorf("building %s: outer ring has %d vertices", fp.ID, len(outer))
	}
	for _, p := range outer {
		if !grid.Contains(p) {
			return mesh.Solid{}, fmt.Errorf("building %s: outside terrain bounds", fp.ID)
		}
	}

	center := fp.Centroid
	if center == (math.Vec2{}) || !center.IsFinite() {
		center = math.RingCentroid(outer)
	}
	ground := grid.HeightAt(center)
	bottomZ := stdmath.Max(ground-FoundationDepth, MinBuildingBase)
	topZ := ground + (fp.MinHeight+fp.Height)*opts.VerticalScale
	if !(topZ > bottomZ) {
		return mesh.Solid{}, fmt.Errorf("building %s: roof %.2f not above base %.2f", fp.ID, topZ, bottomZ)
	}

	rings := orientRings(outer, fp.Rings[1:])
	scale := opts.HorizontalScale
	if scale <= 0 {
		scale = 1
	}
	for _, ring := range rings {
		for k, p := range ring {
			ring[k] = center.Add(p.Sub(center).Scale(scale))
		}
	}

	caps, err := triangulate(rings)
	if err != nil {
		return mesh.Solid{}, fmt.Errorf("building %s: %w", fp.ID, err)
	}

	return extrudeRings(rings, caps, bottomZ, topZ), nil
}

// orientRings returns copies of the rings with the outer ring
// counter-clockwise and holes clockwise. Degenerate holes are dropped.
func orientRings(outer []math.Vec2, holes [][]math.Vec2) [][]math.Vec2 {
	rings := make([][]math.Vec2, 0, 1+len(holes))
	rings = append(rings, orient(outer, true))
	for _, h := range holes {
		h = math.CleanRing(h)
		if len(h) < 3 || math.SignedArea(h) == 0 {
			continue
		}
		rings = append(rings, orient(h, false))
	}
	return rings
}

func orient(ring []math.Vec2, ccw bool) []math.Vec2 {
	out := make([]math.Vec2, len(ring))
	copy(out, ring)
	if (math.SignedArea(out) > 0) != ccw {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// extrudeRings builds the prism: floor cap, roof cap, and one wall quad per
// ring edge. caps index into the rings flattened in order.
func extrudeRings(rings [][]math.Vec2, caps [][3]int, bottomZ, topZ float64) mesh.Solid {
	var s mesh.Solid
	total := 0
	for _, r := range rings {
		total += len(r)
	}
	s.Vertices = make([][3]float32, 0, 2*total)
	for _, r := range rings {
		for _, p := range r {
			s.AddVertex(math.Vec3{X: p.X, Y: p.Y, Z: bottomZ})
		}
	}
	for _, r := range rings {
		for _, p := range r {
			s.AddVertex(math.Vec3{X: p.X, Y: p.Y, Z: topZ})
		}
	}

	top := uint32(total)
	for _, t := range caps {
		a, b, c := uint32(t[0]), uint32(t[1]), uint32(t[2])
		s.AddTriangle(a, c, b)
		s.AddTriangle(top+a, top+b, top+c)
	}

	base := uint32(0)
	for _, r := range rings {
		n := uint32(len(r))
		for k := uint32(0); k < n; k++ {
			a := base + k
			b := base + (k+1)%n
			s.AddQuad(a, b, top+b, top+a)
		}
		base += n
	}
	return s
}
