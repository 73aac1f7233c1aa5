package extrude

import (
	"github.com/Faultbox/printgeo/internal/feature"
	"github.com/Faultbox/printgeo/internal/mesh"
	"github.com/Faultbox/printgeo/internal/terrain"
	"github.com/Faultbox/printgeo/pkg/math"
)

const (
	// SurfaceLift keeps line tubes above the terrain surface.
	SurfaceLift = 0.5
	// FlatSurfaceLift is used instead of SurfaceLift on flattened terrain.
	FlatSurfaceLift = 0.1
	// tubeWidthFactor widens tubes so thin lines survive printing.
	tubeWidthFactor = 1.5
)

var roadWidths = map[string]float64{
	"motorway":     4,
	"trunk":        3.5,
	"primary":      3,
	"secondary":    2.5,
	"tertiary":     2,
	"residential":  1.5,
	"unclassified": 1.5,
	"service":      1,
	"track":        0.8,
	"path":         0.5,
	"footway":      0.5,
	"cycleway":     0.5,
	"steps":        0.5,
}

const defaultRoadWidth = 1.0

// RoadWidth returns the nominal width of a road class.
func RoadWidth(class string) float64 {
	if w, ok := roadWidths[class]; ok {
		return w
	}
	return defaultRoadWidth
}

// RoadOptions controls road and water line tubes.
type RoadOptions struct {
	WidthScale float64
}

// DefaultRoadOptions returns unscaled road options.
func DefaultRoadOptions() RoadOptions {
	return RoadOptions{WidthScale: 1}
}

// BuildRoads turns each road into a tube draped over the terrain.
func BuildRoads(roads []feature.RoadPolyline, grid *terrain.HeightGrid, opts RoadOptions) (mesh.Solid, Stats) {
	var out mesh.Solid
	var stats Stats
	for _, r := range roads {
		solid := BuildLineTube(r.Points, RoadWidth(r.Class), grid, opts)
		if solid.IsEmpty() {
			stats.Skipped++
			continue
		}
		out.Append(solid)
		stats.Built++
	}
	return out, stats
}

// BuildWaterLines renders rivers, streams and canals as tubes lying in
// their carved channels. Water polygons are only carved, never rendered.
func BuildWaterLines(water []feature.WaterFeature, grid *terrain.HeightGrid, opts RoadOptions) (mesh.Solid, Stats) {
	var out mesh.Solid
	var stats Stats
	for _, w := range water {
		line, ok := w.Geometry.(feature.WaterLine)
		if !ok {
			continue
		}
		solid := BuildLineTube(line.Points, terrain.WaterRenderWidth(w.Class), grid, opts)
		if solid.IsEmpty() {
			stats.Skipped++
			continue
		}
		out.Append(solid)
		stats.Built++
	}
	return out, stats
}

// BuildLineTube drapes a polyline of the given nominal width over the
// terrain. Points outside the grid are dropped first.
func BuildLineTube(points []math.Vec2, width float64, grid *terrain.HeightGrid, opts RoadOptions) mesh.Solid {
	scale := opts.WidthScale
	if !(scale > 0) {
		scale = 1
	}
	lift := SurfaceLift
	if grid.Flatten {
		lift = FlatSurfaceLift
	}

	lifted := make([]math.Vec3, 0, len(points))
	for _, p := range points {
		if !p.IsFinite() || !grid.Contains(p) {
			continue
		}
		lifted = append(lifted, math.Vec3{X: p.X, Y: p.Y, Z: grid.InterpolatedHeightAt(p) + lift})
	}
	if len(lifted) < 2 {
		return mesh.Solid{}
	}
	return Tube(lifted, tubeWidthFactor*width*scale/2)
}
