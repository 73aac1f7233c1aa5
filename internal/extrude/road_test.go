package extrude

import (
	"testing"

	"github.com/Faultbox/printgeo/internal/feature"
	"github.com/Faultbox/printgeo/internal/terrain"
	"github.com/Faultbox/printgeo/pkg/math"
)

func TestRoadWidth(t *testing.T) {
	tests := map[string]float64{
		"motorway":    4,
		"residential": 1.5,
		"footway":     0.5,
		"bridleway":   1,
		"":            1,
	}
	for class, want := range tests {
		if got := RoadWidth(class); got != want {
			t.Errorf("RoadWidth(%q) = %f, want %f", class, got, want)
		}
	}
}

func TestBuildLineTubeSitsOnTerrain(t *testing.T) {
	grid := flatGrid(4)
	s := BuildLineTube([]math.Vec2{{X: -50, Y: 0}, {X: 50, Y: 0}}, 2, grid, DefaultRoadOptions())
	requireClosed(t, s)

	// radius 1.5 * 2 / 2
	half := 1.5 / 1.4142135623730951
	b := s.Bounds()
	if !approx(float64(b.Max[2]), 4+SurfaceLift+half, 1e-4) {
		t.Errorf("top = %f, want %f", b.Max[2], 4+SurfaceLift+half)
	}
}

func TestBuildLineTubeFlattenedLift(t *testing.T) {
	grid := flatGrid(2)
	grid.Flatten = true
	s := BuildLineTube([]math.Vec2{{X: -50, Y: 0}, {X: 50, Y: 0}}, 2, grid, RoadOptions{WidthScale: 2})
	half := 3 / 1.4142135623730951
	b := s.Bounds()
	if !approx(float64(b.Max[2]), 2+FlatSurfaceLift+half, 1e-4) {
		t.Errorf("top = %f, want %f", b.Max[2], 2+FlatSurfaceLift+half)
	}
}

func TestBuildLineTubeDropsOutsidePoints(t *testing.T) {
	grid := flatGrid(0)
	s := BuildLineTube([]math.Vec2{{X: -500, Y: 0}, {X: -50, Y: 0}, {X: 50, Y: 0}, {X: 500, Y: 0}}, 1, grid, DefaultRoadOptions())
	requireClosed(t, s)
	b := s.Bounds()
	if b.Min[0] < -52 || b.Max[0] > 52 {
		t.Errorf("tube reaches outside the grid: %v", b)
	}

	if s := BuildLineTube([]math.Vec2{{X: 0, Y: 0}, {X: 500, Y: 0}}, 1, grid, DefaultRoadOptions()); !s.IsEmpty() {
		t.Error("one inside point should give no geometry")
	}
}

func TestBuildRoadsCounts(t *testing.T) {
	roads := []feature.RoadPolyline{
		{Class: "primary", Points: []math.Vec2{{X: -80, Y: -80}, {X: 0, Y: 10}, {X: 80, Y: 60}}},
		{Class: "path", Points: []math.Vec2{{X: 300, Y: 300}, {X: 400, Y: 400}}},
	}
	s, stats := BuildRoads(roads, flatGrid(1), DefaultRoadOptions())
	if stats.Built != 1 || stats.Skipped != 1 {
		t.Errorf("stats = %+v", stats)
	}
	requireClosed(t, s)
}

func TestBuildWaterLinesIgnoresPolygons(t *testing.T) {
	water := []feature.WaterFeature{
		{Class: "river", Geometry: feature.WaterLine{Points: []math.Vec2{{X: -90, Y: 0}, {X: 90, Y: 0}}}},
		{Class: "lake", Geometry: feature.WaterPolygon{Rings: [][]math.Vec2{square(-20, -20, 40)}}},
	}
	s, stats := BuildWaterLines(water, flatGrid(3), DefaultRoadOptions())
	if stats.Built != 1 || stats.Skipped != 0 {
		t.Errorf("stats = %+v", stats)
	}
	requireClosed(t, s)
	// river render width 8 gives radius 6
	b := s.Bounds()
	if w := float64(b.Max[1] - b.Min[1]); !approx(w, 2*6/1.4142135623730951, 1e-3) {
		t.Errorf("width = %f", w)
	}
	if terrain.WaterRenderWidth("river") != 8 {
		t.Error("unexpected river width")
	}
}
