package extrude

import (
	"testing"

	"github.com/Faultbox/printgeo/internal/feature"
	"github.com/Faultbox/printgeo/pkg/math"
)

func TestBuildBuildingHeights(t *testing.T) {
	fp := feature.BuildingFootprint{
		ID:       "b1",
		Rings:    [][]math.Vec2{square(10, 10, 10)},
		Height:   20,
		Centroid: math.Vec2{X: 15, Y: 15},
	}
	s, err := BuildBuilding(fp, slopeGrid(), DefaultBuildingOptions())
	if err != nil {
		t.Fatalf("BuildBuilding: %v", err)
	}
	requireClosed(t, s)

	b := s.Bounds()
	if !approx(float64(b.Min[2]), 0.2, 1e-5) {
		t.Errorf("bottom = %f, want 0.2", b.Min[2])
	}
	if !approx(float64(b.Max[2]), 20, 1e-5) {
		t.Errorf("top = %f, want 20", b.Max[2])
	}
	if h := float64(b.Max[2] - b.Min[2]); !approx(h, 19.8, 1e-4) {
		t.Errorf("height = %f, want 19.8", h)
	}
	if !approx(s.SignedVolume(), 100*19.8, 1e-2) {
		t.Errorf("volume = %f, want %f", s.SignedVolume(), 100*19.8)
	}
}

func TestBuildBuildingOnHighGround(t *testing.T) {
	grid := flatGrid(30)
	fp := feature.BuildingFootprint{
		Rings:     [][]math.Vec2{square(0, 0, 10)},
		Height:    8,
		MinHeight: 2,
		Centroid:  math.Vec2{X: 5, Y: 5},
	}
	opts := BuildingOptions{VerticalScale: 2, HorizontalScale: 1}
	s, err := BuildBuilding(fp, grid, opts)
	if err != nil {
		t.Fatalf("BuildBuilding: %v", err)
	}
	b := s.Bounds()
	if !approx(float64(b.Min[2]), 25, 1e-5) {
		t.Errorf("bottom = %f, want 25", b.Min[2])
	}
	if !approx(float64(b.Max[2]), 50, 1e-5) {
		t.Errorf("top = %f, want 50", b.Max[2])
	}
}

func TestBuildBuildingMissingCentroid(t *testing.T) {
	fp := feature.BuildingFootprint{
		Rings:  [][]math.Vec2{square(10, 60, 10)},
		Height: 20,
	}
	opts := BuildingOptions{VerticalScale: 1, HorizontalScale: 2}
	s, err := BuildBuilding(fp, slopeGrid(), opts)
	if err != nil {
		t.Fatalf("BuildBuilding: %v", err)
	}
	requireClosed(t, s)

	b := s.Bounds()
	if !approx(float64(b.Min[2]), 5, 1e-5) {
		t.Errorf("bottom = %f, want 5 (ground 10 under the ring centroid)", b.Min[2])
	}
	if !approx(float64(b.Max[2]), 30, 1e-5) {
		t.Errorf("top = %f, want 30", b.Max[2])
	}
	if !approx(float64(b.Min[0]), 5, 1e-5) || !approx(float64(b.Max[0]), 25, 1e-5) {
		t.Errorf("x range = [%f, %f], want [5, 25] scaled about the ring centroid", b.Min[0], b.Max[0])
	}
}

func TestBuildBuildingClockwiseInput(t *testing.T) {
	ring := square(0, 0, 10)
	ring[1], ring[3] = ring[3], ring[1]
	fp := feature.BuildingFootprint{Rings: [][]math.Vec2{ring}, Height: 10, Centroid: math.Vec2{X: 5, Y: 5}}
	s, err := BuildBuilding(fp, flatGrid(2), DefaultBuildingOptions())
	if err != nil {
		t.Fatalf("BuildBuilding: %v", err)
	}
	requireClosed(t, s)
}

func TestBuildBuildingWithCourtyard(t *testing.T) {
	fp := feature.BuildingFootprint{
		Rings:    [][]math.Vec2{square(0, 0, 20), square(5, 5, 10)},
		Height:   10,
		Centroid: math.Vec2{X: 10, Y: 10},
	}
	s, err := BuildBuilding(fp, flatGrid(10), DefaultBuildingOptions())
	if err != nil {
		t.Fatalf("BuildBuilding: %v", err)
	}
	requireClosed(t, s)
	// 300 m2 of floor from 5 to 20.
	if !approx(s.SignedVolume(), 300*15, 1e-1) {
		t.Errorf("volume = %f, want %f", s.SignedVolume(), 300.0*15)
	}
}

func TestBuildBuildingHorizontalScale(t *testing.T) {
	fp := feature.BuildingFootprint{
		Rings:    [][]math.Vec2{square(0, 0, 10)},
		Height:   10,
		Centroid: math.Vec2{X: 5, Y: 5},
	}
	s, err := BuildBuilding(fp, flatGrid(0), BuildingOptions{VerticalScale: 1, HorizontalScale: 2})
	if err != nil {
		t.Fatalf("BuildBuilding: %v", err)
	}
	b := s.Bounds()
	if b.Min[0] != -5 || b.Max[0] != 15 || b.Min[1] != -5 || b.Max[1] != 15 {
		t.Errorf("unexpected footprint bounds %v", b)
	}
}

func TestBuildBuildingRejects(t *testing.T) {
	grid := slopeGrid()
	tests := []struct {
		name string
		fp   feature.BuildingFootprint
	}{
		{"empty", feature.BuildingFootprint{}},
		{"two points", feature.BuildingFootprint{Rings: [][]math.Vec2{{{X: 1, Y: 1}, {X: 2, Y: 2}}}, Height: 5}},
		{"outside", feature.BuildingFootprint{Rings: [][]math.Vec2{square(95, 95, 10)}, Height: 5, Centroid: math.Vec2{X: 99, Y: 99}}},
		{"no height", feature.BuildingFootprint{Rings: [][]math.Vec2{square(10, 10, 10)}, Centroid: math.Vec2{X: 15, Y: 15}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildBuilding(tt.fp, grid, DefaultBuildingOptions()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuildBuildingsCounts(t *testing.T) {
	footprints := []feature.BuildingFootprint{
		{Rings: [][]math.Vec2{square(10, 10, 10)}, Height: 20, Centroid: math.Vec2{X: 15, Y: 15}},
		{Rings: [][]math.Vec2{square(95, 95, 10)}, Height: 5, Centroid: math.Vec2{X: 99, Y: 99}},
		{Rings: [][]math.Vec2{square(50, 50, 10)}, Height: 5, Centroid: math.Vec2{X: 55, Y: 55}},
	}
	s, stats := BuildBuildings(footprints, slopeGrid(), DefaultBuildingOptions())
	if stats.Built != 2 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 2 built 1 skipped", stats)
	}
	requireClosed(t, s)
}

func TestTriangulateRejectsDuplicates(t *testing.T) {
	ring := append(square(0, 0, 10), math.Vec2{X: 5, Y: 10}, math.Vec2{X: 10, Y: 0})
	if _, err := triangulate([][]math.Vec2{ring}); err == nil {
		t.Error("expected error for repeated vertex")
	}
}

func TestTriangulateCounterClockwise(t *testing.T) {
	ring := []math.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 5, Y: 4}, {X: 0, Y: 10}}
	tris, err := triangulate([][]math.Vec2{ring})
	if err != nil {
		t.Fatalf("triangulate: %v", err)
	}
	var area float64
	for _, tri := range tris {
		a, b, c := ring[tri[0]], ring[tri[1]], ring[tri[2]]
		cross := b.Sub(a).Cross(c.Sub(a))
		if cross <= 0 {
			t.Errorf("triangle %v is not counter-clockwise", tri)
		}
		area += cross / 2
	}
	if want := math.SignedArea(ring); !approx(area, want, 1e-6) {
		t.Errorf("area = %f, want %f", area, want)
	}
}

