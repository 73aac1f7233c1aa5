package extrude

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/printgeo/internal/mesh"
	"github.com/Faultbox/printgeo/internal/terrain"
	"github.com/Faultbox/printgeo/pkg/math"
)

// slopeGrid is a 2x2 grid rising from 0 on the south edge to 10 on the north.
func slopeGrid() *terrain.HeightGrid {
	return terrain.NewHeightGrid(2, 2, math.Bounds{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}, []float32{0, 0, 10, 10})
}

// flatGrid is a level grid at height h.
func flatGrid(h float32) *terrain.HeightGrid {
	elev := make([]float32, 9)
	for i := range elev {
		elev[i] = h
	}
	return terrain.NewHeightGrid(3, 3, math.Bounds{MinX: -100, MaxX: 100, MinY: -100, MaxY: 100}, elev)
}

func square(x0, y0, size float64) []math.Vec2 {
	return []math.Vec2{
		{X: x0, Y: y0},
		{X: x0 + size, Y: y0},
		{X: x0 + size, Y: y0 + size},
		{X: x0, Y: y0 + size},
	}
}

func requireClosed(t *testing.T, s mesh.Solid) {
	t.Helper()
	if s.IsEmpty() {
		t.Fatal("solid is empty")
	}
	if !s.IsClosed() {
		t.Fatalf("solid is not closed: %d boundary edges", s.BoundaryEdges())
	}
	if v := s.SignedVolume(); !(v > 0) {
		t.Fatalf("expected positive volume, got %f", v)
	}
}

func approx(a, b, tol float64) bool {
	return gomath.Abs(a-b) <= tol
}
