package terrain

import (
	gomath "math"

	"github.com/Faultbox/printgeo/pkg/math"
)

// Contains reports whether p lies within the grid bounds.
func (g *HeightGrid) Contains(p math.Vec2) bool {
	return g.Bounds.Contains(p)
}

// CellIndex maps p to the nearest lattice point, clamped to the grid.
func (g *HeightGrid) CellIndex(p math.Vec2) (ix, iy int) {
	ix = nearestIndex(p.X, g.Bounds.MinX, g.Bounds.Width(), g.GridX)
	iy = nearestIndex(p.Y, g.Bounds.MinY, g.Bounds.Height(), g.GridY)
	return ix, iy
}

// HeightAt returns the height of the lattice point nearest to p. No
// interpolation is done.
func (g *HeightGrid) HeightAt(p math.Vec2) float64 {
	if len(g.elevations) == 0 {
		return g.BaseHeight
	}
	ix, iy := g.CellIndex(p)
	return float64(g.At(ix, iy))
}

// InterpolatedHeightAt returns the bilinearly interpolated height at p.
// Points outside the grid are clamped to the border.
func (g *HeightGrid) InterpolatedHeightAt(p math.Vec2) float64 {
	if len(g.elevations) == 0 {
		return g.BaseHeight
	}
	fx := fractionalIndex(p.X, g.Bounds.MinX, g.Bounds.Width(), g.GridX)
	fy := fractionalIndex(p.Y, g.Bounds.MinY, g.Bounds.Height(), g.GridY)

	cellX := min(int(fx), max(g.GridX-2, 0))
	cellY := min(int(fy), max(g.GridY-2, 0))
	fracX := clamp(fx-float64(cellX), 0, 1)
	fracY := clamp(fy-float64(cellY), 0, 1)

	x1 := min(cellX+1, g.GridX-1)
	y1 := min(cellY+1, g.GridY-1)

	// South edge (lower Y): lerp between SW and SE
	south := float64(g.At(cellX, cellY))*(1-fracX) + float64(g.At(x1, cellY))*fracX
	// North edge (higher Y): lerp between NW and NE
	north := float64(g.At(cellX, y1))*(1-fracX) + float64(g.At(x1, y1))*fracX
	return south*(1-fracY) + north*fracY
}

// fractionalIndex maps a coordinate to a continuous lattice index in
// [0, n-1]. A zero extent maps everything to 0.
func fractionalIndex(v, origin, extent float64, n int) float64 {
	if n < 2 || extent <= 0 {
		return 0
	}
	f := (v - origin) / extent * float64(n-1)
	if gomath.IsNaN(f) {
		return 0
	}
	return clamp(f, 0, float64(n-1))
}

func nearestIndex(v, origin, extent float64, n int) int {
	return int(gomath.Round(fractionalIndex(v, origin, extent, n)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
