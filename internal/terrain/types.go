// Package terrain rasterizes contour data into a height grid, carves water
// into it and assembles the grid into a closed printable solid.
package terrain

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/printgeo/pkg/math"
)

// Defaults for Options.
const (
	DefaultResolution = 100
	DefaultBaseHeight = 2.0
	DefaultWaterDepth = 2.0
)

// Option validation errors.
var (
	ErrInvalidResolution    = errors.New("resolution must be at least 2")
	ErrInvalidBaseHeight    = errors.New("base height must be >= 0")
	ErrInvalidVerticalScale = errors.New("vertical scale must be > 0")
	ErrInvalidMaxHeight     = errors.New("max height must be >= 0 or +Inf")
	ErrInvalidSmoothing     = errors.New("smoothing iterations must be >= 0")
	ErrInvalidWaterDepth    = errors.New("water depth must be >= 0")
)

// Options controls how contour data becomes grid elevations.
type Options struct {
	Resolution          int     // Cells per side
	BaseHeight          float64 // Solid thickness under the lowest point
	VerticalScale       float64 // Multiplier on relative elevation
	MaxHeight           float64 // Clamp on relative elevation, +Inf for none
	SmoothingIterations int     // 3x3 box blur passes
	Flatten             bool    // Ignore elevation, keep only the base
	WaterDepth          float64 // Maximum carving depth in meters
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Resolution:    DefaultResolution,
		BaseHeight:    DefaultBaseHeight,
		VerticalScale: 1,
		MaxHeight:     gomath.Inf(1),
		WaterDepth:    DefaultWaterDepth,
	}
}

// Validate checks every option against its allowed range.
func (o Options) Validate() error {
	switch {
	case o.Resolution < 2:
		return fmt.Errorf("%w: got %d", ErrInvalidResolution, o.Resolution)
	case !(o.BaseHeight >= 0) || gomath.IsInf(o.BaseHeight, 0):
		return fmt.Errorf("%w: got %v", ErrInvalidBaseHeight, o.BaseHeight)
	case !(o.VerticalScale > 0) || gomath.IsInf(o.VerticalScale, 0):
		return fmt.Errorf("%w: got %v", ErrInvalidVerticalScale, o.VerticalScale)
	case !(o.MaxHeight >= 0):
		return fmt.Errorf("%w: got %v", ErrInvalidMaxHeight, o.MaxHeight)
	case o.SmoothingIterations < 0:
		return fmt.Errorf("%w: got %d", ErrInvalidSmoothing, o.SmoothingIterations)
	case !(o.WaterDepth >= 0) || gomath.IsInf(o.WaterDepth, 0):
		return fmt.Errorf("%w: got %v", ErrInvalidWaterDepth, o.WaterDepth)
	}
	return nil
}

// HeightGrid is a row-major lattice of final surface heights spanning
// Bounds. It is never modified after construction.
type HeightGrid struct {
	Bounds        math.Bounds
	GridX, GridY  int
	MinElevation  float64 // Lowest contour elevation, the zero of the relief
	VerticalScale float64
	BaseHeight    float64
	Flatten       bool

	elevations []float32
}

// NewHeightGrid wraps precomputed elevations. The slice is copied.
func NewHeightGrid(gridX, gridY int, bounds math.Bounds, elevations []float32) *HeightGrid {
	elev := make([]float32, gridX*gridY)
	copy(elev, elevations)
	return &HeightGrid{
		Bounds:        bounds,
		GridX:         gridX,
		GridY:         gridY,
		VerticalScale: 1,
		elevations:    elev,
	}
}

// At returns the height of cell (ix, iy).
func (g *HeightGrid) At(ix, iy int) float32 {
	return g.elevations[iy*g.GridX+ix]
}

// Len returns the number of cells.
func (g *HeightGrid) Len() int {
	return len(g.elevations)
}

// Elevations returns a copy of the row-major heights.
func (g *HeightGrid) Elevations() []float32 {
	out := make([]float32, len(g.elevations))
	copy(out, g.elevations)
	return out
}

// MinMax returns the lowest and highest cell.
func (g *HeightGrid) MinMax() (lo, hi float32) {
	if len(g.elevations) == 0 {
		return 0, 0
	}
	lo, hi = g.elevations[0], g.elevations[0]
	for _, v := range g.elevations[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// CellPosition returns the planar position of lattice point (ix, iy).
func (g *HeightGrid) CellPosition(ix, iy int) math.Vec2 {
	return math.Vec2{
		X: latticeCoord(g.Bounds.MinX, g.Bounds.Width(), ix, g.GridX),
		Y: latticeCoord(g.Bounds.MinY, g.Bounds.Height(), iy, g.GridY),
	}
}

func latticeCoord(origin, extent float64, i, n int) float64 {
	if n < 2 {
		return origin
	}
	return origin + float64(i)/float64(n-1)*extent
}
