package terrain

import (
	gomath "math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/printgeo/internal/feature"
	"github.com/Faultbox/printgeo/pkg/math"
)

// MaxSamplePoints bounds the brute-force nearest-neighbour search. Larger
// inputs are subsampled by a uniform stride.
const MaxSamplePoints = 10000

type samplePoint struct {
	pos       math.Vec2
	elevation float64
}

// BuildGrid rasterizes contours onto a Resolution x Resolution grid spanning
// bounds, carves water and applies smoothing. opts must have passed
// Validate.
func BuildGrid(contours []feature.ContourSample, water []feature.WaterFeature, bounds math.Bounds, opts Options) *HeightGrid {
	res := max(opts.Resolution, 2)
	points, minElevation := collectSamples(contours)
	carve := newCarver(water, opts.WaterDepth)

	g := &HeightGrid{
		Bounds:        bounds,
		GridX:         res,
		GridY:         res,
		MinElevation:  minElevation,
		VerticalScale: opts.VerticalScale,
		BaseHeight:    opts.BaseHeight,
		Flatten:       opts.Flatten,
		elevations:    make([]float32, res*res),
	}

	// Rows write disjoint slices of elevations and only read immutable
	// inputs, so they are filled concurrently.
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for iy := range g.GridY {
		eg.Go(func() error {
			row := g.elevations[iy*g.GridX : (iy+1)*g.GridX]
			for ix := range g.GridX {
				p := g.CellPosition(ix, iy)
				row[ix] = cellHeight(p, points, minElevation, carve, opts)
			}
			return nil
		})
	}
	_ = eg.Wait()

	if opts.SmoothingIterations > 0 {
		g.elevations = Smooth(g.elevations, g.GridX, g.GridY, opts.SmoothingIterations)
	}
	return g
}

// collectSamples flattens contour points and subsamples them to at most
// MaxSamplePoints. Non-finite values are dropped.
func collectSamples(contours []feature.ContourSample) ([]samplePoint, float64) {
	var points []samplePoint
	minElevation := gomath.Inf(1)
	for _, c := range contours {
		if gomath.IsNaN(c.Elevation) || gomath.IsInf(c.Elevation, 0) {
			continue
		}
		added := false
		for _, p := range c.Points {
			if !p.IsFinite() {
				continue
			}
			points = append(points, samplePoint{pos: p, elevation: c.Elevation})
			added = true
		}
		if added && c.Elevation < minElevation {
			minElevation = c.Elevation
		}
	}
	if gomath.IsInf(minElevation, 1) {
		minElevation = 0
	}

	if len(points) > MaxSamplePoints {
		stride := (len(points) + MaxSamplePoints - 1) / MaxSamplePoints
		sampled := make([]samplePoint, 0, len(points)/stride+1)
		for i := 0; i < len(points); i += stride {
			sampled = append(sampled, points[i])
		}
		points = sampled
	}
	return points, minElevation
}

// nearestElevation returns the elevation of the closest sample, or fallback
// when there are none. Ties keep the first sample.
func nearestElevation(p math.Vec2, points []samplePoint, fallback float64) float64 {
	best := gomath.Inf(1)
	elevation := fallback
	for _, s := range points {
		if d := p.DistanceSq(s.pos); d < best {
			best = d
			elevation = s.elevation
		}
	}
	return elevation
}

// cellHeight computes the final height of one lattice point. Carving is
// applied after scale and clamp and before the base offset, so depth is in
// absolute meters.
func cellHeight(p math.Vec2, points []samplePoint, minElevation float64, carve *carver, opts Options) float32 {
	var h float64
	if !opts.Flatten {
		rel := nearestElevation(p, points, minElevation) - minElevation
		if rel > opts.MaxHeight {
			rel = opts.MaxHeight
		}
		h = rel * opts.VerticalScale
	}
	h -= carve.Depth(p)

	z := h + opts.BaseHeight
	if gomath.IsNaN(z) || gomath.IsInf(z, 0) {
		z = opts.BaseHeight
	}
	if z < 0 {
		z = 0
	}
	if z > gomath.MaxFloat32 {
		return gomath.MaxFloat32
	}
	return float32(z)
}
