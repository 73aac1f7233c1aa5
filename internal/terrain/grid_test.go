package terrain

import (
	gomath "math"
	"reflect"
	"testing"

	"github.com/Faultbox/printgeo/internal/feature"
	"github.com/Faultbox/printgeo/pkg/math"
)

var testBounds = math.Bounds{MinX: -50, MaxX: 50, MinY: -50, MaxY: 50}

// hillContours returns concentric square contours rising toward the center.
func hillContours() []feature.ContourSample {
	var contours []feature.ContourSample
	for i := range 5 {
		r := 45 - float64(i)*10
		contours = append(contours, feature.ContourSample{
			Elevation: 100 + float64(i)*20,
			Points: []math.Vec2{
				{X: -r, Y: -r}, {X: 0, Y: -r}, {X: r, Y: -r}, {X: r, Y: 0},
				{X: r, Y: r}, {X: 0, Y: r}, {X: -r, Y: r}, {X: -r, Y: 0},
			},
		})
	}
	return contours
}

// coveringContour places samples at elevation on a regular lattice over b.
func coveringContour(b math.Bounds, elevation float64, step float64) feature.ContourSample {
	c := feature.ContourSample{Elevation: elevation}
	for y := b.MinY; y <= b.MaxY; y += step {
		for x := b.MinX; x <= b.MaxX; x += step {
			c.Points = append(c.Points, math.Vec2{X: x, Y: y})
		}
	}
	return c
}

func TestBuildGridNoContoursIsFlat(t *testing.T) {
	opts := DefaultOptions()
	opts.Resolution = 8
	g := BuildGrid(nil, nil, testBounds, opts)

	if g.GridX != 8 || g.GridY != 8 || g.Len() != 64 {
		t.Fatalf("expected 8x8 grid, got %dx%d (%d cells)", g.GridX, g.GridY, g.Len())
	}
	if g.MinElevation != 0 {
		t.Errorf("expected min elevation 0, got %f", g.MinElevation)
	}
	for i, v := range g.Elevations() {
		if v != float32(DefaultBaseHeight) {
			t.Fatalf("cell %d: expected %v, got %v", i, DefaultBaseHeight, v)
		}
	}
}

func TestBuildGridElevationsAreFinite(t *testing.T) {
	for _, maxHeight := range []float64{30, gomath.Inf(1)} {
		for _, iterations := range []int{0, 1, 3, 10} {
			opts := DefaultOptions()
			opts.Resolution = 12
			opts.MaxHeight = maxHeight
			opts.SmoothingIterations = iterations
			opts.VerticalScale = 2.5

			g := BuildGrid(hillContours(), nil, testBounds, opts)
			for i, v := range g.Elevations() {
				f := float64(v)
				if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
					t.Fatalf("maxHeight=%v iterations=%d: cell %d is %v", maxHeight, iterations, i, v)
				}
			}
		}
	}
}

func TestBuildGridSaturatesOutOfRangeHeights(t *testing.T) {
	half := math.Bounds{MinX: -50, MaxX: 0, MinY: -50, MaxY: 50}
	other := math.Bounds{MinX: 5, MaxX: 50, MinY: -50, MaxY: 50}

	tests := []struct {
		name  string
		high  float64
		scale float64
	}{
		{"extreme elevation", 1e39, 1},
		{"extreme scale", 50, 1e38},
	}
	for _, tt := range tests {
		for _, iterations := range []int{0, 2} {
			contours := []feature.ContourSample{
				coveringContour(half, 0, 5),
				coveringContour(other, tt.high, 5),
			}
			opts := DefaultOptions()
			opts.Resolution = 4
			opts.VerticalScale = tt.scale
			opts.SmoothingIterations = iterations

			g := BuildGrid(contours, nil, testBounds, opts)
			for i, v := range g.Elevations() {
				f := float64(v)
				if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
					t.Fatalf("%s, iterations=%d: cell %d is %v", tt.name, iterations, i, v)
				}
			}
			if _, hi := g.MinMax(); iterations == 0 && hi != gomath.MaxFloat32 {
				t.Errorf("%s: expected high side saturated at MaxFloat32, got %v", tt.name, hi)
			}
		}
	}
}

func TestBuildGridFlattenIgnoresRelief(t *testing.T) {
	opts := DefaultOptions()
	opts.Resolution = 10
	opts.Flatten = true
	opts.VerticalScale = 4
	opts.MaxHeight = 15
	opts.BaseHeight = 3.7
	opts.SmoothingIterations = 2

	g := BuildGrid(hillContours(), nil, testBounds, opts)
	for i, v := range g.Elevations() {
		if v != float32(3.7) {
			t.Fatalf("cell %d: expected 3.7, got %v", i, v)
		}
	}
}

func TestBuildGridUniformContour(t *testing.T) {
	contours := []feature.ContourSample{
		coveringContour(testBounds, 100, 5),
		// A sea-level sample far outside the selection sets the relief zero
		// without ever being the nearest sample of a cell.
		{Elevation: 0, Points: []math.Vec2{{X: 1e6, Y: 1e6}}},
	}
	opts := DefaultOptions()
	opts.Resolution = 10
	opts.BaseHeight = 2
	opts.VerticalScale = 1

	g := BuildGrid(contours, nil, testBounds, opts)
	for i, v := range g.Elevations() {
		if v != 102 {
			t.Fatalf("cell %d: expected 102, got %v", i, v)
		}
	}

	s := BuildSolid(g)
	if s.VertexCount() != g.GridX*g.GridY*2 {
		t.Errorf("expected %d vertices, got %d", g.GridX*g.GridY*2, s.VertexCount())
	}
	if !s.IsClosed() {
		t.Errorf("expected closed solid, found %d boundary edges", s.BoundaryEdges())
	}
}

func TestBuildGridRelativeToLowestContour(t *testing.T) {
	opts := DefaultOptions()
	opts.Resolution = 6
	opts.BaseHeight = 2
	g := BuildGrid([]feature.ContourSample{coveringContour(testBounds, 100, 5)}, nil, testBounds, opts)
	if g.MinElevation != 100 {
		t.Errorf("expected min elevation 100, got %f", g.MinElevation)
	}
	lo, hi := g.MinMax()
	if lo != 2 || hi != 2 {
		t.Errorf("expected every cell at base height 2, got [%v, %v]", lo, hi)
	}
}

func TestBuildGridClampsBeforeScaling(t *testing.T) {
	half := math.Bounds{MinX: -50, MaxX: 0, MinY: -50, MaxY: 50}
	other := math.Bounds{MinX: 5, MaxX: 50, MinY: -50, MaxY: 50}
	contours := []feature.ContourSample{
		coveringContour(half, 0, 5),
		coveringContour(other, 50, 5),
	}
	opts := DefaultOptions()
	opts.Resolution = 11
	opts.BaseHeight = 1
	opts.VerticalScale = 2
	opts.MaxHeight = 10

	g := BuildGrid(contours, nil, testBounds, opts)
	if v := g.At(0, 5); v != 1 {
		t.Errorf("expected low side at base 1, got %v", v)
	}
	if v := g.At(10, 5); v != 21 {
		t.Errorf("expected high side clamped to 10*2+1=21, got %v", v)
	}
}

func TestBuildGridIsDeterministic(t *testing.T) {
	water := []feature.WaterFeature{
		{Class: "river", Geometry: feature.WaterLine{Points: []math.Vec2{{X: -50, Y: 0}, {X: 50, Y: 10}}}},
	}
	opts := DefaultOptions()
	opts.Resolution = 20
	opts.SmoothingIterations = 3

	a := BuildGrid(hillContours(), water, testBounds, opts)
	b := BuildGrid(hillContours(), water, testBounds, opts)
	if !reflect.DeepEqual(a.Elevations(), b.Elevations()) {
		t.Fatal("expected identical grids for identical input")
	}
	sa, sb := BuildSolid(a), BuildSolid(b)
	if !reflect.DeepEqual(sa, sb) {
		t.Fatal("expected identical solids for identical grids")
	}
}

func TestCollectSamplesSubsamples(t *testing.T) {
	c := feature.ContourSample{Elevation: 5}
	for i := range 25000 {
		c.Points = append(c.Points, math.Vec2{X: float64(i), Y: 0})
	}
	points, minElevation := collectSamples([]feature.ContourSample{c})
	if len(points) > MaxSamplePoints {
		t.Errorf("expected at most %d samples, got %d", MaxSamplePoints, len(points))
	}
	// stride 3 over 25000 points keeps indices 0, 3, ..., 24999
	if len(points) != 8334 {
		t.Errorf("expected 8334 samples, got %d", len(points))
	}
	if minElevation != 5 {
		t.Errorf("expected min elevation 5, got %f", minElevation)
	}
}

func TestCollectSamplesSkipsNonFinite(t *testing.T) {
	contours := []feature.ContourSample{
		{Elevation: gomath.NaN(), Points: []math.Vec2{{X: 0, Y: 0}}},
		{Elevation: -20, Points: []math.Vec2{{X: gomath.Inf(1), Y: 0}}},
		{Elevation: 7, Points: []math.Vec2{{X: 1, Y: 1}}},
	}
	points, minElevation := collectSamples(contours)
	if len(points) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(points))
	}
	if minElevation != 7 {
		t.Errorf("expected min elevation 7, got %f", minElevation)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		ok     bool
	}{
		{"defaults", func(*Options) {}, true},
		{"resolution", func(o *Options) { o.Resolution = 1 }, false},
		{"negative base", func(o *Options) { o.BaseHeight = -1 }, false},
		{"zero scale", func(o *Options) { o.VerticalScale = 0 }, false},
		{"nan max height", func(o *Options) { o.MaxHeight = gomath.NaN() }, false},
		{"finite max height", func(o *Options) { o.MaxHeight = 200 }, true},
		{"negative smoothing", func(o *Options) { o.SmoothingIterations = -1 }, false},
		{"negative water depth", func(o *Options) { o.WaterDepth = -0.5 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid options, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
