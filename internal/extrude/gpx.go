package extrude

import (
	stdmath "math"

	"github.com/Faultbox/printgeo/internal/feature"
	"github.com/Faultbox/printgeo/internal/mesh"
	"github.com/Faultbox/printgeo/internal/terrain"
	"github.com/Faultbox/printgeo/pkg/math"
)

const (
	// DefaultTrackRadius is the track tube radius in meters.
	DefaultTrackRadius = 2.0
	// DefaultWallThickness is the width of the support wall under the track.
	DefaultWallThickness = 1.0
	// DefaultTrackClearance is the minimum height of the track above terrain.
	DefaultTrackClearance = 5.0

	unknownElevationClearance = 10.0
	flatTrackLift             = 0.2
	minWallHeight             = 0.1
)

// GpxOptions controls how a track is placed and sized.
type GpxOptions struct {
	Radius         float64 // Tube radius
	WallThickness  float64 // Thickness of the supporting wall
	MinClearance   float64 // Minimum height above the terrain
	VerticalOffset float64 // Added to every track height
}

// DefaultGpxOptions returns the default track options.
func DefaultGpxOptions() GpxOptions {
	return GpxOptions{
		Radius:        DefaultTrackRadius,
		WallThickness: DefaultWallThickness,
		MinClearance:  DefaultTrackClearance,
	}
}

// TrackSolids holds the two solids produced for a track.
type TrackSolids struct {
	Tube mesh.Solid
	Wall mesh.Solid
}

// BuildTrack projects every segment of track, drops points outside the
// grid and renders the rest as a raised tube on a wall reaching down to the
// terrain. Segments left with fewer than two points produce nothing.
func BuildTrack(track feature.GpxTrack, proj feature.Projection, grid *terrain.HeightGrid, opts GpxOptions) (TrackSolids, Stats) {
	var out TrackSolids
	var stats Stats
	for _, seg := range track.Segments {
		tops, grounds := placeSegment(seg, proj, grid, opts)
		if len(tops) < 2 {
			stats.Skipped++
			continue
		}
		tube := Tube(tops, opts.Radius)
		wall := TrackWall(tops, grounds, opts.WallThickness)
		if tube.IsEmpty() && wall.IsEmpty() {
			stats.Skipped++
			continue
		}
		out.Tube.Append(tube)
		out.Wall.Append(wall)
		stats.Built++
	}
	return out, stats
}

// placeSegment returns the track centerline and the terrain height under
// each kept point.
func placeSegment(seg []feature.GpxPoint, proj feature.Projection, grid *terrain.HeightGrid, opts GpxOptions) ([]math.Vec3, []float64) {
	tops := make([]math.Vec3, 0, len(seg))
	grounds := make([]float64, 0, len(seg))
	for _, pt := range seg {
		p := proj.Project(pt.Lat, pt.Lon)
		if !p.IsFinite() || !grid.Contains(p) {
			continue
		}
		ground := grid.InterpolatedHeightAt(p)
		tops = append(tops, math.Vec3{X: p.X, Y: p.Y, Z: TrackHeight(pt.Elevation, ground, grid, opts)})
		grounds = append(grounds, ground)
	}
	return tops, grounds
}

// TrackHeight returns the model height of a track point given its recorded
// elevation (nil when unknown) and the terrain height beneath it.
func TrackHeight(elevation *float64, ground float64, grid *terrain.HeightGrid, opts GpxOptions) float64 {
	var z float64
	switch {
	case grid.Flatten:
		z = ground + flatTrackLift
	case elevation != nil && !stdmath.IsNaN(*elevation) && !stdmath.IsInf(*elevation, 0):
		z = (*elevation-grid.MinElevation)*grid.VerticalScale + grid.BaseHeight
		z = stdmath.Max(z, ground+opts.MinClearance)
	default:
		z = ground + opts.MinClearance + unknownElevationClearance
	}
	return z + opts.VerticalOffset
}

// TrackWall builds a closed ribbon of the given thickness under a track.
// Its top follows tops and its bottom follows grounds. Where a top is
// within minWallHeight of the ground, or below it, the wall is raised to
// stand minWallHeight above the ground.
func TrackWall(tops []math.Vec3, grounds []float64, thickness float64) mesh.Solid {
	type station struct {
		top    math.Vec3
		ground float64
	}
	stations := make([]station, 0, len(tops))
	for i, p := range tops {
		if len(stations) > 0 && stations[len(stations)-1].top.XY().DistanceSq(p.XY()) < 1e-12 {
			continue
		}
		stations = append(stations, station{top: p, ground: grounds[i]})
	}
	n := len(stations)
	if n < 2 || !(thickness > 0) {
		return mesh.Solid{}
	}

	half := thickness / 2
	var s mesh.Solid
	s.Vertices = make([][3]float32, 0, 4*n)
	for i, st := range stations {
		var dir math.Vec2
		if i > 0 {
			dir = dir.Add(st.top.XY().Sub(stations[i-1].top.XY()).Normalize())
		}
		if i < n-1 {
			dir = dir.Add(stations[i+1].top.XY().Sub(st.top.XY()).Normalize())
		}
		if dir.Length() < 1e-9 {
			dir = stations[min(i+1, n-1)].top.XY().Sub(stations[max(i-1, 0)].top.XY())
		}
		dir = dir.Normalize()
		if dir.Length() == 0 {
			dir = math.Vec2{X: 1}
		}
		offset := dir.Perp().Scale(half)

		bottom := st.ground
		top := stdmath.Max(st.top.Z, bottom+minWallHeight)
		c := st.top.XY()
		left, right := c.Add(offset), c.Sub(offset)
		s.AddVertex(math.Vec3{X: left.X, Y: left.Y, Z: top})
		s.AddVertex(math.Vec3{X: right.X, Y: right.Y, Z: top})
		s.AddVertex(math.Vec3{X: right.X, Y: right.Y, Z: bottom})
		s.AddVertex(math.Vec3{X: left.X, Y: left.Y, Z: bottom})
	}

	lt := func(i int) uint32 { return uint32(4 * i) }
	rt := func(i int) uint32 { return uint32(4*i + 1) }
	rb := func(i int) uint32 { return uint32(4*i + 2) }
	lb := func(i int) uint32 { return uint32(4*i + 3) }

	for i := 0; i < n-1; i++ {
		j := i + 1
		s.AddQuad(lt(i), rt(i), rt(j), lt(j))
		s.AddQuad(lb(i), lb(j), rb(j), rb(i))
		s.AddQuad(lb(i), lt(i), lt(j), lb(j))
		s.AddQuad(rb(i), rb(j), rt(j), rt(i))
	}
	s.AddQuad(lb(0), rb(0), rt(0), lt(0))
	last := n - 1
	s.AddQuad(lb(last), lt(last), rt(last), rb(last))
	return s
}
