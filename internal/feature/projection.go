package feature

import (
	gomath "math"

	"github.com/Faultbox/printgeo/pkg/math"
)

// MetersPerDegree is the equirectangular scale along a meridian.
const MetersPerDegree = 111320.0

// BoundingBox is a geographic selection in degrees.
type BoundingBox struct {
	North float64 `yaml:"north"`
	South float64 `yaml:"south"`
	East  float64 `yaml:"east"`
	West  float64 `yaml:"west"`
}

// Center returns the (lat, lon) midpoint of the box.
func (b BoundingBox) Center() (lat, lon float64) {
	return (b.North + b.South) / 2, (b.East + b.West) / 2
}

// IsZero reports whether the box was never set.
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

// Projection maps lat/lon to planar meters around a fixed origin using the
// equirectangular approximation. The zero value is centered on (0, 0).
type Projection struct {
	Lat0, Lon0 float64
}

// NewProjection creates a projection centered on (lat0, lon0).
func NewProjection(lat0, lon0 float64) Projection {
	return Projection{Lat0: lat0, Lon0: lon0}
}

// ProjectionFor creates a projection centered on the box.
func ProjectionFor(b BoundingBox) Projection {
	return NewProjection(b.Center())
}

// Project converts a geographic point to planar meters.
func (p Projection) Project(lat, lon float64) math.Vec2 {
	return math.Vec2{
		X: (lon - p.Lon0) * MetersPerDegree * p.cosLat0(),
		Y: (lat - p.Lat0) * MetersPerDegree,
	}
}

// Unproject converts planar meters back to (lat, lon). At the poles the
// longitude collapses to the origin longitude.
func (p Projection) Unproject(v math.Vec2) (lat, lon float64) {
	lat = p.Lat0 + v.Y/MetersPerDegree
	c := p.cosLat0()
	if c == 0 {
		return lat, p.Lon0
	}
	lon = p.Lon0 + v.X/(MetersPerDegree*c)
	return lat, lon
}

func (p Projection) cosLat0() float64 {
	c := gomath.Cos(p.Lat0 * gomath.Pi / 180)
	if gomath.Abs(c) < 1e-12 {
		return 0
	}
	return c
}

// PlanarBounds returns the box corners projected into the planar frame.
func (p Projection) PlanarBounds(b BoundingBox) math.Bounds {
	sw := p.Project(b.South, b.West)
	ne := p.Project(b.North, b.East)
	return math.Bounds{MinX: sw.X, MaxX: ne.X, MinY: sw.Y, MaxY: ne.Y}
}
