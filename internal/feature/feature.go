// Package feature defines the planar feature model consumed by the terrain
// and extrusion stages.
package feature

import (
	"time"

	"github.com/Faultbox/printgeo/pkg/math"
)

// ContourSample is a polyline along which a single elevation holds.
type ContourSample struct {
	Elevation float64
	Points    []math.Vec2
}

// BuildingFootprint is a building outline with its above-ground heights.
// Rings[0] is the outer ring, following rings are holes.
type BuildingFootprint struct {
	ID        string
	Rings     [][]math.Vec2
	Height    float64 // Height above ground of the roof
	MinHeight float64 // Height above ground where the building starts
	Centroid  math.Vec2 // Terrain anchor; the outer ring centroid when zero
}

// Outer returns the outer ring, or nil for an empty footprint.
func (b BuildingFootprint) Outer() []math.Vec2 {
	if len(b.Rings) == 0 {
		return nil
	}
	return b.Rings[0]
}

// RoadPolyline is a road centerline tagged with its class.
type RoadPolyline struct {
	Class  string
	Points []math.Vec2
}

// WaterGeometry is implemented by WaterLine and WaterPolygon only.
type WaterGeometry interface {
	isWaterGeometry()
}

// WaterLine is a river, stream or canal centerline.
type WaterLine struct {
	Points []math.Vec2
}

// WaterPolygon is a lake or pond. Rings[0] is the outer ring.
type WaterPolygon struct {
	Rings [][]math.Vec2
}

func (WaterLine) isWaterGeometry()    {}
func (WaterPolygon) isWaterGeometry() {}

// WaterFeature is a water body with its class ("river", "stream", "lake", ...).
type WaterFeature struct {
	Class    string
	Geometry WaterGeometry
}

// GpxPoint is a geographic track point. Elevation is nil when the source
// carries none.
type GpxPoint struct {
	Lat       float64
	Lon       float64
	Elevation *float64
	Time      *time.Time
}

// GpxTrack is a named track made of independent segments.
type GpxTrack struct {
	Name     string
	Segments [][]GpxPoint
}

// PointCount returns the number of points across all segments.
func (t GpxTrack) PointCount() int {
	n := 0
	for _, seg := range t.Segments {
		n += len(seg)
	}
	return n
}

// Set holds every feature list of one generation request.
type Set struct {
	Contours  []ContourSample
	Buildings []BuildingFootprint
	Roads     []RoadPolyline
	Water     []WaterFeature
	Track     *GpxTrack
}
