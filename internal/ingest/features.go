// Package ingest reads GeoJSON feature collections and GPX tracks and
// converts them into the planar feature model.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/peterstace/simplefeatures/geom"
	"go.uber.org/zap"

	"github.com/Faultbox/printgeo/internal/feature"
	"github.com/Faultbox/printgeo/internal/logger"
	"github.com/Faultbox/printgeo/pkg/math"
)

// Feature layers recognised in the "layer" property.
const (
	LayerContour        = "contour"
	LayerBuilding       = "building"
	LayerTransportation = "transportation"
	LayerWater          = "water"
	LayerWaterway       = "waterway"
)

// DefaultBuildingHeight is used when a building carries no height.
const DefaultBuildingHeight = 10.0

var (
	ErrNoFeatures     = errors.New("no usable features")
	ErrInvalidGeoJSON = errors.New("invalid GeoJSON")
)

// Collection is a decoded feature file projected into the planar frame.
type Collection struct {
	Features   feature.Set
	Box        feature.BoundingBox
	Projection feature.Projection
	Bounds     math.Bounds
	Skipped    int // Features with unknown layers or unusable geometry
}

type rawCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	ID         any             `json:"id"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type decoded struct {
	raw rawFeature
	g   geom.Geometry
}

// LoadFeatures reads a GeoJSON FeatureCollection from path. When box is
// zero it is derived from the envelope of all features.
func LoadFeatures(path string, box feature.BoundingBox) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFeatures(f, box)
}

// ReadFeatures reads a GeoJSON FeatureCollection in lon/lat order.
func ReadFeatures(r io.Reader, box feature.BoundingBox) (*Collection, error) {
	var rc rawCollection
	if err := json.NewDecoder(r).Decode(&rc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGeoJSON, err)
	}
	if rc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: expected FeatureCollection, got %q", ErrInvalidGeoJSON, rc.Type)
	}

	log := logger.Named("ingest")
	c := &Collection{}
	items := make([]decoded, 0, len(rc.Features))
	env := geom.Envelope{}
	for i, rf := range rc.Features {
		if len(rf.Geometry) == 0 || string(rf.Geometry) == "null" {
			c.Skipped++
			continue
		}
		g, err := geom.UnmarshalGeoJSON(rf.Geometry, geom.NoValidate{})
		if err != nil {
			log.Debug("skipping feature", zap.Int("index", i), zap.Error(err))
			c.Skipped++
			continue
		}
		items = append(items, decoded{raw: rf, g: g})
		env = env.ExpandToIncludeEnvelope(g.Envelope())
	}
	if len(items) == 0 {
		return nil, ErrNoFeatures
	}

	if box.IsZero() {
		lo, hi, ok := env.MinMaxXYs()
		if !ok {
			return nil, ErrNoFeatures
		}
		box = feature.BoundingBox{North: hi.Y, South: lo.Y, East: hi.X, West: lo.X}
	}
	c.Box = box
	c.Projection = feature.ProjectionFor(box)
	c.Bounds = c.Projection.PlanarBounds(box)

	for _, it := range items {
		if !c.add(it) {
			c.Skipped++
		}
	}
	set := c.Features
	if len(set.Contours)+len(set.Buildings)+len(set.Roads)+len(set.Water) == 0 {
		return nil, ErrNoFeatures
	}

	log.Info("features loaded",
		zap.Int("contours", len(set.Contours)),
		zap.Int("buildings", len(set.Buildings)),
		zap.Int("roads", len(set.Roads)),
		zap.Int("water", len(set.Water)),
		zap.Int("skipped", c.Skipped))
	return c, nil
}

// add converts one decoded feature into the set. It reports false when the
// feature was not usable.
func (c *Collection) add(it decoded) bool {
	props := it.raw.Properties
	layer, _ := props["layer"].(string)
	class, _ := props["class"].(string)

	switch layer {
	case LayerContour:
		elevation, ok := number(props, "ele")
		if !ok {
			elevation, ok = number(props, "height")
		}
		if !ok {
			return false
		}
		lines := c.lines(it.g)
		for _, pts := range lines {
			c.Features.Contours = append(c.Features.Contours, feature.ContourSample{Elevation: elevation, Points: pts})
		}
		return len(lines) > 0

	case LayerBuilding:
		height, ok := number(props, "render_height")
		if !ok {
			height, ok = number(props, "height")
		}
		if !ok {
			height = DefaultBuildingHeight
		}
		minHeight, _ := number(props, "render_min_height")
		polys := c.polygons(it.g)
		for i, p := range polys {
			c.Features.Buildings = append(c.Features.Buildings, feature.BuildingFootprint{
				ID:        featureID(it.raw.ID, i, len(polys)),
				Rings:     p.rings,
				Height:    height,
				MinHeight: minHeight,
				Centroid:  p.centroid,
			})
		}
		return len(polys) > 0

	case LayerTransportation:
		lines := c.lines(it.g)
		for _, pts := range lines {
			c.Features.Roads = append(c.Features.Roads, feature.RoadPolyline{Class: class, Points: pts})
		}
		return len(lines) > 0

	case LayerWater, LayerWaterway:
		n := 0
		for _, pts := range c.lines(it.g) {
			c.Features.Water = append(c.Features.Water, feature.WaterFeature{Class: class, Geometry: feature.WaterLine{Points: pts}})
			n++
		}
		for _, p := range c.polygons(it.g) {
			c.Features.Water = append(c.Features.Water, feature.WaterFeature{Class: class, Geometry: feature.WaterPolygon{Rings: p.rings}})
			n++
		}
		return n > 0
	}
	return false
}

type planarPolygon struct {
	rings    [][]math.Vec2
	centroid math.Vec2
}

// lines returns the projected line strings of g. Polygons yield nothing.
func (c *Collection) lines(g geom.Geometry) [][]math.Vec2 {
	var out [][]math.Vec2
	switch g.Type() {
	case geom.TypeLineString:
		if pts := c.project(g.AsLineString().Coordinates()); len(pts) >= 2 {
			out = append(out, pts)
		}
	case geom.TypeMultiLineString:
		mls := g.AsMultiLineString()
		for i := range mls.NumLineStrings() {
			if pts := c.project(mls.LineStringN(i).Coordinates()); len(pts) >= 2 {
				out = append(out, pts)
			}
		}
	}
	return out
}

// polygons returns the projected polygons of g. Lines yield nothing.
func (c *Collection) polygons(g geom.Geometry) []planarPolygon {
	var out []planarPolygon
	switch g.Type() {
	case geom.TypePolygon:
		if p, ok := c.polygon(g.AsPolygon()); ok {
			out = append(out, p)
		}
	case geom.TypeMultiPolygon:
		mp := g.AsMultiPolygon()
		for i := range mp.NumPolygons() {
			if p, ok := c.polygon(mp.PolygonN(i)); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func (c *Collection) polygon(poly geom.Polygon) (planarPolygon, bool) {
	outer := math.CleanRing(c.project(poly.ExteriorRing().Coordinates()))
	if len(outer) < 3 {
		return planarPolygon{}, false
	}
	rings := [][]math.Vec2{outer}
	for i := range poly.NumInteriorRings() {
		hole := math.CleanRing(c.project(poly.InteriorRingN(i).Coordinates()))
		if len(hole) >= 3 {
			rings = append(rings, hole)
		}
	}

	centroid := math.RingCentroid(outer)
	if xy, ok := poly.Centroid().XY(); ok {
		centroid = c.Projection.Project(xy.Y, xy.X)
	}
	return planarPolygon{rings: rings, centroid: centroid}, true
}

// project converts a lon/lat sequence to planar points, dropping
// non-finite coordinates.
func (c *Collection) project(seq geom.Sequence) []math.Vec2 {
	out := make([]math.Vec2, 0, seq.Length())
	for i := range seq.Length() {
		xy := seq.GetXY(i)
		p := c.Projection.Project(xy.Y, xy.X)
		if p.IsFinite() {
			out = append(out, p)
		}
	}
	return out
}

// number reads a numeric property. Numeric strings are accepted.
func number(props map[string]any, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

func featureID(id any, part, parts int) string {
	var s string
	switch v := id.(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if parts > 1 {
		s = fmt.Sprintf("%s#%d", s, part)
	}
	return s
}
