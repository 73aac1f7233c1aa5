package terrain

import (
	gomath "math"

	"github.com/Faultbox/printgeo/internal/feature"
	"github.com/Faultbox/printgeo/pkg/math"
)

// LakeRampWidth is the band inside a lake shore over which depth ramps up.
const LakeRampWidth = 10.0

// CarveMargin is added to the rendering width of a water line when carving,
// so the channel is wider than the tube drawn into it.
const CarveMargin = 4.0

// waterWidths holds the rendering width in meters per water line class.
var waterWidths = map[string]float64{
	"river":  8,
	"canal":  6,
	"stream": 2,
	"drain":  1,
	"ditch":  1,
}

const defaultWaterWidth = 2.0

// WaterRenderWidth returns the visible width of a water line class.
func WaterRenderWidth(class string) float64 {
	if w, ok := waterWidths[class]; ok {
		return w
	}
	return defaultWaterWidth
}

// WaterCarveHalfWidth returns the half-width of the channel carved for a
// water line class.
func WaterCarveHalfWidth(class string) float64 {
	return (WaterRenderWidth(class) + CarveMargin) / 2
}

type riverSegment struct {
	a, b      math.Vec2
	halfWidth float64
	box       math.Bounds // Segment bounds expanded by halfWidth
}

type lake struct {
	ring []math.Vec2
	box  math.Bounds
}

// carver computes the water depth to subtract at a planar point.
type carver struct {
	rivers []riverSegment
	lakes  []lake
	depth  float64
}

func newCarver(water []feature.WaterFeature, depth float64) *carver {
	c := &carver{depth: depth}
	for _, w := range water {
		switch geom := w.Geometry.(type) {
		case feature.WaterLine:
			hw := WaterCarveHalfWidth(w.Class)
			for i := 0; i+1 < len(geom.Points); i++ {
				a, b := geom.Points[i], geom.Points[i+1]
				if !a.IsFinite() || !b.IsFinite() {
					continue
				}
				c.rivers = append(c.rivers, riverSegment{
					a: a, b: b, halfWidth: hw,
					box: math.SegmentBounds(a, b).Expand(hw),
				})
			}
		case feature.WaterPolygon:
			if len(geom.Rings) == 0 {
				continue
			}
			ring := math.CleanRing(geom.Rings[0])
			if len(ring) < 3 {
				continue
			}
			box := math.EmptyBounds()
			for _, p := range ring {
				box = box.Extend(p)
			}
			c.lakes = append(c.lakes, lake{ring: ring, box: box})
		}
	}
	return c
}

// Depth returns the carving depth at p. Where a river runs into a lake the
// deeper of the two profiles applies, so depth never exceeds the maximum.
func (c *carver) Depth(p math.Vec2) float64 {
	if c == nil || c.depth == 0 {
		return 0
	}
	return max(c.riverDepth(p), c.lakeDepth(p))
}

// riverDepth applies a parabolic cross-section around the nearest segment.
func (c *carver) riverDepth(p math.Vec2) float64 {
	best := gomath.Inf(1)
	halfWidth := 0.0
	for i := range c.rivers {
		s := &c.rivers[i]
		if !s.box.Contains(p) {
			continue
		}
		if d := math.DistToSegment(p, s.a, s.b); d < best {
			best = d
			halfWidth = s.halfWidth
		}
	}
	if halfWidth <= 0 || best >= halfWidth {
		return 0
	}
	r := best / halfWidth
	return c.depth * (1 - r*r)
}

// lakeDepth ramps from the shore with a quarter sine over LakeRampWidth.
// Lakes are assumed disjoint: the first containing lake wins.
func (c *carver) lakeDepth(p math.Vec2) float64 {
	for i := range c.lakes {
		l := &c.lakes[i]
		if !l.box.Contains(p) || !math.PointInRing(p, l.ring) {
			continue
		}
		d := math.DistToRing(p, l.ring)
		if d >= LakeRampWidth {
			return c.depth
		}
		return c.depth * gomath.Sin(gomath.Pi/2*d/LakeRampWidth)
	}
	return 0
}
