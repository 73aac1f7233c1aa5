package math

import "math"

// Bounds is an axis-aligned rectangle in the planar frame.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// EmptyBounds returns bounds that contain nothing and grow on Extend.
func EmptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() Vec2 {
	return Vec2{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Contains reports whether p lies inside or on the edge of b.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Extend returns b grown to include p.
func (b Bounds) Extend(p Vec2) Bounds {
	b.MinX = math.Min(b.MinX, p.X)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxY = math.Max(b.MaxY, p.Y)
	return b
}

// Expand returns b grown by margin on every side.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinX: b.MinX - margin, MaxX: b.MaxX + margin,
		MinY: b.MinY - margin, MaxY: b.MaxY + margin,
	}
}

// SegmentBounds returns the bounding rectangle of segment ab.
func SegmentBounds(a, b Vec2) Bounds {
	return Bounds{
		MinX: math.Min(a.X, b.X), MaxX: math.Max(a.X, b.X),
		MinY: math.Min(a.Y, b.Y), MaxY: math.Max(a.Y, b.Y),
	}
}

// PointInRing reports whether p is inside the ring using ray casting.
// The ring may be open or closed; orientation does not matter.
func PointInRing(p Vec2, ring []Vec2) bool {
	inside := false
	n := len(ring)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// DistToSegment returns the distance from p to the segment ab.
// A zero-length segment degrades to point distance.
func DistToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Scale(t)))
}

// DistToRing returns the distance from p to the nearest edge of the ring,
// including the closing edge.
func DistToRing(p Vec2, ring []Vec2) float64 {
	best := math.Inf(1)
	n := len(ring)
	for i := range n {
		d := DistToSegment(p, ring[i], ring[(i+1)%n])
		if d < best {
			best = d
		}
	}
	return best
}

// SignedArea returns the shoelace area of the ring. Counter-clockwise rings
// are positive.
func SignedArea(ring []Vec2) float64 {
	var sum float64
	n := len(ring)
	for i := range n {
		sum += ring[i].Cross(ring[(i+1)%n])
	}
	return sum / 2
}

// RingCentroid returns the area centroid of the ring, or the vertex average
// when the ring has no area.
func RingCentroid(ring []Vec2) Vec2 {
	if len(ring) == 0 {
		return Vec2{}
	}
	area := SignedArea(ring)
	if math.Abs(area) < 1e-12 {
		var sum Vec2
		for _, p := range ring {
			sum = sum.Add(p)
		}
		return sum.Scale(1 / float64(len(ring)))
	}
	var cx, cy float64
	n := len(ring)
	for i := range n {
		a, b := ring[i], ring[(i+1)%n]
		c := a.Cross(b)
		cx += (a.X + b.X) * c
		cy += (a.Y + b.Y) * c
	}
	return Vec2{cx / (6 * area), cy / (6 * area)}
}

// CleanRing drops the closing duplicate and consecutive repeated points.
func CleanRing(ring []Vec2) []Vec2 {
	out := make([]Vec2, 0, len(ring))
	for _, p := range ring {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
