package extrude

import (
	stdmath "math"

	"github.com/Faultbox/printgeo/pkg/math"
)

// SegmentsPerSpan is the number of curve samples between two control
// points.
const SegmentsPerSpan = 4

// CatmullRom is a centripetal Catmull-Rom curve through a set of control
// points. The curve passes through every control point.
type CatmullRom struct {
	points []math.Vec3
}

// NewCatmullRom builds a curve through points. Consecutive duplicates are
// dropped.
func NewCatmullRom(points []math.Vec3) *CatmullRom {
	out := make([]math.Vec3, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1].Distance(p) < 1e-9 {
			continue
		}
		out = append(out, p)
	}
	return &CatmullRom{points: out}
}

// Len returns the number of control points kept.
func (c *CatmullRom) Len() int {
	return len(c.points)
}

// Sample evaluates the curve with perSpan samples between each pair of
// control points. The result includes both end points.
func (c *CatmullRom) Sample(perSpan int) []math.Vec3 {
	n := len(c.points)
	if n < 2 {
		return append([]math.Vec3(nil), c.points...)
	}
	if perSpan < 1 {
		perSpan = 1
	}
	out := make([]math.Vec3, 0, (n-1)*perSpan+1)
	for i := 0; i < n-1; i++ {
		for j := range perSpan {
			out = append(out, c.spanPoint(i, float64(j)/float64(perSpan)))
		}
	}
	return append(out, c.points[n-1])
}

// control returns point i, extrapolating one step beyond either end.
func (c *CatmullRom) control(i int) math.Vec3 {
	n := len(c.points)
	switch {
	case i < 0:
		return c.points[0].Scale(2).Sub(c.points[1])
	case i >= n:
		return c.points[n-1].Scale(2).Sub(c.points[n-2])
	}
	return c.points[i]
}

// spanPoint evaluates span i (between points i and i+1) at t in [0,1].
func (c *CatmullRom) spanPoint(i int, t float64) math.Vec3 {
	p0, p1, p2, p3 := c.control(i-1), c.control(i), c.control(i+1), c.control(i+2)

	dt0 := stdmath.Sqrt(p0.Distance(p1))
	dt1 := stdmath.Sqrt(p1.Distance(p2))
	dt2 := stdmath.Sqrt(p2.Distance(p3))
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return math.Vec3{
		X: hermite(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, t),
		Y: hermite(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, t),
		Z: hermite(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, t),
	}
}

// hermite evaluates one coordinate of a non-uniform Catmull-Rom span.
func hermite(x0, x1, x2, x3, dt0, dt1, dt2, t float64) float64 {
	t1 := ((x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1) * dt1
	t2 := ((x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2) * dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2
	return c0 + t*(c1+t*(c2+t*c3))
}
