package extrude

import (
	stdmath "math"

	"github.com/Faultbox/printgeo/internal/mesh"
	"github.com/Faultbox/printgeo/pkg/math"
)

// TubeSides is the number of sides of a swept tube cross-section. With four
// sides rotated by 45 degrees the tube has a flat top.
const TubeSides = 4

var (
	axisX = math.Vec3{X: 1}
	axisY = math.Vec3{Y: 1}
	axisZ = math.Vec3{Z: 1}
)

// Tube sweeps a square cross-section of the given radius along a smooth
// curve through points and closes both ends. It returns an empty solid when
// fewer than two distinct points remain.
func Tube(points []math.Vec3, radius float64) mesh.Solid {
	curve := NewCatmullRom(points)
	if curve.Len() < 2 || !(radius > 0) {
		return mesh.Solid{}
	}
	path := curve.Sample(SegmentsPerSpan)
	path = dedupe(path)
	if len(path) < 2 {
		return mesh.Solid{}
	}

	var s mesh.Solid
	s.Vertices = make([][3]float32, 0, len(path)*TubeSides+2)

	prev := axisX
	for i, p := range path {
		tangent := pathTangent(path, i).NormalizeOr(prev)
		prev = tangent
		side, up := tubeFrame(tangent)
		for k := range TubeSides {
			angle := stdmath.Pi/4 + float64(k)*2*stdmath.Pi/TubeSides
			offset := side.Scale(stdmath.Cos(angle)).Add(up.Scale(stdmath.Sin(angle)))
			s.AddVertex(p.Add(offset.Scale(radius)))
		}
	}

	ring := func(i, k int) uint32 {
		return uint32(i*TubeSides + k%TubeSides)
	}
	for i := 0; i < len(path)-1; i++ {
		for k := range TubeSides {
			s.AddQuad(ring(i, k), ring(i+1, k), ring(i+1, k+1), ring(i, k+1))
		}
	}

	last := len(path) - 1
	start := s.AddVertex(path[0])
	end := s.AddVertex(path[last])
	for k := range TubeSides {
		s.AddTriangle(start, ring(0, k), ring(0, k+1))
		s.AddTriangle(end, ring(last, k+1), ring(last, k))
	}
	return s
}

// tubeFrame returns the side and up vectors of the cross-section for a unit
// tangent. side is horizontal whenever the tangent is not vertical.
func tubeFrame(tangent math.Vec3) (side, up math.Vec3) {
	side = tangent.Cross(axisZ)
	if side.Length() < 1e-6 {
		side = tangent.Cross(axisY)
	}
	side = side.NormalizeOr(axisX)
	up = side.Cross(tangent).Normalize()
	return side, up
}

// pathTangent returns the unnormalized direction of the path at sample i.
func pathTangent(path []math.Vec3, i int) math.Vec3 {
	switch {
	case i == 0:
		return path[1].Sub(path[0])
	case i == len(path)-1:
		return path[i].Sub(path[i-1])
	}
	return path[i+1].Sub(path[i-1])
}

func dedupe(path []math.Vec3) []math.Vec3 {
	out := path[:0:0]
	for _, p := range path {
		if len(out) > 0 && out[len(out)-1].Distance(p) < 1e-6 {
			continue
		}
		out = append(out, p)
	}
	return out
}
