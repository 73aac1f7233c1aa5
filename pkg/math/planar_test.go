package math

import (
	"math"
	"testing"
)

var unitSquare = []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

func TestPointInRing(t *testing.T) {
	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"center", Vec2{5, 5}, true},
		{"outside right", Vec2{15, 5}, false},
		{"outside below", Vec2{5, -1}, false},
		{"near corner inside", Vec2{0.1, 0.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInRing(tt.p, unitSquare); got != tt.want {
				t.Errorf("PointInRing(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointInRingClosedAndDegenerate(t *testing.T) {
	closed := append(append([]Vec2{}, unitSquare...), unitSquare[0])
	if !PointInRing(Vec2{5, 5}, closed) {
		t.Error("expected point inside closed ring")
	}
	if PointInRing(Vec2{0, 0}, []Vec2{{0, 0}, {1, 1}}) {
		t.Error("expected two-point ring to contain nothing")
	}
}

func TestDistToSegment(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{10, 0}
	if d := DistToSegment(Vec2{5, 3}, a, b); d != 3 {
		t.Errorf("expected 3, got %v", d)
	}
	if d := DistToSegment(Vec2{13, 4}, a, b); d != 5 {
		t.Errorf("expected 5 past the end, got %v", d)
	}
	if d := DistToSegment(Vec2{3, 4}, a, a); d != 5 {
		t.Errorf("expected 5 for zero-length segment, got %v", d)
	}
}

func TestDistToRing(t *testing.T) {
	if d := DistToRing(Vec2{5, 2}, unitSquare); d != 2 {
		t.Errorf("expected 2, got %v", d)
	}
	if d := DistToRing(Vec2{1, 5}, unitSquare); d != 1 {
		t.Errorf("expected 1 to closing edge, got %v", d)
	}
}

func TestSignedAreaAndCentroid(t *testing.T) {
	if a := SignedArea(unitSquare); a != 100 {
		t.Errorf("expected area 100, got %v", a)
	}
	reversed := []Vec2{{0, 10}, {10, 10}, {10, 0}, {0, 0}}
	if a := SignedArea(reversed); a != -100 {
		t.Errorf("expected area -100, got %v", a)
	}
	c := RingCentroid(unitSquare)
	if math.Abs(c.X-5) > 1e-9 || math.Abs(c.Y-5) > 1e-9 {
		t.Errorf("expected centroid (5,5), got %v", c)
	}
	line := RingCentroid([]Vec2{{0, 0}, {2, 0}})
	if line != (Vec2{1, 0}) {
		t.Errorf("expected degenerate centroid (1,0), got %v", line)
	}
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Error("expected empty bounds")
	}
	b = b.Extend(Vec2{1, 2}).Extend(Vec2{-1, 5})
	if b.MinX != -1 || b.MaxX != 1 || b.MinY != 2 || b.MaxY != 5 {
		t.Errorf("unexpected bounds %+v", b)
	}
	if !b.Contains(Vec2{0, 3}) || b.Contains(Vec2{2, 3}) {
		t.Error("Contains mismatch")
	}
	if b.Width() != 2 || b.Height() != 3 {
		t.Errorf("expected 2x3, got %vx%v", b.Width(), b.Height())
	}
}

func TestCleanRing(t *testing.T) {
	ring := []Vec2{{0, 0}, {1, 0}, {1, 0}, {1, 1}, {0, 0}}
	got := CleanRing(ring)
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %d: %v", len(got), got)
	}
}
