package mesh

type edgeKey struct {
	a, b uint32
}

// BoundaryEdges counts undirected edges not shared by exactly two triangles.
// A closed 2-manifold has none.
func (s *Solid) BoundaryEdges() int {
	counts := make(map[edgeKey]int, len(s.Triangles)*3/2)
	for _, t := range s.Triangles {
		for i := range 3 {
			a, b := t[i], t[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			counts[edgeKey{a, b}]++
		}
	}
	bad := 0
	for _, c := range counts {
		if c != 2 {
			bad++
		}
	}
	return bad
}

// IsClosed reports whether every edge is shared by exactly two triangles
// and every shared edge is traversed once in each direction.
func (s *Solid) IsClosed() bool {
	if s.IsEmpty() {
		return false
	}
	if s.BoundaryEdges() != 0 {
		return false
	}
	directed := make(map[edgeKey]int, len(s.Triangles)*3)
	for _, t := range s.Triangles {
		for i := range 3 {
			directed[edgeKey{t[i], t[(i+1)%3]}]++
		}
	}
	for e, c := range directed {
		if c != 1 || directed[edgeKey{e.b, e.a}] != 1 {
			return false
		}
	}
	return true
}

// SignedVolume returns the enclosed volume. It is positive when triangles
// face outward.
func (s *Solid) SignedVolume() float64 {
	var vol float64
	for _, t := range s.Triangles {
		a, b, c := s.Vertices[t[0]], s.Vertices[t[1]], s.Vertices[t[2]]
		ax, ay, az := float64(a[0]), float64(a[1]), float64(a[2])
		bx, by, bz := float64(b[0]), float64(b[1]), float64(b[2])
		cx, cy, cz := float64(c[0]), float64(c[1]), float64(c[2])
		vol += ax*(by*cz-bz*cy) - ay*(bx*cz-bz*cx) + az*(bx*cy-by*cx)
	}
	return vol / 6
}
