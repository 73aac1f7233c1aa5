package terrain

// Smooth applies iterations of a 3x3 box blur. Every pass reads from a
// snapshot of the previous pass; edge cells average only the neighbours that
// exist. The input slice is not modified.
func Smooth(elevations []float32, gridX, gridY, iterations int) []float32 {
	cur := make([]float32, len(elevations))
	copy(cur, elevations)
	if iterations <= 0 {
		return cur
	}
	next := make([]float32, len(cur))
	for range iterations {
		for iy := range gridY {
			for ix := range gridX {
				var sum float64
				n := 0
				for dy := -1; dy <= 1; dy++ {
					y := iy + dy
					if y < 0 || y >= gridY {
						continue
					}
					for dx := -1; dx <= 1; dx++ {
						x := ix + dx
						if x < 0 || x >= gridX {
							continue
						}
						sum += float64(cur[y*gridX+x])
						n++
					}
				}
				next[iy*gridX+ix] = float32(sum / float64(n))
			}
		}
		cur, next = next, cur
	}
	return cur
}

// TotalVariation sums absolute differences between horizontally and
// vertically adjacent cells.
func TotalVariation(elevations []float32, gridX, gridY int) float64 {
	var tv float64
	for iy := range gridY {
		for ix := range gridX {
			v := float64(elevations[iy*gridX+ix])
			if ix+1 < gridX {
				tv += abs(float64(elevations[iy*gridX+ix+1]) - v)
			}
			if iy+1 < gridY {
				tv += abs(float64(elevations[(iy+1)*gridX+ix]) - v)
			}
		}
	}
	return tv
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
