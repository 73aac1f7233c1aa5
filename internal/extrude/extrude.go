// Package extrude converts buildings, roads, water lines and GPS tracks into
// closed solids anchored to a finished height grid. The grid is only read.
package extrude

// Stats counts how many features of one kind became geometry.
type Stats struct {
	Built   int
	Skipped int
}

