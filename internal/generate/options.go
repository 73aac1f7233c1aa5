package generate

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/multierr"

	"github.com/Faultbox/printgeo/internal/extrude"
	"github.com/Faultbox/printgeo/internal/terrain"
)

// ErrInvalidOptions wraps every option validation failure.
var ErrInvalidOptions = errors.New("invalid options")

// Layers selects which feature solids are produced. Terrain is always
// produced.
type Layers struct {
	Buildings  bool
	Roads      bool
	WaterLines bool
	Track      bool
}

// Options bundles the per-stage options of a run.
type Options struct {
	Terrain    terrain.Options
	Buildings  extrude.BuildingOptions
	Roads      extrude.RoadOptions
	WaterLines extrude.RoadOptions
	Gpx        extrude.GpxOptions
	Layers     Layers
}

// DefaultOptions returns options producing every layer.
func DefaultOptions() Options {
	return Options{
		Terrain:    terrain.DefaultOptions(),
		Buildings:  extrude.DefaultBuildingOptions(),
		Roads:      extrude.DefaultRoadOptions(),
		WaterLines: extrude.DefaultRoadOptions(),
		Gpx:        extrude.DefaultGpxOptions(),
		Layers:     Layers{Buildings: true, Roads: true, WaterLines: true, Track: true},
	}
}

// Validate range-checks all options and reports every violation.
func (o Options) Validate() error {
	var err error
	err = multierr.Append(err, o.Terrain.Validate())
	err = multierr.Append(err, positive("building vertical scale", o.Buildings.VerticalScale))
	err = multierr.Append(err, positive("building horizontal scale", o.Buildings.HorizontalScale))
	err = multierr.Append(err, positive("road width scale", o.Roads.WidthScale))
	err = multierr.Append(err, positive("water line width scale", o.WaterLines.WidthScale))
	err = multierr.Append(err, positive("track radius", o.Gpx.Radius))
	err = multierr.Append(err, positive("track wall thickness", o.Gpx.WallThickness))
	err = multierr.Append(err, nonNegative("track clearance", o.Gpx.MinClearance))
	if !finite(o.Gpx.VerticalOffset) {
		err = multierr.Append(err, fmt.Errorf("track vertical offset must be finite, got %v", o.Gpx.VerticalOffset))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

func positive(name string, v float64) error {
	if !(v > 0) || !finite(v) {
		return fmt.Errorf("%s must be > 0, got %v", name, v)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if !(v >= 0) || !finite(v) {
		return fmt.Errorf("%s must be >= 0, got %v", name, v)
	}
	return nil
}

func finite(v float64) bool {
	return !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
}
