// Package generate runs the full pipeline from features to solids: height
// grid, terrain solid, then every feature extruder against the finished
// grid.
package generate

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/printgeo/internal/extrude"
	"github.com/Faultbox/printgeo/internal/feature"
	"github.com/Faultbox/printgeo/internal/logger"
	"github.com/Faultbox/printgeo/internal/mesh"
	"github.com/Faultbox/printgeo/internal/terrain"
	"github.com/Faultbox/printgeo/pkg/math"
)

// ErrInvalidBounds is returned for inverted or non-finite bounds.
var ErrInvalidBounds = errors.New("invalid bounds")

// Input is everything a run consumes. Projection is used for the GPX track
// only; every other feature is already planar.
type Input struct {
	Features   feature.Set
	Bounds     math.Bounds
	Projection feature.Projection
}

// Stats counts built and skipped features per layer.
type Stats struct {
	Buildings  extrude.Stats
	Roads      extrude.Stats
	WaterLines extrude.Stats
	Track      extrude.Stats
}

// Result holds the grid and one solid per layer. Disabled or empty layers
// have empty solids.
type Result struct {
	Grid       *terrain.HeightGrid
	Terrain    mesh.Solid
	Buildings  mesh.Solid
	Roads      mesh.Solid
	WaterLines mesh.Solid
	TrackTube  mesh.Solid
	TrackWall  mesh.Solid
	Stats      Stats
}

// Solids returns the non-empty solids in a fixed order, terrain first.
func (r *Result) Solids() []mesh.Solid {
	all := []mesh.Solid{r.Terrain, r.Buildings, r.Roads, r.WaterLines, r.TrackTube, r.TrackWall}
	out := all[:0]
	for _, s := range all {
		if !s.IsEmpty() {
			out = append(out, s)
		}
	}
	return out
}

// Merged returns all solids combined into one.
func (r *Result) Merged() mesh.Solid {
	return mesh.Merge(r.Solids()...)
}

// Run builds the height grid and every enabled layer. Extruders run
// concurrently once the grid is finished; ctx is checked between stages.
func Run(ctx context.Context, in Input, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := validBounds(in.Bounds); err != nil {
		return nil, err
	}
	log := logger.Named("generate")

	start := time.Now()
	grid := terrain.BuildGrid(in.Features.Contours, in.Features.Water, in.Bounds, opts.Terrain)
	lo, hi := grid.MinMax()
	log.Info("height grid built",
		zap.Int("resolution", grid.GridX),
		zap.Int("contours", len(in.Features.Contours)),
		zap.Float64("min_elevation", grid.MinElevation),
		zap.Float32("lowest", lo),
		zap.Float32("highest", hi),
		zap.Duration("took", time.Since(start)))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Grid: grid}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t := time.Now()
		res.Terrain = terrain.BuildSolid(grid)
		log.Debug("terrain solid assembled",
			zap.Int("triangles", res.Terrain.TriangleCount()),
			zap.Duration("took", time.Since(t)))
		return nil
	})
	if opts.Layers.Buildings {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := time.Now()
			res.Buildings, res.Stats.Buildings = extrude.BuildBuildings(in.Features.Buildings, grid, opts.Buildings)
			logStage(log, "buildings", res.Stats.Buildings, time.Since(t))
			return nil
		})
	}
	if opts.Layers.Roads {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := time.Now()
			res.Roads, res.Stats.Roads = extrude.BuildRoads(in.Features.Roads, grid, opts.Roads)
			logStage(log, "roads", res.Stats.Roads, time.Since(t))
			return nil
		})
	}
	if opts.Layers.WaterLines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := time.Now()
			res.WaterLines, res.Stats.WaterLines = extrude.BuildWaterLines(in.Features.Water, grid, opts.WaterLines)
			logStage(log, "water lines", res.Stats.WaterLines, time.Since(t))
			return nil
		})
	}
	if opts.Layers.Track && in.Features.Track != nil {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := time.Now()
			track, stats := extrude.BuildTrack(*in.Features.Track, in.Projection, grid, opts.Gpx)
			res.TrackTube, res.TrackWall, res.Stats.Track = track.Tube, track.Wall, stats
			logStage(log, "track", stats, time.Since(t))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("generation complete",
		zap.Int("solids", len(res.Solids())),
		zap.Duration("took", time.Since(start)))
	return res, nil
}

func logStage(log *zap.Logger, stage string, stats extrude.Stats, took time.Duration) {
	log.Debug(stage+" extruded",
		zap.Int("built", stats.Built),
		zap.Int("skipped", stats.Skipped),
		zap.Duration("took", took))
}

func validBounds(b math.Bounds) error {
	for _, v := range []float64{b.MinX, b.MaxX, b.MinY, b.MaxY} {
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate in %+v", ErrInvalidBounds, b)
		}
	}
	if b.IsEmpty() {
		return fmt.Errorf("%w: min exceeds max in %+v", ErrInvalidBounds, b)
	}
	return nil
}
