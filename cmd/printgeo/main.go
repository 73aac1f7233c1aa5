// Package main is the entry point for the printgeo model generator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/Faultbox/printgeo/internal/config"
	"github.com/Faultbox/printgeo/internal/export"
	"github.com/Faultbox/printgeo/internal/generate"
	"github.com/Faultbox/printgeo/internal/ingest"
	"github.com/Faultbox/printgeo/internal/logger"
)

func main() {
	var opts config.Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyOptions(cfg, &opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := initLogger(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Debug("configuration loaded",
		zap.String("config_file", opts.ConfigFile),
		zap.Int("resolution", cfg.Terrain.Resolution),
		zap.Float64("vertical_scale", cfg.Terrain.VerticalScale))

	if opts.SaveConfig {
		if err := cfg.Save(); err != nil {
			logger.Error("saving configuration", zap.Error(err))
		} else {
			logger.Info("configuration saved", zap.String("dir", config.ConfigDir()))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, &opts)
	stop()
	if err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}
}

func initLogger(cfg config.LoggingConfig) error {
	if !cfg.JSON {
		return logger.Init(cfg.Level, cfg.LogFile)
	}
	fileCfg := logger.FileConfig{}
	if cfg.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.LogFile)
		fileCfg.JSON = true
	}
	return logger.InitWithFileConfig(cfg.Level, fileCfg, true)
}

func run(ctx context.Context, cfg *config.Config, opts *config.Options) error {
	box, err := config.ParseBoundingBox(opts.BBox)
	if err != nil {
		return err
	}

	collection, err := ingest.LoadFeatures(opts.Features, box)
	if err != nil {
		return fmt.Errorf("reading features: %w", err)
	}
	logger.Info("area selected",
		zap.Float64("west", collection.Box.West),
		zap.Float64("south", collection.Box.South),
		zap.Float64("east", collection.Box.East),
		zap.Float64("north", collection.Box.North),
		zap.Float64("width_m", collection.Bounds.Width()),
		zap.Float64("height_m", collection.Bounds.Height()))

	set := collection.Features
	if opts.Gpx != "" {
		track, err := ingest.LoadGPX(opts.Gpx)
		if err != nil {
			return fmt.Errorf("reading track: %w", err)
		}
		logger.Info("track loaded",
			zap.String("name", track.Name),
			zap.Int("segments", len(track.Segments)),
			zap.Int("points", track.PointCount()))
		set.Track = track
	}

	res, err := generate.Run(ctx, generate.Input{
		Features:   set,
		Bounds:     collection.Bounds,
		Projection: collection.Projection,
	}, cfg.GenerateOptions())
	if err != nil {
		return err
	}

	if err := export.SaveSTL(cfg.Output.STL, res.Solids()...); err != nil {
		return err
	}
	if cfg.Output.Preview != "" {
		if err := export.SavePreview(cfg.Output.Preview, res.Grid, cfg.Output.PreviewWidth); err != nil {
			return err
		}
	}

	if skipped := res.Stats.Buildings.Skipped + res.Stats.Roads.Skipped + res.Stats.WaterLines.Skipped + res.Stats.Track.Skipped; skipped > 0 {
		logger.Warn("some features were skipped", zap.Int("skipped", skipped))
	}
	logger.Info("done",
		zap.Int("buildings", res.Stats.Buildings.Built),
		zap.Int("buildings_skipped", res.Stats.Buildings.Skipped),
		zap.Int("roads", res.Stats.Roads.Built),
		zap.Int("water_lines", res.Stats.WaterLines.Built),
		zap.Int("track_segments", res.Stats.Track.Built))
	return nil
}
