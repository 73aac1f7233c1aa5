// Package config handles generation settings loading and management.
package config

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/printgeo/internal/extrude"
	"github.com/Faultbox/printgeo/internal/generate"
	"github.com/Faultbox/printgeo/internal/terrain"
)

// Config holds all generation settings.
type Config struct {
	Terrain   TerrainConfig   `yaml:"terrain"`
	Buildings BuildingsConfig `yaml:"buildings"`
	Roads     RoadsConfig     `yaml:"roads"`
	Water     WaterConfig     `yaml:"water"`
	Gpx       GpxConfig       `yaml:"gpx"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TerrainConfig holds height grid settings.
type TerrainConfig struct {
	Resolution    int      `yaml:"resolution"`
	BaseHeight    float64  `yaml:"base_height"`
	VerticalScale float64  `yaml:"vertical_scale"`
	MaxHeight     *float64 `yaml:"max_height,omitempty"` // Unbounded when unset
	Smoothing     int      `yaml:"smoothing"`
	Flatten       bool     `yaml:"flatten"`
}

// BuildingsConfig holds building extrusion settings.
type BuildingsConfig struct {
	Enabled         bool    `yaml:"enabled"`
	VerticalScale   float64 `yaml:"vertical_scale"`
	HorizontalScale float64 `yaml:"horizontal_scale"`
}

// RoadsConfig holds road tube settings.
type RoadsConfig struct {
	Enabled    bool    `yaml:"enabled"`
	WidthScale float64 `yaml:"width_scale"`
}

// WaterConfig holds carving depth and water line tube settings.
type WaterConfig struct {
	Depth      float64 `yaml:"depth"`
	Lines      bool    `yaml:"lines"` // Render water lines as tubes
	WidthScale float64 `yaml:"width_scale"`
}

// GpxConfig holds track settings.
type GpxConfig struct {
	Radius         float64 `yaml:"radius"`
	WallThickness  float64 `yaml:"wall_thickness"`
	MinClearance   float64 `yaml:"min_clearance"`
	VerticalOffset float64 `yaml:"vertical_offset"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	STL          string `yaml:"stl"`
	Preview      string `yaml:"preview"`
	PreviewWidth int    `yaml:"preview_width"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Resolution:    terrain.DefaultResolution,
			BaseHeight:    terrain.DefaultBaseHeight,
			VerticalScale: 1,
		},
		Buildings: BuildingsConfig{
			Enabled:         true,
			VerticalScale:   1,
			HorizontalScale: 1,
		},
		Roads: RoadsConfig{
			Enabled:    true,
			WidthScale: 1,
		},
		Water: WaterConfig{
			Depth:      terrain.DefaultWaterDepth,
			Lines:      true,
			WidthScale: 1,
		},
		Gpx: GpxConfig{
			Radius:        extrude.DefaultTrackRadius,
			WallThickness: extrude.DefaultWallThickness,
			MinClearance:  extrude.DefaultTrackClearance,
		},
		Output: OutputConfig{
			STL:          "model.stl",
			PreviewWidth: 512,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// TerrainOptions converts the terrain and water sections.
func (c *Config) TerrainOptions() terrain.Options {
	maxHeight := gomath.Inf(1)
	if c.Terrain.MaxHeight != nil {
		maxHeight = *c.Terrain.MaxHeight
	}
	return terrain.Options{
		Resolution:          c.Terrain.Resolution,
		BaseHeight:          c.Terrain.BaseHeight,
		VerticalScale:       c.Terrain.VerticalScale,
		MaxHeight:           maxHeight,
		SmoothingIterations: c.Terrain.Smoothing,
		Flatten:             c.Terrain.Flatten,
		WaterDepth:          c.Water.Depth,
	}
}

// BuildingOptions converts the buildings section.
func (c *Config) BuildingOptions() extrude.BuildingOptions {
	return extrude.BuildingOptions{
		VerticalScale:   c.Buildings.VerticalScale,
		HorizontalScale: c.Buildings.HorizontalScale,
	}
}

// RoadOptions converts the roads section.
func (c *Config) RoadOptions() extrude.RoadOptions {
	return extrude.RoadOptions{WidthScale: c.Roads.WidthScale}
}

// WaterLineOptions converts the water section.
func (c *Config) WaterLineOptions() extrude.RoadOptions {
	return extrude.RoadOptions{WidthScale: c.Water.WidthScale}
}

// GpxOptions converts the gpx section.
func (c *Config) GpxOptions() extrude.GpxOptions {
	return extrude.GpxOptions{
		Radius:         c.Gpx.Radius,
		WallThickness:  c.Gpx.WallThickness,
		MinClearance:   c.Gpx.MinClearance,
		VerticalOffset: c.Gpx.VerticalOffset,
	}
}

// GenerateOptions assembles the options of a full run.
func (c *Config) GenerateOptions() generate.Options {
	return generate.Options{
		Terrain:    c.TerrainOptions(),
		Buildings:  c.BuildingOptions(),
		Roads:      c.RoadOptions(),
		WaterLines: c.WaterLineOptions(),
		Gpx:        c.GpxOptions(),
		Layers: generate.Layers{
			Buildings:  c.Buildings.Enabled,
			Roads:      c.Roads.Enabled,
			WaterLines: c.Water.Lines,
			Track:      true,
		},
	}
}

// Validate range-checks every setting.
func (c *Config) Validate() error {
	if err := c.GenerateOptions().Validate(); err != nil {
		return err
	}
	if c.Output.PreviewWidth < 0 {
		return fmt.Errorf("preview width must be >= 0, got %d", c.Output.PreviewWidth)
	}
	return nil
}
