package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/printgeo/internal/feature"
)

// ErrInvalidBoundingBox is returned for a malformed --bbox value.
var ErrInvalidBoundingBox = errors.New("bounding box must be west,south,east,north")

// Options are the command-line options. Pointer fields are overrides and
// stay nil unless given.
type Options struct {
	ConfigFile string `short:"c" long:"config"   env:"PRINTGEO_CONFIG" description:"Path to configuration file"`
	Features   string `short:"f" long:"features" description:"GeoJSON feature collection (lon/lat)" required:"true"`
	Gpx        string `short:"g" long:"gpx"      description:"GPX track to render"`
	BBox       string `short:"b" long:"bbox"     description:"Area as west,south,east,north; derived from the features when omitted"`
	Out        string `short:"o" long:"out"      description:"Output STL path"`
	Preview    string `short:"p" long:"preview"  description:"Write a heightmap preview PNG"`
	SaveConfig bool   `long:"save-config"          description:"Store the effective configuration in the user config directory"`

	Debug   bool   `short:"d" long:"debug"    env:"PRINTGEO_DEBUG" description:"Enable debug logging"`
	LogFile string `long:"log-file" description:"Also log to a rotating file"`

	Resolution    *int     `short:"r" long:"resolution"     description:"Grid cells per side"`
	BaseHeight    *float64 `long:"base-height"              description:"Solid thickness under the lowest point"`
	VerticalScale *float64 `short:"z" long:"vertical-scale" description:"Terrain vertical exaggeration"`
	MaxHeight     *float64 `long:"max-height"               description:"Clamp on relative elevation"`
	Smoothing     *int     `short:"s" long:"smoothing"      description:"Box blur passes"`
	Flatten       bool     `long:"flatten"                  description:"Ignore elevation and print a flat base"`
	WaterDepth    *float64 `long:"water-depth"              description:"Carving depth of rivers and lakes"`

	NoBuildings  bool `long:"no-buildings"   description:"Skip buildings"`
	NoRoads      bool `long:"no-roads"       description:"Skip roads"`
	NoWaterLines bool `long:"no-water-lines" description:"Do not render water lines (carving still applies)"`

	GpxRadius *float64 `long:"gpx-radius" description:"Track tube radius"`
	GpxOffset *float64 `long:"gpx-offset" description:"Extra height added to the track"`
}

// ApplyOptions applies command-line overrides to cfg (highest priority).
func ApplyOptions(cfg *Config, opts *Options) {
	if opts.Debug {
		cfg.Logging.Level = "debug"
	}
	if opts.LogFile != "" {
		cfg.Logging.LogFile = opts.LogFile
	}
	if opts.Out != "" {
		cfg.Output.STL = opts.Out
	}
	if opts.Preview != "" {
		cfg.Output.Preview = opts.Preview
	}

	if opts.Resolution != nil {
		cfg.Terrain.Resolution = *opts.Resolution
	}
	if opts.BaseHeight != nil {
		cfg.Terrain.BaseHeight = *opts.BaseHeight
	}
	if opts.VerticalScale != nil {
		cfg.Terrain.VerticalScale = *opts.VerticalScale
	}
	if opts.MaxHeight != nil {
		v := *opts.MaxHeight
		cfg.Terrain.MaxHeight = &v
	}
	if opts.Smoothing != nil {
		cfg.Terrain.Smoothing = *opts.Smoothing
	}
	if opts.Flatten {
		cfg.Terrain.Flatten = true
	}
	if opts.WaterDepth != nil {
		cfg.Water.Depth = *opts.WaterDepth
	}

	if opts.NoBuildings {
		cfg.Buildings.Enabled = false
	}
	if opts.NoRoads {
		cfg.Roads.Enabled = false
	}
	if opts.NoWaterLines {
		cfg.Water.Lines = false
	}

	if opts.GpxRadius != nil {
		cfg.Gpx.Radius = *opts.GpxRadius
	}
	if opts.GpxOffset != nil {
		cfg.Gpx.VerticalOffset = *opts.GpxOffset
	}
}

// ParseBoundingBox parses "west,south,east,north" in degrees. An empty
// string yields the zero box.
func ParseBoundingBox(s string) (feature.BoundingBox, error) {
	if strings.TrimSpace(s) == "" {
		return feature.BoundingBox{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return feature.BoundingBox{}, fmt.Errorf("%w: got %q", ErrInvalidBoundingBox, s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return feature.BoundingBox{}, fmt.Errorf("%w: %w", ErrInvalidBoundingBox, err)
		}
		v[i] = f
	}
	box := feature.BoundingBox{West: v[0], South: v[1], East: v[2], North: v[3]}
	if box.West >= box.East || box.South >= box.North {
		return feature.BoundingBox{}, fmt.Errorf("%w: empty area %q", ErrInvalidBoundingBox, s)
	}
	if box.South < -90 || box.North > 90 || box.West < -180 || box.East > 180 {
		return feature.BoundingBox{}, fmt.Errorf("%w: out of range %q", ErrInvalidBoundingBox, s)
	}
	return box, nil
}
