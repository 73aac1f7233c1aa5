package ingest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Faultbox/printgeo/internal/feature"
)

// ErrInvalidGPX is returned when a GPX document cannot be parsed.
var ErrInvalidGPX = errors.New("invalid GPX")

type gpxDocument struct {
	XMLName xml.Name   `xml:"gpx"`
	Tracks  []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  string `xml:"lat,attr"`
	Lon  string `xml:"lon,attr"`
	Ele  string `xml:"ele"`
	Time string `xml:"time"`
}

// LoadGPX reads a GPX file from path.
func LoadGPX(path string) (*feature.GpxTrack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseGPX(f)
}

// ParseGPX decodes a GPX document. Segments of every track are collected
// under the first track's name; empty segments are dropped. Points with an
// unparsable position are skipped, and unparsable elevations or times are
// treated as absent.
func ParseGPX(r io.Reader) (*feature.GpxTrack, error) {
	var doc gpxDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGPX, err)
	}

	track := &feature.GpxTrack{}
	for i, trk := range doc.Tracks {
		if i == 0 {
			track.Name = strings.TrimSpace(trk.Name)
		}
		for _, seg := range trk.Segments {
			points := make([]feature.GpxPoint, 0, len(seg.Points))
			for _, p := range seg.Points {
				pt, ok := convertPoint(p)
				if ok {
					points = append(points, pt)
				}
			}
			if len(points) > 0 {
				track.Segments = append(track.Segments, points)
			}
		}
	}
	return track, nil
}

func convertPoint(p gpxPoint) (feature.GpxPoint, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(p.Lat), 64)
	if err != nil {
		return feature.GpxPoint{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(p.Lon), 64)
	if err != nil {
		return feature.GpxPoint{}, false
	}
	pt := feature.GpxPoint{Lat: lat, Lon: lon}
	if s := strings.TrimSpace(p.Ele); s != "" {
		if ele, err := strconv.ParseFloat(s, 64); err == nil {
			pt.Elevation = &ele
		}
	}
	if s := strings.TrimSpace(p.Time); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			pt.Time = &t
		}
	}
	return pt, true
}
