package recording

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"stride/internal/sensor"
)

type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Time string  `xml:"time,omitempty"`
}

type gpxFile struct {
	XMLName xml.Name `xml:"gpx"`
	Tracks  []struct {
		Segments []struct {
			Points []gpxPoint `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReadGPX flattens every track point into fixes in file order.
// Timestamps are relative to the first timed point; points without a usable time
// are spaced one location interval after the previous fix.
func ReadGPX(r io.Reader) ([]sensor.GeoFix, error) {
	var doc gpxFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	var (
		fixes   []sensor.GeoFix
		origin  time.Time
		hasBase bool
		prev    time.Duration
	)
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				ts := prev + sensor.DefaultLocationInterval
				if len(fixes) == 0 {
					ts = 0
				}
				if t, ok := parseTime(pt.Time); ok {
					if !hasBase {
						origin = t.Add(-ts)
						hasBase = true
					}
					ts = t.Sub(origin)
				}
				fixes = append(fixes, sensor.GeoFix{Latitude: pt.Lat, Longitude: pt.Lon, Timestamp: ts})
				prev = ts
			}
		}
	}
	return fixes, nil
}
