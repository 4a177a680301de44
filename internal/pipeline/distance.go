package pipeline

import (
	"math"

	"stride/internal/sensor"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two fixes in kilometers.
func Haversine(a, b sensor.GeoFix) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// DistanceAccumulator sums haversine distance between consecutive fixes.
// Every pair contributes; GPS jumps are not filtered.
type DistanceAccumulator struct {
	total   float64
	last    sensor.GeoFix
	hasLast bool
}

func NewDistanceAccumulator() *DistanceAccumulator {
	return &DistanceAccumulator{}
}

// Process adds the leg from the previous fix and returns its length in km.
// The first fix of a segment only sets the reference point.
func (a *DistanceAccumulator) Process(fix sensor.GeoFix) float64 {
	if !fix.Valid() {
		return 0
	}
	if !a.hasLast {
		a.last = fix
		a.hasLast = true
		return 0
	}

	delta := Haversine(a.last, fix)
	a.total += delta
	a.last = fix
	return delta
}

// Total returns the accumulated distance in km.
func (a *DistanceAccumulator) Total() float64 {
	return a.total
}

// LastFix returns the reference fix, if any.
func (a *DistanceAccumulator) LastFix() (sensor.GeoFix, bool) {
	return a.last, a.hasLast
}

// Reset clears the total and the reference fix.
func (a *DistanceAccumulator) Reset() {
	a.total = 0
	a.last = sensor.GeoFix{}
	a.hasLast = false
}
