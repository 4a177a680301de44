package sensor

import (
	"context"
	"math"
	"time"
)

// Nominal delivery periods of the platform sources.
const (
	DefaultMotionInterval   = 100 * time.Millisecond
	DefaultLocationInterval = time.Second
)

// MotionSample is one triaxial accelerometer reading.
type MotionSample struct {
	X, Y, Z   float64
	Timestamp time.Duration // monotonic clock reading
}

// Valid reports whether every component is a finite number.
func (s MotionSample) Valid() bool {
	return finite(s.X) && finite(s.Y) && finite(s.Z)
}

// GeoFix is one position report in degrees.
type GeoFix struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Duration
}

// Valid reports whether the fix holds finite, in-range coordinates.
func (f GeoFix) Valid() bool {
	return finite(f.Latitude) && finite(f.Longitude) &&
		math.Abs(f.Latitude) <= 90 && math.Abs(f.Longitude) <= 180
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Subscription is a live registration with a source.
// Remove is synchronous and idempotent: once it returns no further callback runs.
type Subscription interface {
	Remove()
}

// Accelerometer delivers motion samples until the subscription is removed.
type Accelerometer interface {
	Subscribe(fn func(MotionSample)) Subscription
	SetUpdateInterval(d time.Duration)
}

// Permission is the outcome of a location permission request.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// WatchOptions configures a location watch.
type WatchOptions struct {
	HighAccuracy     bool
	TimeInterval     time.Duration
	DistanceInterval float64 // meters
}

// DefaultWatchOptions matches the cycling tracker: high accuracy, one fix per second, no distance filter.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{HighAccuracy: true, TimeInterval: DefaultLocationInterval}
}

// Location delivers GPS fixes once permission has been granted.
type Location interface {
	RequestPermission(ctx context.Context) (Permission, error)
	Watch(opts WatchOptions, fn func(GeoFix)) (Subscription, error)
}
