package pipeline

import (
	"math"
	"time"

	"stride/internal/activity"
	"stride/internal/sensor"
)

// StepEvent is emitted for every accepted step.
type StepEvent struct {
	Count     int
	Timestamp time.Duration
}

// StepDetector counts steps with a threshold on |z| and a debounce keyed off sample timestamps.
type StepDetector struct {
	params    activity.DetectionParams
	count     int
	lastEvent time.Duration
	hasEvent  bool
}

func NewStepDetector(params activity.DetectionParams) *StepDetector {
	return &StepDetector{params: params}
}

// Process feeds one sample and reports whether it produced a step.
func (d *StepDetector) Process(s sensor.MotionSample) (StepEvent, bool) {
	if !s.Valid() {
		return StepEvent{}, false
	}
	if math.Abs(s.Z) <= d.params.Threshold {
		return StepEvent{}, false
	}
	if d.params.CrossAxisGate &&
		(math.Abs(s.X) >= activity.CrossAxisLimit || math.Abs(s.Y) >= activity.CrossAxisLimit) {
		return StepEvent{}, false
	}
	if d.hasEvent && s.Timestamp-d.lastEvent <= d.params.MinInterval {
		return StepEvent{}, false
	}

	d.count++
	d.lastEvent = s.Timestamp
	d.hasEvent = true
	return StepEvent{Count: d.count, Timestamp: s.Timestamp}, true
}

// Count returns the steps accepted since the last Reset.
func (d *StepDetector) Count() int {
	return d.count
}

// Reset clears the count and the debounce reference.
func (d *StepDetector) Reset() {
	d.count = 0
	d.lastEvent = 0
	d.hasEvent = false
}
