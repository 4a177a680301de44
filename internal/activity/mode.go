package activity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Mode names understood by the catalog and the tuning table.
const (
	Walk  = "walk"
	Run   = "run"
	Cycle = "cycle"
)

var (
	ErrUnknownMode = errors.New("unknown activity mode")
	ErrInvalidGoal = errors.New("goal must be positive")
)

// CrossAxisLimit bounds |x| and |y| when the cross-axis gate is enabled.
const CrossAxisLimit = 1.0

// DetectionParams tunes the single-axis step detector.
type DetectionParams struct {
	Threshold     float64       // minimum |z| for a peak
	MinInterval   time.Duration // debounce between accepted steps
	CrossAxisGate bool          // also require |x| and |y| below CrossAxisLimit
}

// DefaultParams is used for any mode name missing from the tuning table.
var DefaultParams = DetectionParams{Threshold: 1.0, MinInterval: 300 * time.Millisecond}

var tuning = map[string]DetectionParams{
	Walk: {Threshold: 1.0, MinInterval: 400 * time.Millisecond},
	Run:  {Threshold: 1.3, MinInterval: 250 * time.Millisecond},
}

// ParamsFor resolves detector tuning for a mode name. Unknown names get DefaultParams.
func ParamsFor(name string) DetectionParams {
	if p, ok := tuning[normalize(name)]; ok {
		return p
	}
	return DefaultParams
}

// Unit is what a mode's metric counts.
type Unit string

const (
	UnitSteps      Unit = "steps"
	UnitKilometers Unit = "km"
)

// Mode is an immutable activity definition selected before a session starts.
type Mode struct {
	Name   string
	Goal   float64
	Params DetectionParams
}

// UsesLocation reports whether the mode is driven by GPS fixes instead of the accelerometer.
func (m Mode) UsesLocation() bool {
	return m.Name == Cycle
}

// Unit returns the unit of the mode's metric and goal.
func (m Mode) Unit() Unit {
	if m.UsesLocation() {
		return UnitKilometers
	}
	return UnitSteps
}

// Title is the display label.
func (m Mode) Title() string {
	if m.Name == "" {
		return ""
	}
	return strings.ToUpper(m.Name[:1]) + m.Name[1:]
}

// WithGoal returns a copy of the mode with a different goal.
func (m Mode) WithGoal(goal float64) (Mode, error) {
	if !(goal > 0) {
		return Mode{}, fmt.Errorf("%w: %v", ErrInvalidGoal, goal)
	}
	m.Goal = goal
	return m, nil
}

var catalog = map[string]Mode{
	Walk:  {Name: Walk, Goal: 5, Params: tuning[Walk]},
	Run:   {Name: Run, Goal: 10, Params: tuning[Run]},
	Cycle: {Name: Cycle, Goal: 15},
}

// Lookup returns the catalog entry for a mode name.
func Lookup(name string) (Mode, error) {
	m, ok := catalog[normalize(name)]
	if !ok {
		return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	return m, nil
}

// Catalog lists the selectable modes in menu order.
func Catalog() []Mode {
	modes := make([]Mode, 0, len(catalog))
	for _, m := range catalog {
		modes = append(modes, m)
	}
	order := map[string]int{Walk: 0, Run: 1, Cycle: 2}
	sort.Slice(modes, func(i, j int) bool {
		return order[modes[i].Name] < order[modes[j].Name]
	})
	return modes
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
