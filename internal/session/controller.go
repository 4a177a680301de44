package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"stride/internal/activity"
	"stride/internal/pipeline"
	"stride/internal/sensor"
)

// Sources holds the platform producers. Only the one matching the mode is used.
type Sources struct {
	Accelerometer sensor.Accelerometer
	Location      sensor.Location
}

type Option func(*Controller)

func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

func WithFeedback(f Feedback) Option {
	return func(c *Controller) { c.feedback = f }
}

func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithUpdateInterval sets the accelerometer delivery period requested on Start.
func WithUpdateInterval(d time.Duration) Option {
	return func(c *Controller) { c.updateInterval = d }
}

// WithWatchOptions sets the location watch parameters requested on Start.
func WithWatchOptions(opts sensor.WatchOptions) Option {
	return func(c *Controller) { c.watchOpts = opts }
}

// Controller owns one activity session: its lifecycle, the active pipeline and goal notification.
type Controller struct {
	mode    activity.Mode
	sources Sources

	listener       Listener
	feedback       Feedback
	recorder       Recorder
	logger         *slog.Logger
	updateInterval time.Duration
	watchOpts      sensor.WatchOptions

	// lifecycle serializes Start, Pause and Close; producer callbacks never take it.
	lifecycle sync.Mutex

	mu       sync.Mutex
	state    State
	err      error
	closed   bool
	sub      sensor.Subscription
	steps    *pipeline.StepDetector
	distance *pipeline.DistanceAccumulator
	goal     *pipeline.GoalEvaluator
}

// New creates a controller for mode. The producer is chosen here and fixed for the controller's lifetime.
func New(mode activity.Mode, sources Sources, opts ...Option) (*Controller, error) {
	if !(mode.Goal > 0) {
		return nil, fmt.Errorf("%w: %v", activity.ErrInvalidGoal, mode.Goal)
	}
	if mode.UsesLocation() && sources.Location == nil {
		return nil, fmt.Errorf("%w: %s needs a location source", ErrNoSource, mode.Name)
	}
	if !mode.UsesLocation() && sources.Accelerometer == nil {
		return nil, fmt.Errorf("%w: %s needs an accelerometer", ErrNoSource, mode.Name)
	}

	c := &Controller{
		mode:           mode,
		sources:        sources,
		listener:       ListenerFuncs{},
		feedback:       NopFeedback{},
		recorder:       nopRecorder{},
		logger:         slog.Default(),
		updateInterval: sensor.DefaultMotionInterval,
		watchOpts:      sensor.DefaultWatchOptions(),
		steps:          pipeline.NewStepDetector(mode.Params),
		distance:       pipeline.NewDistanceAccumulator(),
		goal:           pipeline.NewGoalEvaluator(mode.Goal),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("mode", mode.Name)
	return c, nil
}

// Mode returns the activity definition the controller was built with.
func (c *Controller) Mode() activity.Mode {
	return c.mode
}

// Start begins a new run segment from any state. The metric, debounce reference,
// last fix and goal latch are cleared before the producer is subscribed.
func (c *Controller) Start(ctx context.Context) error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	prev := c.sub
	c.sub = nil
	if c.state == Running {
		// Drop callbacks from the old subscription until it is gone.
		c.state = Paused
	}
	c.mu.Unlock()

	if prev != nil {
		prev.Remove()
	}

	if c.mode.UsesLocation() {
		perm, err := c.sources.Location.RequestPermission(ctx)
		if err != nil {
			return c.block(fmt.Errorf("request location permission: %w", err))
		}
		if perm != sensor.PermissionGranted {
			return c.block(ErrLocationPermissionDenied)
		}
	}

	c.mu.Lock()
	c.state, _ = transition(c.state, evStart)
	c.err = nil
	c.steps.Reset()
	c.distance.Reset()
	c.goal.Reset()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("Session segment started", "goal", c.mode.Goal)
	c.recorder.SegmentStarted(c.mode.Name)
	c.recorder.StateChanged(c.mode.Name, Running)
	c.listener.Update(snap)

	sub, err := c.subscribe()
	if err != nil {
		return c.block(err)
	}

	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
	return nil
}

func (c *Controller) subscribe() (sensor.Subscription, error) {
	if c.mode.UsesLocation() {
		sub, err := c.sources.Location.Watch(c.watchOpts, c.onFix)
		if err != nil {
			return nil, fmt.Errorf("watch location: %w", err)
		}
		return sub, nil
	}
	c.sources.Accelerometer.SetUpdateInterval(c.updateInterval)
	return c.sources.Accelerometer.Subscribe(c.onSample), nil
}

// Pause ends the run segment and releases the producer. The metric is kept for display.
// Pausing a session that is not running is a no-op.
func (c *Controller) Pause() error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	next, ok := transition(c.state, evPause)
	if !ok {
		c.mu.Unlock()
		return nil
	}
	c.state = next
	sub := c.sub
	c.sub = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if sub != nil {
		sub.Remove()
	}

	c.logger.Info("Session paused", "metric", snap.Metric)
	c.recorder.StateChanged(c.mode.Name, Paused)
	c.listener.Update(snap)
	return nil
}

// Close releases the producer. It is safe to call more than once.
func (c *Controller) Close() error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.state == Running {
		c.state = Paused
	}
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	if sub != nil {
		sub.Remove()
	}
	c.logger.Debug("Session closed")
	return nil
}

// Snapshot returns the current presentation state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) block(err error) error {
	c.mu.Lock()
	c.state, _ = transition(c.state, evBlock)
	c.err = err
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Error("Session blocked", "error", err)
	c.recorder.StateChanged(c.mode.Name, Blocked)
	c.listener.Update(snap)
	return err
}

func (c *Controller) onSample(s sensor.MotionSample) {
	c.mu.Lock()
	if c.state != Running {
		c.mu.Unlock()
		return
	}
	if !s.Valid() {
		c.mu.Unlock()
		c.drop("malformed_sample")
		return
	}
	ev, ok := c.steps.Process(s)
	if !ok {
		c.mu.Unlock()
		return
	}
	fired := c.goal.Observe(float64(ev.Count))
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.recorder.StepCounted(c.mode.Name)
	if err := c.feedback.Play(CueStep); err != nil {
		c.logger.Debug("Feedback cue failed", "cue", CueStep, "error", err)
	}
	c.publish(snap, fired)
}

func (c *Controller) onFix(f sensor.GeoFix) {
	c.mu.Lock()
	if c.state != Running {
		c.mu.Unlock()
		return
	}
	if !f.Valid() {
		c.mu.Unlock()
		c.drop("malformed_fix")
		return
	}
	delta := c.distance.Process(f)
	fired := c.goal.Observe(c.distance.Total())
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.recorder.DistanceAdded(c.mode.Name, delta)
	c.publish(snap, fired)
}

func (c *Controller) publish(snap Snapshot, fired bool) {
	c.listener.Update(snap)
	if fired {
		c.logger.Info("Goal reached", "metric", snap.Metric, "goal", snap.Goal)
		c.recorder.GoalReached(c.mode.Name)
		c.listener.GoalReached(snap)
	}
}

func (c *Controller) drop(reason string) {
	c.logger.Debug("Dropped input", "reason", reason)
	c.recorder.SampleDropped(c.mode.Name, reason)
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Mode:        c.mode,
		State:       c.state,
		Goal:        c.mode.Goal,
		GoalReached: c.goal.Reached(),
		Err:         c.err,
	}
	if c.mode.UsesLocation() {
		snap.Metric = c.distance.Total()
	} else {
		snap.Steps = c.steps.Count()
		snap.Metric = float64(snap.Steps)
		snap.Stats = activity.DeriveStats(snap.Steps)
	}
	snap.ProgressRatio = c.goal.Progress(snap.Metric)
	return snap
}
