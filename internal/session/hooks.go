package session

// Listener receives presentation updates. Calls arrive on the producer goroutine;
// implementations must not block and must not call back into the Controller synchronously.
type Listener interface {
	Update(Snapshot)
	GoalReached(Snapshot)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnUpdate      func(Snapshot)
	OnGoalReached func(Snapshot)
}

func (l ListenerFuncs) Update(s Snapshot) {
	if l.OnUpdate != nil {
		l.OnUpdate(s)
	}
}

func (l ListenerFuncs) GoalReached(s Snapshot) {
	if l.OnGoalReached != nil {
		l.OnGoalReached(s)
	}
}

// Listeners fans callbacks out to each listener in order.
type Listeners []Listener

func (ls Listeners) Update(s Snapshot) {
	for _, l := range ls {
		l.Update(s)
	}
}

func (ls Listeners) GoalReached(s Snapshot) {
	for _, l := range ls {
		l.GoalReached(s)
	}
}

// Cue identifies a feedback sound.
type Cue string

const CueStep Cue = "step"

// Feedback plays cues. Play must return quickly; errors are logged and ignored.
type Feedback interface {
	Play(cue Cue) error
}

// NopFeedback discards every cue.
type NopFeedback struct{}

func (NopFeedback) Play(Cue) error { return nil }

// Recorder receives pipeline events for metrics.
type Recorder interface {
	SegmentStarted(mode string)
	StepCounted(mode string)
	DistanceAdded(mode string, km float64)
	GoalReached(mode string)
	SampleDropped(mode, reason string)
	StateChanged(mode string, state State)
}

type nopRecorder struct{}

func (nopRecorder) SegmentStarted(string) {}
func (nopRecorder) StepCounted(string) {}
func (nopRecorder) DistanceAdded(string, float64) {}
func (nopRecorder) GoalReached(string) {}
func (nopRecorder) SampleDropped(string, string) {}
func (nopRecorder) StateChanged(string, State) {}
