package sensor

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrPermissionNotGranted is returned by Watch before a successful RequestPermission.
var ErrPermissionNotGranted = errors.New("location permission not granted")

// feed walks a recording on its own goroutine, one item per tick.
type feed struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// complete runs after the last item is delivered, never after a cancellation.
func startFeed[T any](items []T, interval time.Duration, fn func(T), complete func()) *feed {
	ctx, cancel := context.WithCancel(context.Background())
	f := &feed{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(f.done)

		var tick <-chan time.Time
		if interval > 0 {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for _, item := range items {
			if tick != nil {
				select {
				case <-ctx.Done():
					return
				case <-tick:
				}
			}
			// Cancellation wins over a ready tick.
			if ctx.Err() != nil {
				return
			}
			fn(item)
		}
		if complete != nil {
			complete()
		}
	}()
	return f
}

// Remove stops delivery and waits for the feed goroutine to exit.
func (f *feed) Remove() {
	f.once.Do(f.cancel)
	<-f.done
}

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// finishLatch is a channel closed at most once.
type finishLatch struct {
	ch   chan struct{}
	once *sync.Once
}

func newFinishLatch() finishLatch {
	return finishLatch{ch: make(chan struct{}), once: new(sync.Once)}
}

func (l finishLatch) close() {
	l.once.Do(func() { close(l.ch) })
}

func ended(f *feed) <-chan struct{} {
	if f == nil {
		return closedChan
	}
	return f.done
}

// MotionReplay plays back recorded accelerometer samples as a live source.
type MotionReplay struct {
	mu       sync.Mutex
	samples  []MotionSample
	interval time.Duration
	speed    float64
	current  *feed
	finished finishLatch
}

// NewMotionReplay creates a replay paced at DefaultMotionInterval.
func NewMotionReplay(samples []MotionSample) *MotionReplay {
	return &MotionReplay{
		samples:  samples,
		interval: DefaultMotionInterval,
		speed:    1,
		finished: newFinishLatch(),
	}
}

// SetUpdateInterval changes the delivery period for subsequent subscriptions. Zero delivers without pacing.
func (r *MotionReplay) SetUpdateInterval(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interval = d
}

// SetSpeed scales playback; 2 plays twice as fast. Non-positive values are ignored.
func (r *MotionReplay) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.speed = speed
}

// Subscribe starts a playback of the whole recording.
func (r *MotionReplay) Subscribe(fn func(MotionSample)) Subscription {
	r.mu.Lock()
	interval := scale(r.interval, r.speed)
	samples := r.samples
	r.mu.Unlock()

	f := startFeed(samples, interval, fn, r.finished.close)
	r.mu.Lock()
	r.current = f
	r.mu.Unlock()
	return f
}

// Finished is closed the first time a playback delivers the whole recording.
func (r *MotionReplay) Finished() <-chan struct{} {
	return r.finished.ch
}

// Ended is closed once the latest playback has delivered every sample or was removed.
func (r *MotionReplay) Ended() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ended(r.current)
}

// LocationReplay plays back recorded fixes behind a fixed permission answer.
type LocationReplay struct {
	mu         sync.Mutex
	fixes      []GeoFix
	permission Permission
	granted    bool
	speed      float64
	current    *feed
	finished   finishLatch
}

// NewLocationReplay creates a replay that answers permission requests with p.
func NewLocationReplay(fixes []GeoFix, p Permission) *LocationReplay {
	return &LocationReplay{fixes: fixes, permission: p, speed: 1, finished: newFinishLatch()}
}

// SetSpeed scales playback; non-positive values are ignored.
func (r *LocationReplay) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.speed = speed
}

// RequestPermission returns the configured answer.
func (r *LocationReplay) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDenied, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.granted = r.permission == PermissionGranted
	return r.permission, nil
}

// Watch starts a playback of the recorded fixes at opts.TimeInterval.
func (r *LocationReplay) Watch(opts WatchOptions, fn func(GeoFix)) (Subscription, error) {
	r.mu.Lock()
	granted := r.granted
	interval := scale(opts.TimeInterval, r.speed)
	fixes := r.fixes
	r.mu.Unlock()

	if !granted {
		return nil, ErrPermissionNotGranted
	}

	f := startFeed(fixes, interval, fn, r.finished.close)
	r.mu.Lock()
	r.current = f
	r.mu.Unlock()
	return f, nil
}

// Finished is closed the first time a playback delivers every fix.
func (r *LocationReplay) Finished() <-chan struct{} {
	return r.finished.ch
}

// Ended is closed once the latest playback has delivered every fix or was removed.
func (r *LocationReplay) Ended() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ended(r.current)
}

func scale(d time.Duration, speed float64) time.Duration {
	if d <= 0 || speed <= 0 {
		return d
	}
	return time.Duration(float64(d) / speed)
}
