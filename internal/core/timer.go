package core

import "time"

const (
	minInterval = time.Millisecond
	maxInterval = 10 * time.Second
)

// FixedStep gates simulation updates so they happen at most once per
// interval, independent of how often the caller polls it.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller with the given interval.
// The first call to ShouldStep fires immediately.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetInterval(interval)
	fs.accumulator = fs.step
	return fs
}

// SetInterval changes the tick interval, clamped to [1ms, 10s].
func (f *FixedStep) SetInterval(d time.Duration) {
	f.step = min(max(d, minInterval), maxInterval)
}

// Interval reports the current tick interval.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Rescale multiplies the tick rate by factor: factors above one speed the
// simulation up, factors below one slow it down.
func (f *FixedStep) Rescale(factor float64) {
	if factor <= 0 {
		return
	}
	next := time.Duration(float64(f.step) / factor)
	if next == f.step {
		if factor > 1 {
			next--
		} else {
			next++
		}
	}
	f.SetInterval(next)
}

// Reset drops any accumulated time, e.g. after resuming from pause.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
