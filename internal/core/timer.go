package core

import "time"

// maxBacklog caps how many steps a stalled frame can owe.
const maxBacklog = 4

// FixedStep paces simulation ticks at a steady rate against the wall clock.
type FixedStep struct {
	step    time.Duration
	backlog time.Duration
	last    time.Time
	now     func() time.Time
}

// NewFixedStep returns a pacer for tps ticks per second. The first call to
// ShouldStep always fires.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.backlog = fs.step
	return fs
}

// SetTPS changes the tick rate; non-positive rates fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// DT returns the step length in seconds, the dt handed to the simulation.
func (f *FixedStep) DT() float64 { return f.step.Seconds() }

// Interval returns the step length.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether a tick is due and consumes it.
func (f *FixedStep) ShouldStep() bool {
	t := f.now()
	if f.last.IsZero() {
		f.last = t
	}
	f.backlog += t.Sub(f.last)
	f.last = t
	if limit := maxBacklog * f.step; f.backlog > limit {
		f.backlog = limit
	}
	if f.backlog < f.step {
		return false
	}
	f.backlog -= f.step
	return true
}
