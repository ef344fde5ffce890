// Package scheduler provides the emulated machine's clock. The CPU
// advances it as instructions execute, and every other component
// reads it to time their own behaviour.
package scheduler

import "sync/atomic"

// Scheduler is a monotonically increasing cycle counter.
//
// It is advanced only by the emulation goroutine, but may be read
// from others (such as a display driver reporting speed), so the
// counter is atomic.
type Scheduler struct {
	cycles atomic.Uint64
}

// NewScheduler returns a new Scheduler starting at cycle 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Cycle returns the number of cycles elapsed since power on.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles.Load()
}

// Tick advances the scheduler by the given number of cycles.
func (s *Scheduler) Tick(c uint64) {
	s.cycles.Add(c)
}
