// Package display provides the handoff between the emulation
// goroutine and the display drivers that present its frames.
//
// The emulation goroutine calls Notifier.Notify once per emulated
// frame and never blocks. A driver waits on the notifier and
// renders whatever the latest frame is when it wakes up: if it falls
// behind, wakes coalesce and the frames in between are dropped.
package display

import (
	"context"
	"sync"
	"sync/atomic"
)

// Notifier is a single slot frame handoff.
type Notifier struct {
	mu    sync.Mutex
	frame []byte

	wake chan struct{}

	frames  atomic.Uint64
	dropped atomic.Uint64
}

// NewNotifier returns a new Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		frame: make([]byte, FrameSize),
		wake:  make(chan struct{}, 1),
	}
}

// Notify publishes frame as the latest frame and wakes the driver.
// If the driver has not yet consumed the previous wake, the two
// coalesce and the previous frame is dropped.
func (n *Notifier) Notify(frame []byte) {
	n.mu.Lock()
	copy(n.frame, frame)
	n.mu.Unlock()

	n.frames.Add(1)
	select {
	case n.wake <- struct{}{}:
	default:
		n.dropped.Add(1)
	}
}

// Wait blocks until a frame has been published since the last call
// to Wait, or ctx is done. The returned frame is a copy, and may be
// retained by the caller.
func (n *Notifier) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-n.wake:
	}
	return n.Latest(), nil
}

// Latest returns a copy of the latest frame.
func (n *Notifier) Latest() []byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]byte(nil), n.frame...)
}

// Frames returns the number of frames published.
func (n *Notifier) Frames() uint64 {
	return n.frames.Load()
}

// Dropped returns the number of frames that were replaced before a
// driver woke up to present them.
func (n *Notifier) Dropped() uint64 {
	return n.dropped.Load()
}
