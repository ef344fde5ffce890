package display

import (
	"context"

	"github.com/thelolagemann/gbmem/internal/joypad"
)

// Input is the joypad as seen by a display driver. It is safe to
// call from the driver's goroutines.
type Input interface {
	Press(button joypad.Button)
	Release(button joypad.Button)
}

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Start presents the frames published to n, and forwards user
	// input to in, until ctx is done.
	Start(ctx context.Context, n *Notifier, in Input) error
}
