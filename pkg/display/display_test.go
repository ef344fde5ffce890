package display

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thelolagemann/gbmem/internal/lcd"
	"github.com/thelolagemann/gbmem/internal/types"
)

func frameOf(v uint8) []byte {
	f := make([]byte, FrameSize)
	for i := range f {
		f[i] = v
	}
	return f
}

func TestNotifier(t *testing.T) {
	t.Run("coalesce", func(t *testing.T) {
		n := NewNotifier()
		n.Notify(frameOf(1))
		n.Notify(frameOf(2))
		n.Notify(frameOf(3))

		f, err := n.Wait(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if f[0] != 3 {
			t.Errorf("expected latest frame, got frame %d", f[0])
		}
		if n.Frames() != 3 || n.Dropped() != 2 {
			t.Errorf("expected 3 frames with 2 dropped, got %d with %d dropped", n.Frames(), n.Dropped())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		if _, err := n.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected a single wake for coalesced frames, got %v", err)
		}
	})
	t.Run("wake", func(t *testing.T) {
		n := NewNotifier()
		done := make(chan []byte)
		go func() {
			f, _ := n.Wait(context.Background())
			done <- f
		}()
		n.Notify(frameOf(7))

		select {
		case f := <-done:
			if f[FrameSize-1] != 7 {
				t.Errorf("expected frame 7, got %d", f[FrameSize-1])
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for wake")
		}
	})
	t.Run("copy", func(t *testing.T) {
		n := NewNotifier()
		src := frameOf(1)
		n.Notify(src)
		src[0] = 9
		if n.Latest()[0] != 1 {
			t.Error("expected notifier to keep its own copy of the frame")
		}
	})
}

func TestRenderer(t *testing.T) {
	raw := make([]byte, 0x10000)
	r := NewRenderer(Greyscale)

	t.Run("off", func(t *testing.T) {
		raw[types.LCDC] = 0x00
		f := r.Render(raw)
		if f[0] != 0xFF || f[FrameSize-1] != 0xFF {
			t.Error("expected blank frame with the LCD off")
		}
	})
	t.Run("background", func(t *testing.T) {
		raw[types.LCDC] = 0x91 // LCD on, unsigned tile data, map 0x9800
		raw[types.BGP] = 0xE4  // identity
		// tile 1 row 0: colour 3 in the leftmost pixel, colour 1 in the next
		raw[0x8010] = 0xC0
		raw[0x8011] = 0x80
		raw[0x9800] = 0x01

		f := r.Render(raw)
		if f[0] != 0x00 {
			t.Errorf("expected darkest shade, got 0x%02X", f[0])
		}
		if f[3] != 0xCC {
			t.Errorf("expected light shade, got 0x%02X", f[3])
		}
		if f[6] != 0xFF {
			t.Errorf("expected white, got 0x%02X", f[6])
		}
	})
	t.Run("scroll", func(t *testing.T) {
		raw[types.SCX] = 1
		f := r.Render(raw)
		if f[0] != 0xCC {
			t.Errorf("expected background to scroll, got 0x%02X", f[0])
		}
		raw[types.SCX] = 0
	})
	t.Run("palette", func(t *testing.T) {
		raw[types.BGP] = 0x1B // reversed
		f := r.Render(raw)
		if f[0] != 0xFF || f[6] != 0x00 {
			t.Errorf("expected reversed shades, got 0x%02X and 0x%02X", f[0], f[6])
		}
		raw[types.BGP] = 0xE4
	})
	t.Run("signed tile data", func(t *testing.T) {
		raw[types.LCDC] = 0x81
		raw[0x9010] = 0xFF
		raw[0x9011] = 0xFF
		f := r.Render(raw)
		if f[0] != 0x00 || f[21] != 0x00 {
			t.Errorf("expected tile 1 to be read from 0x9010, got 0x%02X", f[0])
		}
	})
}

func TestScale(t *testing.T) {
	img := Image(frameOf(0x77))
	scaled := Scale(img, 1.5)
	if b := scaled.Bounds(); b.Dx() != lcd.ScreenWidth*3/2 || b.Dy() != lcd.ScreenHeight*3/2 {
		t.Errorf("expected 240x216, got %dx%d", b.Dx(), b.Dy())
	}
	if c := scaled.RGBAAt(239, 215); c.R != 0x77 || c.A != 0xFF {
		t.Errorf("expected opaque 0x77, got %v", c)
	}
}
