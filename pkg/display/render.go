package display

import (
	"github.com/thelolagemann/gbmem/internal/lcd"
	"github.com/thelolagemann/gbmem/internal/types"
)

// FrameSize is the size of a rendered frame, 3 bytes per pixel.
const FrameSize = lcd.ScreenWidth * lcd.ScreenHeight * 3

// Renderer draws frames from the raw view of the address space.
// Only the background and window layers are drawn; the LCD, scroll
// and palette registers are read from the backing store, where their
// last written value is kept.
type Renderer struct {
	Palette Palette

	frame []byte
}

// NewRenderer returns a Renderer using the given palette.
func NewRenderer(p Palette) *Renderer {
	return &Renderer{
		Palette: p,
		frame:   make([]byte, FrameSize),
	}
}

// Render draws a frame from raw and returns it. The returned slice is
// reused by the next call to Render.
func (r *Renderer) Render(raw []byte) []byte {
	lcdc := raw[types.LCDC]
	bgp := raw[types.BGP]

	if lcdc&types.Bit7 == 0 || lcdc&types.Bit0 == 0 {
		// LCD off, or background and window disabled
		white := r.Palette[0]
		for i := 0; i < len(r.frame); i += 3 {
			copy(r.frame[i:i+3], white[:])
		}
		return r.frame
	}

	scy, scx := raw[types.SCY], raw[types.SCX]
	wy, wx := int(raw[types.WY]), int(raw[types.WX])-7
	window := lcdc&types.Bit5 != 0

	bgMap, winMap := uint16(0x9800), uint16(0x9800)
	if lcdc&types.Bit3 != 0 {
		bgMap = 0x9C00
	}
	if lcdc&types.Bit6 != 0 {
		winMap = 0x9C00
	}
	unsigned := lcdc&types.Bit4 != 0

	for y := 0; y < lcd.ScreenHeight; y++ {
		for x := 0; x < lcd.ScreenWidth; x++ {
			var n uint8
			if window && y >= wy && x >= wx {
				n = tilePixel(raw, winMap, unsigned, uint8(x-wx), uint8(y-wy))
			} else {
				n = tilePixel(raw, bgMap, unsigned, uint8(x)+scx, uint8(y)+scy)
			}
			c := r.Palette.shade(bgp, n)
			i := (y*lcd.ScreenWidth + x) * 3
			r.frame[i], r.frame[i+1], r.frame[i+2] = c[0], c[1], c[2]
		}
	}
	return r.frame
}

// tilePixel returns the colour number of the pixel at x, y of the
// 256x256 tile map starting at tileMap.
func tilePixel(raw []byte, tileMap uint16, unsigned bool, x, y uint8) uint8 {
	id := raw[tileMap+uint16(y/8)*32+uint16(x/8)]

	var tile uint16
	if unsigned {
		tile = 0x8000 + uint16(id)*16
	} else {
		tile = uint16(0x9000 + int(int8(id))*16)
	}

	row := tile + uint16(y%8)*2
	lo, hi := raw[row], raw[row+1]
	bit := 7 - x%8
	return (lo>>bit)&1 | ((hi>>bit)&1)<<1
}
