// Package lcd provides the register model of the LCD controller: the
// control, status, scroll, palette and window registers, and the
// scanline counter that paces each emulated frame.
package lcd

import (
	"github.com/thelolagemann/gbmem/internal/interrupts"
	"github.com/thelolagemann/gbmem/internal/types"
)

const (
	// ScreenWidth is the width of the LCD in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the LCD in pixels.
	ScreenHeight = 144

	// CyclesPerLine is the number of cycles spent on each scanline.
	CyclesPerLine = 456
	// Lines is the number of scanlines per frame, including the
	// 10 lines of VBlank.
	Lines = 154
	// CyclesPerFrame is the number of cycles in a full frame.
	CyclesPerFrame = CyclesPerLine * Lines
)

// Mode is the mode the LCD is in, reported in the lower 2 bits of
// STAT.
type Mode = uint8

const (
	HBlank Mode = iota
	VBlank
	OAM
	VRAM
)

// Controller is the LCD controller. It is responsible for controlling various
// aspects of the LCD, such as enabling the background and window display.
//
// Its control value is stored in the LCD Control Register (0xFF40) as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Controller struct {
	Enabled                  bool
	WindowTileMapAddress     uint16
	WindowEnabled            bool
	TileDataAddress          uint16
	BackgroundTileMapAddress uint16
	SpriteSize               uint8
	SpriteEnabled            bool
	BackgroundEnabled        bool

	ScrollY, ScrollX  uint8
	WindowY, WindowX  uint8
	BackgroundPalette uint8
	SpritePalettes    [2]uint8

	stat   uint8 // interrupt sources, bits 3-6
	ly     uint8
	lyc    uint8
	mode   Mode
	cycles uint16

	irq *interrupts.Service
}

// NewController returns a new LCD controller, in the state left by
// the boot ROM (LCDC=0x91, BGP=0xFC, OBP0/1=0xFF).
func NewController(irq *interrupts.Service) *Controller {
	c := &Controller{irq: irq}
	c.writeControl(0x91)
	c.BackgroundPalette = 0xFC
	c.SpritePalettes = [2]uint8{0xFF, 0xFF}
	c.mode = OAM
	return c
}

// Register implements types.Peripheral. Only STAT and LY are served
// by the controller; the remaining registers read back the last
// value written from the backing store.
func (c *Controller) Register(h *types.HardwareRegisters) {
	h.Register(types.LCDC, c.writeControl, types.NoRead)
	h.Register(
		types.STAT,
		func(v uint8) {
			c.stat = v & 0x78
		}, func() uint8 {
			v := types.Bit7 | c.stat | c.mode
			if c.ly == c.lyc {
				v |= types.Bit2
			}
			return v
		},
	)
	h.Register(types.SCY, func(v uint8) { c.ScrollY = v }, types.NoRead)
	h.Register(types.SCX, func(v uint8) { c.ScrollX = v }, types.NoRead)
	h.Register(types.LY, types.NoWrite, func() uint8 { return c.ly })
	h.Register(types.LYC, func(v uint8) { c.lyc = v }, types.NoRead)
	h.Register(types.BGP, func(v uint8) { c.BackgroundPalette = v }, types.NoRead)
	h.Register(types.OBP0, func(v uint8) { c.SpritePalettes[0] = v }, types.NoRead)
	h.Register(types.OBP1, func(v uint8) { c.SpritePalettes[1] = v }, types.NoRead)
	h.Register(types.WY, func(v uint8) { c.WindowY = v }, types.NoRead)
	h.Register(types.WX, func(v uint8) { c.WindowX = v }, types.NoRead)
}

func (c *Controller) writeControl(value uint8) {
	c.Enabled = value&types.Bit7 != 0
	if value&types.Bit6 != 0 {
		c.WindowTileMapAddress = 0x9C00
	} else {
		c.WindowTileMapAddress = 0x9800
	}
	c.WindowEnabled = value&types.Bit5 != 0
	if value&types.Bit4 != 0 {
		c.TileDataAddress = 0x8000
	} else {
		c.TileDataAddress = 0x8800
	}
	if value&types.Bit3 != 0 {
		c.BackgroundTileMapAddress = 0x9C00
	} else {
		c.BackgroundTileMapAddress = 0x9800
	}
	c.SpriteSize = 8 + (value&types.Bit2)<<1
	c.SpriteEnabled = value&types.Bit1 != 0
	c.BackgroundEnabled = value&types.Bit0 != 0

	if !c.Enabled {
		c.ly, c.cycles, c.mode = 0, 0, HBlank
	}
}

// UsingSignedTileData returns true if the LCD controller is using signed tile
// data.
func (c *Controller) UsingSignedTileData() bool {
	return c.TileDataAddress == 0x8800
}

// Step advances the scanline counter by the given number of cycles,
// and returns true when the LCD enters VBlank, i.e. a frame has been
// completed.
func (c *Controller) Step(cycles uint8) bool {
	if !c.Enabled {
		return false
	}

	frame := false
	c.cycles += uint16(cycles)
	for c.cycles >= CyclesPerLine {
		c.cycles -= CyclesPerLine
		c.ly = (c.ly + 1) % Lines

		if c.ly == c.lyc && c.stat&types.Bit6 != 0 {
			c.irq.Request(interrupts.LCDFlag)
		}
		if c.ly == ScreenHeight {
			frame = true
			c.irq.Request(interrupts.VBlankFlag)
			if c.stat&types.Bit4 != 0 {
				c.irq.Request(interrupts.LCDFlag)
			}
		}
	}

	c.mode = c.modeAt()
	return frame
}

// modeAt approximates the mode from the position within the line.
func (c *Controller) modeAt() Mode {
	switch {
	case c.ly >= ScreenHeight:
		return VBlank
	case c.cycles < 80:
		return OAM
	case c.cycles < 252:
		return VRAM
	default:
		return HBlank
	}
}
