// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency, configured through the TAC register.
package timer

import (
	"github.com/thelolagemann/gbmem/internal/interrupts"
	"github.com/thelolagemann/gbmem/internal/types"
)

// bits are the bits of the internal divider whose falling edge
// increments TIMA, indexed by the lower 2 bits of TAC.
var bits = [4]uint16{1 << 9, 1 << 3, 1 << 5, 1 << 7}

// Controller is the timer controller. It has four registers:
//
//   - DIV: incremented at a rate of 16384Hz, reset by any write.
//   - TIMA: incremented at the rate selected by TAC.
//   - TMA: reloaded into TIMA when it overflows.
//   - TAC: enables the timer and selects its frequency.
type Controller struct {
	divider uint16 // internal 16-bit divider, DIV is the upper byte

	tima uint8
	tma  uint8
	tac  uint8

	currentBit uint16
	enabled    bool
	lastBit    bool

	// reloading counts down the cycles until TIMA is reloaded from
	// TMA after an overflow, during which TIMA reads 0.
	reloading uint8

	irq *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		irq:        irq,
		currentBit: bits[0],
	}
}

// Register implements types.Peripheral.
func (c *Controller) Register(h *types.HardwareRegisters) {
	h.Register(
		types.DIV,
		func(v uint8) {
			c.divider = 0
			c.edge()
		}, func() uint8 {
			return uint8(c.divider >> 8)
		},
	)
	h.Register(
		types.TIMA,
		func(v uint8) {
			c.tima = v
			c.reloading = 0
		}, func() uint8 {
			return c.tima
		},
	)
	h.Register(
		types.TMA,
		func(v uint8) {
			c.tma = v
		}, func() uint8 {
			return c.tma
		},
	)
	h.Register(
		types.TAC,
		func(v uint8) {
			c.tac = v & 0x07
			c.currentBit = bits[v&0b11]
			c.enabled = v&0x04 == 0x04
			c.edge()
		}, func() uint8 {
			return c.tac | 0xF8 // unused bits read as 1
		},
	)
}

// Step advances the timer by the given number of cycles.
func (c *Controller) Step(cycles uint8) {
	for i := uint8(0); i < cycles; i++ {
		if c.reloading > 0 {
			c.reloading--
			if c.reloading == 0 {
				c.tima = c.tma
				c.irq.Request(interrupts.TimerFlag)
			}
		}
		c.divider++
		c.edge()
	}
}

// edge increments TIMA on the falling edge of the selected divider
// bit, ANDed with the timer enable bit.
func (c *Controller) edge() {
	bit := c.enabled && c.divider&c.currentBit != 0
	if c.lastBit && !bit {
		c.tima++
		if c.tima == 0 {
			// TIMA reads 0 for 4 cycles before the reload
			c.reloading = 4
		}
	}
	c.lastBit = bit
}
