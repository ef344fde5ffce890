// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"sync/atomic"

	"github.com/thelolagemann/gbmem/internal/types"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// pressed holds a 1 for every held button, the lower 4 bits
	// being the action buttons and the upper 4 bits the directions.
	// It is written by the input driver and sampled by the
	// emulation, so is only ever accessed atomically.
	pressed atomic.Uint32

	selectButtons    uint8
	selectDirections uint8
}

// New returns a new joypad state, with both select lines high.
func New() *State {
	return &State{
		selectButtons:    types.Bit5,
		selectDirections: types.Bit4,
	}
}

// Register implements types.Peripheral.
func (s *State) Register(h *types.HardwareRegisters) {
	h.Register(types.P1, func(v uint8) {
		s.selectButtons = v & types.Bit5
		s.selectDirections = v & types.Bit4
	}, s.Read)
}

// Read composes the P1 register from the select lines and a
// snapshot of the held buttons.
func (s *State) Read() uint8 {
	var mask uint8
	if s.selectButtons == 0 {
		mask |= s.Buttons()
	}
	if s.selectDirections == 0 {
		mask |= s.Directions()
	}
	return 0xC0 | (0x0F ^ mask) | s.selectButtons | s.selectDirections
}

// Buttons returns the held action buttons, Start, Select, B and A
// in bits 3-0.
func (s *State) Buttons() uint8 {
	return uint8(s.pressed.Load()) & 0x0F
}

// Directions returns the held direction keys, Down, Up, Left and
// Right in bits 3-0.
func (s *State) Directions() uint8 {
	return uint8(s.pressed.Load()>>4) & 0x0F
}

// Press presses a button. It is safe to call from any goroutine.
func (s *State) Press(button Button) {
	for {
		old := s.pressed.Load()
		if s.pressed.CompareAndSwap(old, old|1<<button) {
			return
		}
	}
}

// Release releases a button. It is safe to call from any goroutine.
func (s *State) Release(button Button) {
	for {
		old := s.pressed.Load()
		if s.pressed.CompareAndSwap(old, old&^(1<<button)) {
			return
		}
	}
}
