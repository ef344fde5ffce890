// Package cartridge provides the cartridge of the DMG: the ROM image,
// its header, and the memory bank controller (mapper) that decodes
// writes to the cartridge address range into bank switches.
package cartridge

import (
	"errors"
	"fmt"
)

// minimumROMSize is two ROM banks, the smallest image that fills
// both the fixed and the switchable window.
const minimumROMSize = 0x8000

// ErrShortROM is returned when a ROM image is too short to hold the
// cartridge header.
var ErrShortROM = errors.New("cartridge: rom too short to hold header")

// Cartridge represents a game cartridge. The ROM image is immutable
// for the lifetime of the Cartridge, and is shared with the MMU.
type Cartridge struct {
	rom []byte
	Header
}

// New parses the header of rom and returns a Cartridge. Images
// shorter than two banks are padded with 0xFF (open bus), so that
// both ROM windows are always backed.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortROM, len(rom))
	}
	if len(rom) < minimumROMSize {
		padded := make([]byte, minimumROMSize)
		for i := copy(padded, rom); i < len(padded); i++ {
			padded[i] = 0xFF
		}
		rom = padded
	}

	return &Cartridge{
		rom:    rom,
		Header: parseHeader(rom[0x100:0x150]),
	}, nil
}

// ROM returns the ROM image. The returned slice must not be modified.
func (c *Cartridge) ROM() []byte {
	return c.rom
}

// Banks returns the number of 16kB ROM banks in the image.
func (c *Cartridge) Banks() int {
	return len(c.rom) / 0x4000
}

// Family returns the mapper family of the cartridge.
func (c *Cartridge) Family() Family {
	return familyOf(c.CartridgeType)
}

// NewMapper returns the write decoder for the cartridge's mapper
// family, driving bank switches through s.
func (c *Cartridge) NewMapper(s BankSwitcher) Mapper {
	return NewMapper(c.Family(), c.Banks(), s)
}
