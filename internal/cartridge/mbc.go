package cartridge

import "fmt"

// Family is the mapper family of a cartridge, selected once from the
// cartridge type byte when the ROM is loaded.
type Family uint8

const (
	// FamilyNROM has no mapper. Every write to ROM is discarded.
	FamilyNROM Family = iota
	FamilyMBC1
	FamilyMBC2
	FamilyMBC3
	FamilyMBC5
)

func (f Family) String() string {
	switch f {
	case FamilyNROM:
		return "NROM"
	case FamilyMBC1:
		return "MBC1"
	case FamilyMBC2:
		return "MBC2"
	case FamilyMBC3:
		return "MBC3"
	case FamilyMBC5:
		return "MBC5"
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

func familyOf(t Type) Family {
	switch t {
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return FamilyMBC1
	case MBC2, MBC2BATT:
		return FamilyMBC2
	case MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3, MBC3RAM, MBC3RAMBATT:
		return FamilyMBC3
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return FamilyMBC5
	}
	return FamilyNROM
}

// BankSwitcher selects which ROM bank is visible at 0x4000-0x7FFF.
type BankSwitcher interface {
	SwitchBank(bank uint)
}

// Mapper decodes a write to the cartridge into bank control traffic.
//
// Write returns true when the write was consumed (filtered) by the
// mapper. The MMU still commits filtered writes that fall in the
// external RAM range, as some cartridges decode both at once.
type Mapper interface {
	Write(address uint16, value uint8) (filtered bool)
	Family() Family
}

// NewMapper returns the write decoder for family, for a ROM image
// with the given number of 16kB banks.
func NewMapper(family Family, banks int, s BankSwitcher) Mapper {
	switch family {
	case FamilyMBC1:
		return newMemoryBankController1(banks, s)
	case FamilyMBC2:
		return newMemoryBankController2(banks, s)
	case FamilyMBC3:
		return newMemoryBankController3(banks, s)
	case FamilyMBC5:
		return newMemoryBankController5(banks, s)
	}
	return romOnly{}
}

// memoryBankController holds the state common to every banking
// family.
type memoryBankController struct {
	banks      int
	romBank    uint
	ramEnabled bool

	s BankSwitcher
}

// setROMBank wraps bank to the size of the ROM and switches to it.
func (m *memoryBankController) setROMBank(bank uint) {
	if m.banks > 0 && int(bank) >= m.banks {
		bank %= uint(m.banks)
	}
	m.romBank = bank
	m.s.SwitchBank(bank)
}

// ramGate decodes the RAM enable latch, 0x0A in the lower nibble
// enabling external RAM.
func ramGate(value uint8) bool {
	return value&0x0F == 0x0A
}

func isExternalRAM(address uint16) bool {
	return address >= 0xA000 && address < 0xC000
}
