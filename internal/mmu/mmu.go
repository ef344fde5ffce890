// Package mmu provides a memory management unit for the Game Boy. The
// MMU owns the 64kB address space: it serves the ROM windows from the
// cartridge image, backs everything from 0x8000 upwards with a flat
// store, and routes I/O register accesses to the peripheral that owns
// them through a per-instance dispatch table.
package mmu

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gbmem/internal/cartridge"
	"github.com/thelolagemann/gbmem/internal/types"
	"github.com/thelolagemann/gbmem/pkg/log"
)

// Clock is the CPU's cycle counter. It must never decrease.
type Clock interface {
	Cycle() uint64
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates I/O to the peripherals attached to it.
//
// Every method is intended to be called from the emulation goroutine,
// except for SRAMDirty, ClearSRAMDirty, SRAMSequence, SRAM and
// BankSwitches, which may be called from any goroutine.
type MMU struct {
	// 0x8000 - 0xFFFF, the lower half is unused as ROM reads
	// are served from the cartridge image
	mem [0x10000]byte

	// 0x0000 - 0x3FFF - ROM bank 0 (16kB)
	// 0x4000 - 0x7FFF - ROM bank N (16kB)
	rom        []byte
	rom0, romx []byte
	bank       uint

	bankSwitches atomic.Uint64

	dmaActive bool
	dmaStart  uint64

	sram

	// 0xFF00 - 0xFF7F - I/O Registers, 0xFFFF - IE
	registers types.HardwareRegisters

	mapper cartridge.Mapper
	clock  Clock

	Log log.Logger
}

// Opt configures an MMU.
type Opt func(m *MMU)

// WithLogger sets the logger used by the MMU.
func WithLogger(l log.Logger) Opt {
	return func(m *MMU) {
		m.Log = l
	}
}

// WithMapper replaces the mapper selected from the cartridge header.
func WithMapper(newMapper func(s cartridge.BankSwitcher) cartridge.Mapper) Opt {
	return func(m *MMU) {
		m.mapper = newMapper(m)
	}
}

// New returns a new MMU for the given cartridge, timing OAM DMA
// transfers with clock.
func New(cart *cartridge.Cartridge, clock Clock, opts ...Opt) *MMU {
	m := &MMU{
		clock: clock,
		Log:   log.New(logrus.InfoLevel),
	}
	m.mapper = cart.NewMapper(m)

	for _, opt := range opts {
		opt(m)
	}

	m.init(cart.ROM())
	m.Log.Debugf("mmu: %s cartridge with %d ROM banks", m.mapper.Family(), cart.Banks())

	return m
}

// init loads the ROM windows and seeds the backing store with the
// register values left behind by the boot ROM.
func (m *MMU) init(rom []byte) {
	m.rom = rom
	m.rom0 = rom[:types.ROMBankSize]
	m.romx = rom[types.ROMBankSize : 2*types.ROMBankSize]
	m.bank = 1

	m.dmaActive = false
	m.sram.reset()

	for address, value := range powerUpDefaults {
		m.mem[address] = value
	}

	m.registers.Register(types.DMA, m.startDMA, types.NoRead)
	m.registers.Register(types.KEY1, types.NoWrite, func() uint8 {
		return 0xFF // speed switching is not emulated
	})
}

// powerUpDefaults are the values of the sound, LCD and palette
// registers after the boot ROM has run.
var powerUpDefaults = map[uint16]uint8{
	types.NR10: 0x80,
	types.NR11: 0xBF,
	types.NR12: 0xF3,
	types.NR14: 0xBF,
	types.NR21: 0x3F,
	types.NR24: 0xBF,
	types.NR30: 0x7F,
	types.NR31: 0xFF,
	types.NR32: 0x9F,
	types.NR34: 0xBF,
	types.NR41: 0xFF,
	types.NR44: 0xBF,
	types.NR50: 0x77,
	types.NR51: 0xF3,
	types.NR52: 0xF1,
	types.LCDC: 0x91,
	types.BGP:  0xFC,
	types.OBP0: 0xFF,
	types.OBP1: 0xFF,
}

// Attach registers the I/O registers of each peripheral. Attaching
// two peripherals that claim the same register panics.
func (m *MMU) Attach(peripherals ...types.Peripheral) {
	for _, p := range peripherals {
		p.Register(&m.registers)
	}
}

// Mapper returns the mapper decoding writes to the cartridge.
func (m *MMU) Mapper() cartridge.Mapper {
	return m.mapper
}

// Raw returns the backing store. Addresses below 0x8000 do not hold
// ROM contents. The returned slice must not be modified.
func (m *MMU) Raw() []byte {
	return m.mem[:]
}

// Read returns the value at the given address. It handles the ROM
// banks, the OAM DMA bus conflict and the I/O registers.
func (m *MMU) Read(address uint16) uint8 {
	if address < types.ROMBankN {
		return m.rom0[address]
	}
	if address < types.VRAM {
		return m.romx[address-types.ROMBankN]
	}

	// while a DMA is in flight the bus only sees the byte being
	// transferred
	if m.dmaActive && address < types.HRAM {
		if v, ok := m.dmaConflict(); ok {
			return v
		}
	}

	if address < types.IO {
		return m.mem[address]
	}

	if v, ok := m.registers.Read(address); ok {
		return v
	}
	return m.mem[address]
}

// ReadWord returns the little endian 16-bit value at the given
// address. Below 0x8000 the two bytes may straddle the ROM windows,
// so each is decoded independently.
func (m *MMU) ReadWord(address uint16) uint16 {
	if address < types.VRAM {
		return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
	}
	return uint16(m.mem[address]) | uint16(m.mem[address+1])<<8
}

// Write writes the value to the given address. The mapper decides
// first whether the write is bank control traffic; writes it lets
// through are dispatched to the owning peripheral, if any, and then
// committed to the backing store.
func (m *MMU) Write(address uint16, value uint8) {
	filtered := m.mapper.Write(address, value)

	if isExternalRAM(address) {
		// filtered or not, the byte lands in SRAM, as some cartridges
		// decode the same address as both mapper control and RAM
		m.writeExternalRAM(address, value)
		return
	}
	if filtered {
		return
	}

	if address >= types.IO && !m.registers.Write(address, value) {
		return
	}
	m.mem[address] = value
}

// WriteWord writes the little endian 16-bit value to the given
// address. Word writes go straight to the backing store: neither the
// mapper nor the peripherals see them.
func (m *MMU) WriteWord(address uint16, value uint16) {
	lo, hi := address, address+1
	changed := false
	if isExternalRAM(lo) {
		changed = m.mem[lo] != uint8(value)
	}
	if isExternalRAM(hi) {
		changed = changed || m.mem[hi] != uint8(value>>8)
	}

	m.mem[lo] = uint8(value)
	m.mem[hi] = uint8(value >> 8)

	if isExternalRAM(lo) {
		m.sram.mirror(&m.mem, lo)
	}
	if isExternalRAM(hi) {
		m.sram.mirror(&m.mem, hi)
	}
	if changed {
		m.sram.touch()
	}
}

func isExternalRAM(address uint16) bool {
	return address >= types.ExternalRAM && address < types.ExternalRAMEnd
}
