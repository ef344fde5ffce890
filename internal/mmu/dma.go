package mmu

import "github.com/thelolagemann/gbmem/internal/types"

// dmaCycles is the number of cycles an OAM DMA transfer occupies
// the bus for.
const dmaCycles = 160

// startDMA handles writes to the DMA register. The whole transfer
// is performed immediately, so the OAM contents are always final,
// and the bus is then marked as busy for dmaCycles from now.
func (m *MMU) startDMA(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < types.OAMSize; i++ {
		m.mem[types.OAM+i] = m.peek(source + i)
	}

	m.dmaActive = true
	m.dmaStart = m.clock.Cycle()
}

// dmaConflict returns the byte currently being transferred, or false
// once the transfer has completed.
func (m *MMU) dmaConflict() (uint8, bool) {
	elapsed := m.clock.Cycle() - m.dmaStart
	if elapsed >= dmaCycles {
		m.dmaActive = false
		return 0, false
	}
	return m.mem[uint64(types.OAM)+elapsed], true
}

// DMAActive returns true if an OAM DMA transfer was in flight the
// last time the bus was read.
func (m *MMU) DMAActive() bool {
	return m.dmaActive
}

// peek returns the value at address as seen by the DMA controller,
// which reads ROM through the current bank mapping but bypasses the
// I/O registers.
func (m *MMU) peek(address uint16) uint8 {
	switch {
	case address < types.ROMBankN:
		return m.rom0[address]
	case address < types.VRAM:
		return m.romx[address-types.ROMBankN]
	}
	return m.mem[address]
}
