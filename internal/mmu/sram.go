package mmu

import (
	"sync/atomic"

	"github.com/thelolagemann/gbmem/internal/types"
)

const sramSize = int(types.ExternalRAMEnd - types.ExternalRAM)

// sram tracks mutations of the external RAM range for the
// persistence observer, which runs on another goroutine.
//
// The emulation goroutine is the only writer. Each changed byte is
// committed to the backing store and to an atomic mirror of the
// range before the sequence number is incremented, so a reader that
// observes sequence S also observes every byte that produced it.
type sram struct {
	dirty    atomic.Bool
	sequence atomic.Uint64

	words [sramSize / 4]atomic.Uint32
}

func (s *sram) reset() {
	s.dirty.Store(false)
	s.sequence.Store(0)
	for i := range s.words {
		s.words[i].Store(0)
	}
}

// mirror copies the aligned word holding address from the backing
// store into the atomic mirror.
func (s *sram) mirror(mem *[0x10000]byte, address uint16) {
	base := address &^ 3
	s.words[(base-types.ExternalRAM)/4].Store(
		uint32(mem[base]) | uint32(mem[base+1])<<8 | uint32(mem[base+2])<<16 | uint32(mem[base+3])<<24,
	)
}

// touch records a mutation. It must follow the store it accompanies.
func (s *sram) touch() {
	s.dirty.Store(true)
	s.sequence.Add(1)
}

// writeExternalRAM commits a byte to external RAM, recording the
// mutation only if the stored value changes.
func (m *MMU) writeExternalRAM(address uint16, value uint8) {
	if m.mem[address] == value {
		return
	}
	m.mem[address] = value
	m.sram.mirror(&m.mem, address)
	m.sram.touch()
}

// SRAMDirty returns true if external RAM has been modified since
// the dirty flag was last cleared.
func (m *MMU) SRAMDirty() bool {
	return m.sram.dirty.Load()
}

// ClearSRAMDirty clears the dirty flag. The persistence observer
// calls it once a flush has completed without the sequence number
// changing.
func (m *MMU) ClearSRAMDirty() {
	m.sram.dirty.Store(false)
}

// SRAMSequence returns the generation of the last mutation of
// external RAM. It increases by one for every write that changes a
// stored byte.
func (m *MMU) SRAMSequence() uint64 {
	return m.sram.sequence.Load()
}

// SRAM returns a copy of external RAM (0xA000-0xBFFF). It may be
// called from any goroutine; the copy is only consistent if
// SRAMSequence is unchanged from before the call until after it.
func (m *MMU) SRAM() []byte {
	b := make([]byte, sramSize)
	for i := range m.sram.words {
		w := m.sram.words[i].Load()
		b[i*4] = uint8(w)
		b[i*4+1] = uint8(w >> 8)
		b[i*4+2] = uint8(w >> 16)
		b[i*4+3] = uint8(w >> 24)
	}
	return b
}

// LoadRAM seeds external RAM from a battery save, without marking it
// dirty. It must be called before emulation starts.
func (m *MMU) LoadRAM(b []byte) {
	if len(b) > sramSize {
		b = b[:sramSize]
	}
	copy(m.mem[types.ExternalRAM:types.ExternalRAMEnd], b)
	for address := types.ExternalRAM; address < types.ExternalRAMEnd; address += 4 {
		m.sram.mirror(&m.mem, address)
	}
}
