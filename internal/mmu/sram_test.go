package mmu

import (
	"bytes"
	"sync"
	"testing"

	"github.com/thelolagemann/gbmem/internal/cartridge"
)

func TestMMU_SRAM(t *testing.T) {
	t.Run("sequence", func(t *testing.T) {
		m, _ := newMMU(t, newROM(2, cartridge.ROM))
		if m.SRAMDirty() || m.SRAMSequence() != 0 {
			t.Fatal("expected clean SRAM at power on")
		}

		m.Write(0xA000, 0x01)
		if !m.SRAMDirty() || m.SRAMSequence() != 1 {
			t.Errorf("expected dirty SRAM at sequence 1, got %v at %d", m.SRAMDirty(), m.SRAMSequence())
		}
		m.Write(0xA000, 0x01)
		if !m.SRAMDirty() || m.SRAMSequence() != 1 {
			t.Errorf("expected rewrite of the same value to leave sequence at 1, got %d", m.SRAMSequence())
		}

		m.ClearSRAMDirty()
		m.Write(0xA000, 0x01)
		if m.SRAMDirty() {
			t.Error("expected rewrite of the same value to leave SRAM clean")
		}
		m.Write(0xBFFF, 0x02)
		if !m.SRAMDirty() || m.SRAMSequence() != 2 {
			t.Errorf("expected dirty SRAM at sequence 2, got %v at %d", m.SRAMDirty(), m.SRAMSequence())
		}
	})
	t.Run("filtered writes still land", func(t *testing.T) {
		// MBC1 with RAM disabled reports SRAM writes as filtered
		nrom, _ := newMMU(t, newROM(2, cartridge.ROM))
		mbc1, _ := newMMU(t, newROM(4, cartridge.MBC1RAMBATT))
		if !mbc1.Mapper().Write(0xA000, 0x00) {
			t.Fatal("expected disabled MBC1 RAM to filter the write")
		}

		for _, m := range []*MMU{nrom, mbc1} {
			m.Write(0xA000, 0x5A)
			if got := m.Read(0xA000); got != 0x5A {
				t.Errorf("%s: expected 0x5A, got 0x%02X", m.Mapper().Family(), got)
			}
			if !m.SRAMDirty() || m.SRAMSequence() != 1 {
				t.Errorf("%s: expected dirty SRAM at sequence 1, got %v at %d", m.Mapper().Family(), m.SRAMDirty(), m.SRAMSequence())
			}
		}
	})
	t.Run("word", func(t *testing.T) {
		m, _ := newMMU(t, newROM(2, cartridge.ROM))
		m.WriteWord(0xA010, 0x1234)
		if m.SRAMSequence() != 1 {
			t.Errorf("expected a single increment for a word write, got %d", m.SRAMSequence())
		}
		m.WriteWord(0xA010, 0x1234)
		if m.SRAMSequence() != 1 {
			t.Errorf("expected rewrite of the same word to leave sequence at 1, got %d", m.SRAMSequence())
		}
		m.WriteWord(0x9FFF, 0xAB00)
		if m.SRAMSequence() != 2 || m.Read(0xA000) != 0xAB {
			t.Errorf("expected word straddling into SRAM to be tracked, got sequence %d", m.SRAMSequence())
		}
		m.WriteWord(0xBFFF, 0x00CD)
		if m.SRAMSequence() != 3 {
			t.Errorf("expected word straddling out of SRAM to be tracked, got sequence %d", m.SRAMSequence())
		}
	})
	t.Run("snapshot", func(t *testing.T) {
		m, _ := newMMU(t, newROM(2, cartridge.ROM))
		save := make([]byte, 0x2000)
		for i := range save {
			save[i] = uint8(i * 3)
		}
		m.LoadRAM(save)
		if m.SRAMDirty() || m.SRAMSequence() != 0 {
			t.Error("expected loading a save to leave SRAM clean")
		}
		if m.Read(0xA003) != save[3] {
			t.Errorf("expected 0x%02X, got 0x%02X", save[3], m.Read(0xA003))
		}

		m.Write(0xA001, 0xEE)
		save[1] = 0xEE
		if !bytes.Equal(m.SRAM(), save) {
			t.Error("expected snapshot to match the written contents")
		}
	})
}

// TestMMU_SRAMConcurrent exercises the handoff between the
// emulation goroutine and a reader polling for changes. Run with
// -race.
func TestMMU_SRAMConcurrent(t *testing.T) {
	m, _ := newMMU(t, newROM(2, cartridge.ROM))

	var wg sync.WaitGroup
	wg.Add(1)
	done := make(chan struct{})
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			seq := m.SRAMSequence()
			snapshot := m.SRAM()
			// every write so far has produced a value equal to its
			// sequence number at 0xA000
			if seq > 0 && seq < 0x100 && snapshot[0] < uint8(seq) {
				t.Errorf("snapshot at sequence %d older than the write that produced it: 0x%02X", seq, snapshot[0])
				return
			}
		}
	}()

	for i := 1; i < 0x100; i++ {
		m.Write(0xA000, uint8(i))
	}
	close(done)
	wg.Wait()

	if m.SRAMSequence() != 0xFF {
		t.Errorf("expected sequence 255, got %d", m.SRAMSequence())
	}
}
