package mmu

import (
	"testing"

	"github.com/thelolagemann/gbmem/internal/cartridge"
	"github.com/thelolagemann/gbmem/internal/types"
)

func TestMMU_DMA(t *testing.T) {
	m, s := newMMU(t, newROM(2, cartridge.ROM))
	for i := uint16(0); i < types.OAMSize; i++ {
		m.Write(0xC100+i, uint8(i)+1)
	}
	m.Write(0xC000, 0x77)
	s.Tick(1000)

	m.Write(types.DMA, 0xC1)
	if !m.DMAActive() {
		t.Fatal("expected DMA to be active")
	}

	t.Run("copied", func(t *testing.T) {
		for i := uint16(0); i < types.OAMSize; i++ {
			if got := m.Raw()[types.OAM+i]; got != uint8(i)+1 {
				t.Fatalf("expected 0x%02X at 0x%04X, got 0x%02X", uint8(i)+1, types.OAM+i, got)
			}
		}
	})
	t.Run("bus conflict", func(t *testing.T) {
		tests := []struct {
			elapsed uint64
			address uint16
		}{
			{0, 0xC000},
			{10, 0x8000},
			{42, 0xFE00},
			{159, 0xFF7F},
		}
		base := s.Cycle()
		for _, tt := range tests {
			s.Tick(base + tt.elapsed - s.Cycle())
			want := uint8(tt.elapsed) + 1
			if got := m.Read(tt.address); got != want {
				t.Errorf("elapsed %d: expected 0x%02X at 0x%04X, got 0x%02X", tt.elapsed, want, tt.address, got)
			}
		}
	})
	t.Run("HRAM and ROM unaffected", func(t *testing.T) {
		m.Write(0xFF90, 0x99)
		if got := m.Read(0xFF90); got != 0x99 {
			t.Errorf("expected 0x99, got 0x%02X", got)
		}
		if got := m.Read(0x4000); got != 0x01 {
			t.Errorf("expected 0x01, got 0x%02X", got)
		}
	})
	t.Run("complete", func(t *testing.T) {
		s.Tick(1)
		if got := m.Read(0xC000); got != 0x77 {
			t.Errorf("expected 0x77, got 0x%02X", got)
		}
		if m.DMAActive() {
			t.Error("expected DMA to have completed")
		}
	})
	t.Run("from ROM", func(t *testing.T) {
		m.Write(types.DMA, 0x40)
		if got := m.Raw()[types.OAM]; got != 0x01 {
			t.Errorf("expected bank 1 contents, got 0x%02X", got)
		}
	})
}
