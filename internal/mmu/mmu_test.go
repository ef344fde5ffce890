package mmu

import (
	"testing"

	"github.com/thelolagemann/gbmem/internal/cartridge"
	"github.com/thelolagemann/gbmem/internal/interrupts"
	"github.com/thelolagemann/gbmem/internal/joypad"
	"github.com/thelolagemann/gbmem/internal/scheduler"
	"github.com/thelolagemann/gbmem/internal/types"
	"github.com/thelolagemann/gbmem/pkg/log"
)

// newROM returns a ROM image of the given number of banks, with
// every byte of bank n (n > 0) set to n and bank 0 left zeroed
// except for the cartridge type.
func newROM(banks int, t cartridge.Type) []byte {
	rom := make([]byte, banks*types.ROMBankSize)
	for bank := 1; bank < banks; bank++ {
		for i := 0; i < types.ROMBankSize; i++ {
			rom[bank*types.ROMBankSize+i] = uint8(bank)
		}
	}
	rom[0x147] = uint8(t)
	return rom
}

func newMMU(t *testing.T, rom []byte, opts ...Opt) (*MMU, *scheduler.Scheduler) {
	t.Helper()
	cart, err := cartridge.New(rom)
	if err != nil {
		t.Fatal(err)
	}
	s := scheduler.NewScheduler()
	opts = append([]Opt{WithLogger(log.NewNullLogger())}, opts...)
	return New(cart, s, opts...), s
}

func TestMMU_ReadROM(t *testing.T) {
	rom := newROM(4, cartridge.ROM)
	rom[0x0100] = 0x42
	rom[0x3FFF] = 0x24
	m, _ := newMMU(t, rom)

	t.Run("bank 0", func(t *testing.T) {
		for _, bank := range []uint{1, 2, 3} {
			m.SwitchBank(bank)
			for a := uint16(0); a < types.ROMBankN; a++ {
				if m.Read(a) != rom[a] {
					t.Fatalf("bank %d: expected 0x%02X at 0x%04X, got 0x%02X", bank, rom[a], a, m.Read(a))
				}
			}
		}
	})
	t.Run("bank n", func(t *testing.T) {
		for _, bank := range []uint{1, 2, 3} {
			m.SwitchBank(bank)
			for a := uint16(types.ROMBankN); a < types.VRAM; a++ {
				want := rom[int(bank)*types.ROMBankSize+int(a-types.ROMBankN)]
				if got := m.Read(a); got != want {
					t.Fatalf("bank %d: expected 0x%02X at 0x%04X, got 0x%02X", bank, want, a, got)
				}
			}
			if m.Bank() != bank {
				t.Errorf("expected bank %d, got %d", bank, m.Bank())
			}
		}
	})
	t.Run("word straddling the seam", func(t *testing.T) {
		m.SwitchBank(2)
		if got := m.ReadWord(0x3FFF); got != 0x0224 {
			t.Errorf("expected 0x0224, got 0x%04X", got)
		}
	})
	t.Run("out of range bank", func(t *testing.T) {
		m.SwitchBank(0x40)
		if got := m.Read(0x4000); got != 0xFF {
			t.Errorf("expected open bus 0xFF, got 0x%02X", got)
		}
	})
}

func TestMMU_BankSwitches(t *testing.T) {
	m, _ := newMMU(t, newROM(4, cartridge.MBC1))
	if m.Bank() != 1 || m.BankSwitches() != 0 {
		t.Fatalf("expected bank 1 with no switches, got bank %d with %d switches", m.Bank(), m.BankSwitches())
	}

	m.Write(0x2000, 0x02)
	if m.Bank() != 2 {
		t.Errorf("expected MBC1 write to select bank 2, got %d", m.Bank())
	}
	if m.Read(0x4000) != 0x02 {
		t.Errorf("expected bank 2 contents, got 0x%02X", m.Read(0x4000))
	}
	m.SwitchBank(3)
	if m.BankSwitches() != 2 {
		t.Errorf("expected 2 bank switches, got %d", m.BankSwitches())
	}
}

func TestMMU_RoundTrip(t *testing.T) {
	m, _ := newMMU(t, newROM(2, cartridge.ROM))

	t.Run("byte", func(t *testing.T) {
		for a := uint32(types.VRAM); a < uint32(types.IO); a++ {
			v := uint8(a ^ a>>8)
			m.Write(uint16(a), v)
			if got := m.Read(uint16(a)); got != v {
				t.Fatalf("expected 0x%02X at 0x%04X, got 0x%02X", v, a, got)
			}
		}
	})
	t.Run("word", func(t *testing.T) {
		for a := uint32(types.VRAM); a < uint32(types.IO)-1; a += 2 {
			v := uint16(a*7 + 3)
			m.WriteWord(uint16(a), v)
			if got := m.ReadWord(uint16(a)); got != v {
				t.Fatalf("expected 0x%04X at 0x%04X, got 0x%04X", v, a, got)
			}
		}
	})
	t.Run("HRAM", func(t *testing.T) {
		m.Write(0xFF80, 0x5A)
		if m.Read(0xFF80) != 0x5A {
			t.Errorf("expected 0x5A, got 0x%02X", m.Read(0xFF80))
		}
	})
}

func TestMMU_ROMWrites(t *testing.T) {
	t.Run("NROM", func(t *testing.T) {
		m, _ := newMMU(t, newROM(2, cartridge.ROM))
		m.Write(0x2000, 0x01)
		m.Write(0x7FFF, 0x01)
		if m.Raw()[0x2000] != 0 || m.Raw()[0x7FFF] != 0 {
			t.Error("expected ROM writes to be discarded")
		}
		if m.Read(0x7FFF) != 0x01 {
			t.Errorf("expected ROM contents to be unchanged, got 0x%02X", m.Read(0x7FFF))
		}
	})
	t.Run("word writes bypass the mapper", func(t *testing.T) {
		m, _ := newMMU(t, newROM(4, cartridge.MBC1))
		m.WriteWord(0x00A0, 0x0A0A)
		m.WriteWord(0x2000, 0x0003)
		if m.Bank() != 1 || m.BankSwitches() != 0 {
			t.Errorf("expected no bank switch, got bank %d after %d switches", m.Bank(), m.BankSwitches())
		}
		if m.Raw()[0x2000] != 0x03 {
			t.Errorf("expected word write to land in the backing store, got 0x%02X", m.Raw()[0x2000])
		}

		m.Write(0x2000, 0x03)
		if m.Bank() != 3 {
			t.Errorf("expected byte write to select bank 3, got %d", m.Bank())
		}
	})
}

func TestMMU_Registers(t *testing.T) {
	m, _ := newMMU(t, newROM(2, cartridge.ROM))
	irq := interrupts.NewService()
	pad := joypad.New()
	m.Attach(irq, pad)

	t.Run("power up", func(t *testing.T) {
		for address, want := range map[uint16]uint8{
			types.LCDC: 0x91,
			types.BGP:  0xFC,
			types.NR52: 0xF1,
		} {
			if got := m.Read(address); got != want {
				t.Errorf("0x%04X: expected 0x%02X, got 0x%02X", address, want, got)
			}
		}
	})
	t.Run("KEY1", func(t *testing.T) {
		m.Write(types.KEY1, 0x01)
		if got := m.Read(types.KEY1); got != 0xFF {
			t.Errorf("expected 0xFF, got 0x%02X", got)
		}
	})
	t.Run("IE", func(t *testing.T) {
		m.Write(types.IE, 0x1F)
		if irq.Enable != 0x1F {
			t.Errorf("expected interrupts to be enabled, got 0x%02X", irq.Enable)
		}
		if m.Read(types.IE) != 0x1F {
			t.Errorf("expected 0x1F, got 0x%02X", m.Read(types.IE))
		}
		if m.Raw()[types.IE] != 0 {
			t.Errorf("expected IE to be unbacked, got 0x%02X", m.Raw()[types.IE])
		}
	})
	t.Run("IF", func(t *testing.T) {
		m.Write(types.IF, 0xFF)
		if got := m.Read(types.IF); got != 0xFF {
			t.Errorf("expected 0xFF, got 0x%02X", got)
		}
		if irq.Flag != 0x1F {
			t.Errorf("expected flag 0x1F, got 0x%02X", irq.Flag)
		}
	})
	t.Run("joypad", func(t *testing.T) {
		m.Write(types.P1, 0x30)
		if got := m.Read(types.P1); got != 0xFF {
			t.Errorf("expected 0xFF, got 0x%02X", got)
		}

		pad.Press(joypad.ButtonA)
		m.Write(types.P1, 0x10)
		if got := m.Read(types.P1); got != 0xDE {
			t.Errorf("expected 0xDE, got 0x%02X", got)
		}
	})
	t.Run("unregistered", func(t *testing.T) {
		m.Write(0xFF7F, 0x12)
		if got := m.Read(0xFF7F); got != 0x12 {
			t.Errorf("expected 0x12, got 0x%02X", got)
		}
	})
	t.Run("duplicate", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected attaching the joypad twice to panic")
			}
		}()
		m.Attach(pad)
	})
}

func TestMMU_Scenario(t *testing.T) {
	rom := newROM(2, cartridge.ROM)
	for i := types.ROMBankSize; i < 2*types.ROMBankSize; i++ {
		rom[i] = 0xAA
	}
	m, _ := newMMU(t, rom)

	m.SwitchBank(1)
	if got := m.Read(0x4000); got != 0xAA {
		t.Errorf("expected 0xAA, got 0x%02X", got)
	}
	m.Write(0xB000, 0x12)
	if got := m.Read(0xB000); got != 0x12 {
		t.Errorf("expected 0x12, got 0x%02X", got)
	}
	if !m.SRAMDirty() {
		t.Error("expected SRAM to be dirty")
	}
	if m.SRAMSequence() != 1 {
		t.Errorf("expected sequence 1, got %d", m.SRAMSequence())
	}
}
