package mmu

import "github.com/thelolagemann/gbmem/internal/types"

// openBus backs the switchable ROM window when a bank past the end of
// the ROM image is selected.
var openBus = func() []byte {
	b := make([]byte, types.ROMBankSize)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}()

// SwitchBank maps ROM bank n into 0x4000-0x7FFF. The bank is not
// validated against the cartridge's declared size; that is the
// mapper's concern. A bank past the end of the image reads as open
// bus.
func (m *MMU) SwitchBank(n uint) {
	m.bankSwitches.Add(1)
	m.bank = n

	offset := int(n) * types.ROMBankSize
	if offset+types.ROMBankSize > len(m.rom) {
		m.Log.Debugf("mmu: bank %d is outside of the %d byte ROM", n, len(m.rom))
		m.romx = openBus
		return
	}
	m.romx = m.rom[offset : offset+types.ROMBankSize]
}

// Bank returns the ROM bank mapped into 0x4000-0x7FFF.
func (m *MMU) Bank() uint {
	return m.bank
}

// BankSwitches returns the number of bank switches since power on.
func (m *MMU) BankSwitches() uint64 {
	return m.bankSwitches.Load()
}
