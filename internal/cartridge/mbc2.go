package cartridge

// MemoryBankController2 decodes writes for MBC2 cartridges. Bit 8 of
// the address distinguishes RAM enable from ROM bank select for
// writes below 0x4000; writes to 0x4000-0x7FFF have no effect.
type MemoryBankController2 struct {
	memoryBankController
}

func newMemoryBankController2(banks int, s BankSwitcher) *MemoryBankController2 {
	return &MemoryBankController2{
		memoryBankController: memoryBankController{banks: banks, romBank: 1, s: s},
	}
}

// Write decodes a write to the cartridge.
func (m *MemoryBankController2) Write(address uint16, value uint8) bool {
	switch {
	case address < 0x4000:
		if address&0x100 == 0x100 {
			bank := uint(value & 0x0F)
			if bank == 0 {
				bank = 1
			}
			m.setROMBank(bank)
		} else {
			m.ramEnabled = ramGate(value)
		}
	case address < 0x8000:
	case isExternalRAM(address):
		return !m.ramEnabled
	default:
		return false
	}
	return true
}

func (m *MemoryBankController2) Family() Family {
	return FamilyMBC2
}
