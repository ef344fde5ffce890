package cartridge

// MemoryBankController5 decodes writes for MBC5 cartridges. The ROM
// bank number is 9 bits wide, and unlike the earlier controllers bank
// 0 may be mapped into the switchable window.
type MemoryBankController5 struct {
	memoryBankController

	ramBank uint8
}

func newMemoryBankController5(banks int, s BankSwitcher) *MemoryBankController5 {
	return &MemoryBankController5{
		memoryBankController: memoryBankController{banks: banks, romBank: 1, s: s},
	}
}

// Write decodes a write to the cartridge.
func (m *MemoryBankController5) Write(address uint16, value uint8) bool {
	switch {
	case address < 0x2000:
		m.ramEnabled = ramGate(value)
	case address < 0x3000:
		m.setROMBank(m.romBank&0x100 | uint(value))
	case address < 0x4000:
		m.setROMBank(m.romBank&0xFF | uint(value&0x01)<<8)
	case address < 0x6000:
		m.ramBank = value & 0x0F
	case address < 0x8000:
	case isExternalRAM(address):
		return !m.ramEnabled
	default:
		return false
	}
	return true
}

// RAMBank returns the currently selected RAM bank.
func (m *MemoryBankController5) RAMBank() uint8 {
	return m.ramBank
}

func (m *MemoryBankController5) Family() Family {
	return FamilyMBC5
}
