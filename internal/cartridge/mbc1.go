package cartridge

// MemoryBankController1 decodes writes for MBC1 cartridges, which
// support up to 2MB of ROM and 32kB of RAM.
//
//	0x0000-0x1FFF - RAM enable (0x0A in the lower nibble)
//	0x2000-0x3FFF - ROM bank number, lower 5 bits (0 selects 1)
//	0x4000-0x5FFF - RAM bank number, or upper 2 bits of ROM bank
//	0x6000-0x7FFF - banking mode select
type MemoryBankController1 struct {
	memoryBankController

	bank1   uint8
	bank2   uint8
	ramBank uint8
	mode    bool
}

func newMemoryBankController1(banks int, s BankSwitcher) *MemoryBankController1 {
	return &MemoryBankController1{
		memoryBankController: memoryBankController{banks: banks, romBank: 1, s: s},
		bank1:                1,
	}
}

// Write decodes a write to the cartridge.
func (m *MemoryBankController1) Write(address uint16, value uint8) bool {
	switch {
	case address < 0x2000:
		m.ramEnabled = ramGate(value)
	case address < 0x4000:
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
		m.setROMBank(uint(m.bank2)<<5 | uint(m.bank1))
	case address < 0x6000:
		m.bank2 = value & 0x03
		if m.mode {
			m.ramBank = m.bank2
		}
		m.setROMBank(uint(m.bank2)<<5 | uint(m.bank1))
	case address < 0x8000:
		m.mode = value&0x01 == 0x01
		if m.mode {
			m.ramBank = m.bank2
		} else {
			m.ramBank = 0
		}
	case isExternalRAM(address):
		return !m.ramEnabled
	default:
		return false
	}
	return true
}

// RAMBank returns the currently selected RAM bank.
func (m *MemoryBankController1) RAMBank() uint8 {
	return m.ramBank
}

func (m *MemoryBankController1) Family() Family {
	return FamilyMBC1
}
