package cartridge

// RTC holds the MBC3 real time clock registers, as last written by
// the game. The clock is not advanced.
type RTC struct {
	Seconds              uint8
	Minutes              uint8
	Hours                uint8
	DaysLower            uint8
	DaysHigherAndControl uint8

	LatchFlagValue uint8
	Latched        bool
}

// MemoryBankController3 decodes writes for MBC3 cartridges, which
// support up to 2MB of ROM, 32kB of RAM and a real time clock.
//
//	0x0000-0x1FFF - RAM and RTC enable (0x0A in the lower nibble)
//	0x2000-0x3FFF - ROM bank number, 7 bits (0 selects 1)
//	0x4000-0x5FFF - RAM bank number (0x00-0x03) or RTC register (0x08-0x0C)
//	0x6000-0x7FFF - latch clock data (0x00 then 0x01)
type MemoryBankController3 struct {
	memoryBankController

	ramBank  uint8
	register uint8 // selected RTC register, 0 when a RAM bank is mapped
	rtc      RTC
}

func newMemoryBankController3(banks int, s BankSwitcher) *MemoryBankController3 {
	return &MemoryBankController3{
		memoryBankController: memoryBankController{banks: banks, romBank: 1, s: s},
	}
}

// Write decodes a write to the cartridge.
func (m *MemoryBankController3) Write(address uint16, value uint8) bool {
	switch {
	case address < 0x2000:
		m.ramEnabled = ramGate(value)
	case address < 0x4000:
		bank := uint(value & 0x7F)
		if bank == 0 {
			bank = 1
		}
		m.setROMBank(bank)
	case address < 0x6000:
		switch {
		case value <= 0x03:
			m.ramBank = value
			m.register = 0
		case value >= 0x08 && value <= 0x0C:
			m.register = value
		}
	case address < 0x8000:
		if m.rtc.LatchFlagValue == 0x00 && value == 0x01 {
			m.rtc.Latched = !m.rtc.Latched
		}
		m.rtc.LatchFlagValue = value
	case isExternalRAM(address):
		if !m.ramEnabled {
			return true
		}
		if m.register != 0 {
			m.writeRTC(value)
			return true
		}
		return false
	default:
		return false
	}
	return true
}

func (m *MemoryBankController3) writeRTC(value uint8) {
	switch m.register {
	case 0x08:
		m.rtc.Seconds = value & 0x3F
	case 0x09:
		m.rtc.Minutes = value & 0x3F
	case 0x0A:
		m.rtc.Hours = value & 0x1F
	case 0x0B:
		m.rtc.DaysLower = value
	case 0x0C:
		m.rtc.DaysHigherAndControl = value & 0xC1
	}
}

// RTC returns a copy of the clock registers.
func (m *MemoryBankController3) RTC() RTC {
	return m.rtc
}

// RAMBank returns the currently selected RAM bank.
func (m *MemoryBankController3) RAMBank() uint8 {
	return m.ramBank
}

func (m *MemoryBankController3) Family() Family {
	return FamilyMBC3
}
