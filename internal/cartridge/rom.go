package cartridge

// romOnly is the decoder for cartridges without a mapper. Any write
// below 0x8000 is filtered, everything else is ordinary data.
type romOnly struct{}

func (romOnly) Write(address uint16, _ uint8) bool {
	return address < 0x8000
}

func (romOnly) Family() Family {
	return FamilyNROM
}
