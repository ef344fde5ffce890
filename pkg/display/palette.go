package display

// Palette is the RGB value of each of the 4 shades the DMG can
// display, from lightest to darkest.
type Palette [4][3]uint8

var (
	// Greyscale is the default palette.
	Greyscale = Palette{
		{0xFF, 0xFF, 0xFF},
		{0xCC, 0xCC, 0xCC},
		{0x77, 0x77, 0x77},
		{0x00, 0x00, 0x00},
	}
	// Green attempts to emulate the colours of the original
	// DMG screen.
	Green = Palette{
		{0x9B, 0xBC, 0x0F},
		{0x8B, 0xAC, 0x0F},
		{0x30, 0x62, 0x30},
		{0x0F, 0x38, 0x0F},
	}
)

// shade maps colour number n through the palette register p.
func (p Palette) shade(register, n uint8) [3]uint8 {
	return p[(register>>(n*2))&0x03]
}
