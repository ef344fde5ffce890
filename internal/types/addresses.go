// Package types holds the address map of the Game Boy and the
// dispatch table used to route memory-mapped I/O to the
// peripheral that owns it.
package types

// The Game Boy's 64kB address space is partitioned into fixed
// regions. Each constant marks the first address of a region, the
// region ending where the next begins.
const (
	// ROMBank0 is the fixed first 16kB of the cartridge ROM.
	ROMBank0 uint16 = 0x0000
	// ROMBankN is the switchable 16kB ROM window.
	ROMBankN uint16 = 0x4000
	// VRAM is the start of general RAM, beginning with video RAM.
	VRAM uint16 = 0x8000
	// ExternalRAM is the cartridge battery-backed RAM (SRAM).
	ExternalRAM uint16 = 0xA000
	// WRAM is the internal work RAM.
	WRAM uint16 = 0xC000
	// OAM is the sprite attribute table (160B).
	OAM uint16 = 0xFE00
	// Unusable is the unmapped region after OAM. It is treated as
	// plain RAM.
	Unusable uint16 = 0xFEA0
	// IO is the memory-mapped I/O register range.
	IO uint16 = 0xFF00
	// HRAM is the high RAM, ending with the IE register at 0xFFFF.
	HRAM uint16 = 0xFF80
)

const (
	// ROMBankSize is the size of a single ROM bank.
	ROMBankSize = 0x4000
	// ExternalRAMEnd is the first address past the external RAM.
	ExternalRAMEnd uint16 = 0xC000
	// OAMSize is the number of bytes copied by an OAM DMA transfer.
	OAMSize = 0xA0
)

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// DIV is the address of the DIV hardware register. The DIV
	// hardware register is incremented at a rate of 16384Hz. Internally
	// it is a 16-bit register, but only the upper 8 bits may be read.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. It is
	// incremented at a rate specified by TAC, and reloaded from TMA
	// when it overflows.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	NR52 HardwareAddress = 0xFF26

	// LCDC is the address of the LCDC hardware register. The LCDC
	// hardware register is used to control the LCD.
	//
	//  Bit 7: LCD Enable             (0=Off, 1=On)
	//  Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0: BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register. It holds
	// the LCD mode, the LY=LYC coincidence flag, and the STAT
	// interrupt sources.
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical background scroll position.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal background scroll position.
	SCX HardwareAddress = 0xFF43
	// LY is the current scanline (0-153).
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY to drive the coincidence flag.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the DMA hardware register. Writing a value
	// to DMA transfers 160 bytes from page value*0x100 to OAM.
	DMA HardwareAddress = 0xFF46
	// BGP is the background palette.
	//
	//  Bit 7-6 - Shade for Color Number 3
	//  Bit 5-4 - Shade for Color Number 2
	//  Bit 3-2 - Shade for Color Number 1
	//  Bit 1-0 - Shade for Color Number 0
	BGP HardwareAddress = 0xFF47
	// OBP0 is sprite palette 0.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is sprite palette 1.
	OBP1 HardwareAddress = 0xFF49
	// WY is the Y position of the window.
	WY HardwareAddress = 0xFF4A
	// WX is the X position of the window, plus 7.
	WX HardwareAddress = 0xFF4B
	// KEY1 is the CGB speed switch register. Speed switching is
	// not emulated, so it always reads 0xFF.
	KEY1 HardwareAddress = 0xFF4D
	// IE is the address of the IE hardware register. Writing a 1
	// to a bit in IE enables the corresponding interrupt.
	IE HardwareAddress = 0xFFFF
)
