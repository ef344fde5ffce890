package types

// Peripheral is a hardware component that owns a range of I/O
// registers, such as the joypad, the timer or the LCD controller.
// When attached to the MMU, it registers the accessors for each of
// its registers into the MMU's dispatch table.
type Peripheral interface {
	Register(h *HardwareRegisters)
}
