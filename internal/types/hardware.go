package types

import "fmt"

// HardwareRegisters is the I/O dispatch table of a single emulated
// console. It is indexed by the address of the hardware register
// minus 0xFF00, with the IE register (0xFFFF) stored in the final
// slot. Addresses with no registered accessor are left to the
// backing store.
type HardwareRegisters [0x81]*HardwareRegister

// HardwareRegister is the accessor pair for a hardware register.
// Either function may be nil: a nil get leaves reads to the backing
// store, a nil set means writes only land in the backing store.
type HardwareRegister struct {
	address  HardwareAddress
	set      func(v uint8)
	get      func() uint8
	unbacked bool
}

// HardwareOpt configures a hardware register.
type HardwareOpt func(*HardwareRegister)

// NoRead is passed as the get function of registers that are
// write-only from the peripheral's point of view, the last value
// written being served from the backing store.
var NoRead func() uint8

// NoWrite is passed as the set function of registers that have
// no write side effects.
var NoWrite func(uint8)

// Unbacked stops writes to the register from also being committed
// to the backing store.
func Unbacked() HardwareOpt {
	return func(h *HardwareRegister) {
		h.unbacked = true
	}
}

func index(address HardwareAddress) (int, bool) {
	if address == IE {
		return 0x80, true
	}
	if address < IO || address >= HRAM {
		return 0, false
	}
	return int(address - IO), true
}

// Register registers the accessors for the hardware register at the
// given address. Registering the same address twice is a wiring
// error, and panics.
func (h *HardwareRegisters) Register(address HardwareAddress, set func(v uint8), get func() uint8, opts ...HardwareOpt) {
	i, ok := index(address)
	if !ok {
		panic(fmt.Sprintf("hardware: 0x%04X is not a hardware register address", address))
	}
	if h[i] != nil {
		panic(fmt.Sprintf("hardware: address 0x%04X has already been registered", address))
	}
	r := &HardwareRegister{
		address: address,
		set:     set,
		get:     get,
	}
	for _, opt := range opts {
		opt(r)
	}
	h[i] = r
}

// Has returns true if a register has been registered at address.
func (h *HardwareRegisters) Has(address HardwareAddress) bool {
	i, ok := index(address)
	return ok && h[i] != nil
}

// Read returns the value of the hardware register at address, and
// false if the read should instead be served by the backing store.
func (h *HardwareRegisters) Read(address HardwareAddress) (uint8, bool) {
	i, ok := index(address)
	if !ok || h[i] == nil || h[i].get == nil {
		return 0, false
	}
	return h[i].get(), true
}

// Write forwards value to the hardware register at address. It
// returns whether the value should also be committed to the
// backing store.
func (h *HardwareRegisters) Write(address HardwareAddress, value uint8) bool {
	i, ok := index(address)
	if !ok || h[i] == nil {
		return true
	}
	r := h[i]
	if r.set != nil {
		r.set(value)
	}
	return !r.unbacked
}

// Address returns the address the register was registered at.
func (r *HardwareRegister) Address() HardwareAddress {
	return r.address
}
