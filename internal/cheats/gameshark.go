// Package cheats provides GameShark codes, which poke a value into
// RAM once per frame.
package cheats

import (
	"fmt"
	"strconv"
)

// Writer is the bus the codes are applied through.
type Writer interface {
	Write(address uint16, value uint8)
}

// A Code consists of eight-digit hex numbers, formatted as ABCDEFGH.
// Where AB represents the external RAM bank, CD is the new data, and
// GHEF is the memory address.
type Code struct {
	ExternalRAMBank uint8
	Address         uint16
	NewData         uint8

	Name    string // name provided by the user
	Enabled bool
}

// ParseCode parses a GameShark code.
func ParseCode(code string) (Code, error) {
	if len(code) != 8 {
		return Code{}, fmt.Errorf("cheats: invalid code length: %q", code)
	}

	bank, err := strconv.ParseUint(code[0:2], 16, 8)
	if err != nil {
		return Code{}, fmt.Errorf("cheats: invalid RAM bank in %q: %w", code, err)
	}
	data, err := strconv.ParseUint(code[2:4], 16, 8)
	if err != nil {
		return Code{}, fmt.Errorf("cheats: invalid data in %q: %w", code, err)
	}
	// the address is stored little endian
	address, err := strconv.ParseUint(code[6:8]+code[4:6], 16, 16)
	if err != nil {
		return Code{}, fmt.Errorf("cheats: invalid address in %q: %w", code, err)
	}
	if address < 0xA000 || address >= 0xE000 {
		return Code{}, fmt.Errorf("cheats: address 0x%04X in %q is not RAM", address, code)
	}

	return Code{
		ExternalRAMBank: uint8(bank),
		Address:         uint16(address),
		NewData:         uint8(data),
	}, nil
}

// GameShark holds the loaded codes.
type GameShark struct {
	Codes []Code
}

// NewGameShark creates a new GameShark.
func NewGameShark() *GameShark {
	return &GameShark{}
}

// Load parses a code and adds it, enabled, under name. A cheat may
// consist of several codes sharing a name.
func (g *GameShark) Load(code, name string) error {
	c, err := ParseCode(code)
	if err != nil {
		return err
	}
	c.Name = name
	c.Enabled = true
	g.Codes = append(g.Codes, c)
	return nil
}

// Enable enables the codes of the named cheat.
func (g *GameShark) Enable(name string) error {
	return g.set(name, true)
}

// Disable disables the codes of the named cheat.
func (g *GameShark) Disable(name string) error {
	return g.set(name, false)
}

func (g *GameShark) set(name string, enabled bool) error {
	found := false
	for i := range g.Codes {
		if g.Codes[i].Name == name {
			g.Codes[i].Enabled = enabled
			found = true
		}
	}
	if !found {
		return fmt.Errorf("cheats: code not found: %s", name)
	}
	return nil
}

// Apply writes every enabled code through w. The bus only maps a
// single external RAM bank, so the bank of a code is not used.
func (g *GameShark) Apply(w Writer) {
	for _, c := range g.Codes {
		if c.Enabled {
			w.Write(c.Address, c.NewData)
		}
	}
}
