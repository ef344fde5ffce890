package gameboy

import (
	"github.com/thelolagemann/gbmem/internal/cheats"
	"github.com/thelolagemann/gbmem/internal/interrupts"
	"github.com/thelolagemann/gbmem/internal/mmu"
	"github.com/thelolagemann/gbmem/internal/persist"
	"github.com/thelolagemann/gbmem/pkg/display"
	"github.com/thelolagemann/gbmem/pkg/log"
	"github.com/thelolagemann/gbmem/pkg/stats"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger of the GameBoy and its MMU.
func WithLogger(l log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = l
		gb.MMU.Log = l
	}
}

// WithCPU attaches the CPU returned by newCPU.
func WithCPU(newCPU func(bus *mmu.MMU, irq *interrupts.Service) CPU) Opt {
	return func(gb *GameBoy) {
		gb.cpu = newCPU(gb.MMU, gb.Interrupts)
	}
}

// WithPalette sets the palette frames are rendered with.
func WithPalette(p display.Palette) Opt {
	return func(gb *GameBoy) {
		gb.renderer.Palette = p
	}
}

// WithStats records the memory activity of the last size frames.
func WithStats(size int) Opt {
	return func(gb *GameBoy) {
		gb.Stats = stats.NewRecorder(gb.MMU, size)
	}
}

// WithCheats applies the enabled GameShark codes at the end of
// every frame.
func WithCheats(g *cheats.GameShark) Opt {
	return func(gb *GameBoy) {
		gb.Cheats = g
	}
}

// WithSave loads the battery save at path, if there is one, and
// keeps it up to date while the GameBoy runs. It has no effect for
// cartridges without a battery.
func WithSave(path string, opts ...persist.Opt) Opt {
	return func(gb *GameBoy) {
		if !gb.Cartridge.Battery() {
			gb.Debugf("gameboy: %s has no battery, not saving", gb.Cartridge.Title)
			return
		}

		b, err := persist.Load(path)
		if err != nil {
			gb.err = err
			return
		}
		if b != nil {
			gb.MMU.LoadRAM(b)
			gb.Infof("gameboy: loaded %d byte save from %s", len(b), path)
		}

		opts = append([]persist.Opt{
			persist.WithLogger(gb.Logger),
			persist.WithSize(int(gb.Cartridge.RAMSize)),
		}, opts...)
		gb.Save = persist.New(gb.MMU, path, opts...)
	}
}
