// Package gameboy wires the memory subsystem of a Game Boy to its
// peripherals, and paces emulation one frame at a time.
//
// The CPU is supplied by the caller: it drives the machine through
// the MMU and reports the cycles each instruction took. Without one,
// the machine idles as a halted CPU would, which is enough to run
// the LCD, timer and DMA timing for ROM inspection.
package gameboy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gbmem/internal/cartridge"
	"github.com/thelolagemann/gbmem/internal/cheats"
	"github.com/thelolagemann/gbmem/internal/interrupts"
	"github.com/thelolagemann/gbmem/internal/joypad"
	"github.com/thelolagemann/gbmem/internal/lcd"
	"github.com/thelolagemann/gbmem/internal/mmu"
	"github.com/thelolagemann/gbmem/internal/persist"
	"github.com/thelolagemann/gbmem/internal/scheduler"
	"github.com/thelolagemann/gbmem/internal/timer"
	"github.com/thelolagemann/gbmem/pkg/display"
	"github.com/thelolagemann/gbmem/pkg/log"
	"github.com/thelolagemann/gbmem/pkg/stats"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// FrameTime is the time it takes the Game Boy to draw a frame.
	FrameTime = time.Second * lcd.CyclesPerFrame / ClockSpeed
)

// CPU executes instructions against the MMU.
type CPU interface {
	// Step executes a single instruction, servicing any pending
	// interrupt first, and returns the number of cycles it took.
	Step() uint8
}

// halted is the CPU used when none is supplied. It never executes
// an instruction, ticking the clock in 4 cycle steps.
type halted struct{}

func (halted) Step() uint8 { return 4 }

// GameBoy represents a Game Boy. It contains all the components of
// the Game Boy.
type GameBoy struct {
	Cartridge  *cartridge.Cartridge
	MMU        *mmu.MMU
	Scheduler  *scheduler.Scheduler
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	LCD        *lcd.Controller
	Joypad     *joypad.State

	Notifier *display.Notifier
	Save     *persist.Observer
	Stats    *stats.Recorder
	Cheats   *cheats.GameShark

	cpu      CPU
	renderer *display.Renderer
	frames   uint64

	log.Logger

	err error
}

// New returns a new GameBoy for rom.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}

	l := log.New(logrus.InfoLevel)
	clock := scheduler.NewScheduler()
	irq := interrupts.NewService()
	memBus := mmu.New(cart, clock, mmu.WithLogger(l))

	g := &GameBoy{
		Cartridge:  cart,
		MMU:        memBus,
		Scheduler:  clock,
		Interrupts: irq,
		Timer:      timer.NewController(irq),
		LCD:        lcd.NewController(irq),
		Joypad:     joypad.New(),

		Notifier: display.NewNotifier(),
		cpu:      halted{},
		renderer: display.NewRenderer(display.Greyscale),

		Logger: l,
	}
	memBus.Attach(g.Interrupts, g.Timer, g.LCD, g.Joypad)

	for _, opt := range opts {
		opt(g)
	}
	if g.err != nil {
		return nil, g.err
	}

	g.Infof("gameboy: loaded %s", cart.Header.String())
	return g, nil
}

// Frame steps the emulation until the LCD has finished drawing the
// current frame, then publishes the frame to the notifier and
// returns it. With the LCD off, a frame lasts as long as it would
// with it on.
func (g *GameBoy) Frame() []byte {
	var elapsed uint32
	for {
		cycles := g.cpu.Step()
		g.Scheduler.Tick(uint64(cycles))
		g.Timer.Step(cycles)
		if g.LCD.Step(cycles) {
			break
		}
		if elapsed += uint32(cycles); !g.LCD.Enabled && elapsed >= lcd.CyclesPerFrame {
			break
		}
	}
	g.frames++
	if g.Cheats != nil {
		g.Cheats.Apply(g.MMU)
	}

	frame := g.renderer.Render(g.MMU.Raw())
	g.Notifier.Notify(frame)
	if g.Stats != nil {
		g.Stats.Sample()
	}
	return frame
}

// Frames returns the number of frames emulated.
func (g *GameBoy) Frames() uint64 {
	return g.frames
}

// Run emulates frames in real time until ctx is done. If a save file
// is configured, its observer runs alongside, and flushes a final
// time once emulation stops.
func (g *GameBoy) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var saveErr error
	if g.Save != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			saveErr = g.Save.Run(ctx)
		}()
	}

	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	start := time.Now()
	var emulated uint64
run:
	for {
		select {
		case <-ctx.Done():
			break run
		case <-ticker.C:
			g.Frame()
			emulated++
		}
	}

	cancel()
	wg.Wait()

	elapsed := time.Since(start)
	g.Debugf("gameboy: %d frames in %s, %d dropped by the display", emulated, elapsed, g.Notifier.Dropped())
	if saveErr != nil {
		return fmt.Errorf("gameboy: %w", saveErr)
	}
	return nil
}

// Press presses a button. It is safe to call from any goroutine.
func (g *GameBoy) Press(button joypad.Button) {
	g.Joypad.Press(button)
}

// Release releases a button. It is safe to call from any goroutine.
func (g *GameBoy) Release(button joypad.Button) {
	g.Joypad.Release(button)
}
