package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cespare/xxhash"
	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gbmem/internal/cheats"
	"github.com/thelolagemann/gbmem/internal/gameboy"
	"github.com/thelolagemann/gbmem/internal/types"
	"github.com/thelolagemann/gbmem/pkg/display"
	"github.com/thelolagemann/gbmem/pkg/display/web"
	"github.com/thelolagemann/gbmem/pkg/log"
	"github.com/thelolagemann/gbmem/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	saveFile := flag.String("save", "", "The battery save file, defaults to the rom file with a .sav extension")
	banks := flag.Bool("banks", false, "Print a hash of every ROM bank")
	snapshot := flag.String("snapshot", "", "Run for -frames frames and write the last frame to this PNG file")
	frames := flag.Int("frames", 60, "The number of frames to run for -snapshot")
	serve := flag.String("serve", "", "Run the emulator and serve it over websockets on this address, e.g. :8090")
	compress := flag.Int("compress", -1, "Brotli compress frames served over websockets at this quality (0-11)")
	cheatFile := flag.String("cheats", "", "A file of GameShark codes to apply")
	green := flag.Bool("green", false, "Use the green DMG palette")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := logrus.InfoLevel
	if *verbose {
		level = logrus.DebugLevel
	}
	logger := log.New(level)

	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err)
	}

	if *saveFile == "" {
		name := strings.TrimSuffix(*romFile, ".gz")
		*saveFile = strings.TrimSuffix(name, filepath.Ext(name)) + ".sav"
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithSave(*saveFile),
		gameboy.WithStats(600),
	}
	if *green {
		opts = append(opts, gameboy.WithPalette(display.Green))
	}
	if *cheatFile != "" {
		shark, err := loadCheats(*cheatFile)
		if err != nil {
			logger.Fatal(err)
		}
		opts = append(opts, gameboy.WithCheats(shark))
	}
	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		logger.Fatal(err)
	}

	printHeader(gb)
	if *banks {
		printBanks(gb)
	}

	if *snapshot != "" {
		if err := writeSnapshot(gb, *snapshot, *frames); err != nil {
			logger.Fatal(err)
		}
	}

	if *serve == "" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	webOpts := []web.Opt{
		web.WithAddress(*serve),
		web.WithLogger(logger),
		web.WithStats(gb.Stats),
	}
	if *compress >= 0 {
		webOpts = append(webOpts, web.WithCompression(*compress))
	}
	var driver display.Driver = web.New(webOpts...)

	errc := make(chan error, 1)
	go func() {
		errc <- driver.Start(ctx, gb.Notifier, gb)
	}()

	if err := gb.Run(ctx); err != nil {
		logger.Errorf("%v", err)
	}
	stop()
	if err := <-errc; err != nil {
		logger.Errorf("%v", err)
	}
}

func loadCheats(path string) (*cheats.GameShark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cheats: %w", err)
	}
	defer f.Close()

	shark := cheats.NewGameShark()
	if err := cheats.Parse(f, shark); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return shark, nil
}

func printHeader(gb *gameboy.GameBoy) {
	c := gb.Cartridge
	fmt.Println(c.Header.String())
	fmt.Printf("Mapper: %s | Banks: %d | Battery: %v | Header checksum valid: %v\n",
		c.Family(), c.Banks(), c.Battery(), c.Valid())
}

// printBanks prints a hash of each ROM bank as seen through the
// switchable window, marking banks that mirror an earlier one.
func printBanks(gb *gameboy.GameBoy) {
	seen := make(map[uint64]uint)
	window := make([]byte, types.ROMBankSize)

	previous := gb.MMU.Bank()
	for bank := uint(1); bank < uint(gb.Cartridge.Banks()); bank++ {
		gb.MMU.SwitchBank(bank)
		for i := range window {
			window[i] = gb.MMU.Read(types.ROMBankN + uint16(i))
		}

		h := xxhash.Sum64(window)
		if first, ok := seen[h]; ok {
			fmt.Printf("bank %3d %016x (mirrors bank %d)\n", bank, h, first)
			continue
		}
		seen[h] = bank
		fmt.Printf("bank %3d %016x\n", bank, h)
	}
	gb.MMU.SwitchBank(previous)
}

func writeSnapshot(gb *gameboy.GameBoy, path string, frames int) error {
	frame := gb.Frame()
	for i := 1; i < frames; i++ {
		frame = gb.Frame()
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, display.Scale(display.Image(frame), 1.5)); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}
