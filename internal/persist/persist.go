// Package persist writes battery backed cartridge RAM to disk while
// the emulator runs, without ever pausing emulation.
//
// An Observer polls the MMU's SRAM tracking counters from its own
// goroutine. A flush samples the sequence number, snapshots the
// external RAM, writes it out, and only then checks that the
// sequence number has not moved; if it has, the snapshot may be
// stale and the flush is retried.
package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gbmem/pkg/log"
)

// ErrStale is returned by Flush when the external RAM kept changing
// for every attempt of a flush.
var ErrStale = errors.New("persist: sram changed during flush")

// Source is the SRAM tracking surface of the MMU.
type Source interface {
	SRAMDirty() bool
	ClearSRAMDirty()
	SRAMSequence() uint64
	SRAM() []byte
}

// Observer flushes the external RAM of a Source to a save file.
type Observer struct {
	source Source
	path   string

	size     int
	interval time.Duration
	attempts int

	mu        sync.Mutex
	persisted uint64 // sequence of the last completed flush
	hash      uint64 // hash of the save file contents
	flushes   uint64

	Log log.Logger
}

// Opt configures an Observer.
type Opt func(o *Observer)

// WithInterval sets how often the observer polls for changes.
func WithInterval(d time.Duration) Opt {
	return func(o *Observer) {
		o.interval = d
	}
}

// WithSize truncates the save file to the cartridge's RAM size. A
// size of 0, or larger than the external RAM range, saves the whole
// range.
func WithSize(n int) Opt {
	return func(o *Observer) {
		o.size = n
	}
}

// WithAttempts sets how many times a flush is attempted before
// giving up with ErrStale.
func WithAttempts(n int) Opt {
	return func(o *Observer) {
		o.attempts = n
	}
}

// WithLogger sets the logger used by the observer.
func WithLogger(l log.Logger) Opt {
	return func(o *Observer) {
		o.Log = l
	}
}

// New returns an Observer saving the external RAM of source to path.
// The current contents of source are taken as already persisted, so
// a save file is only written once the RAM changes.
func New(source Source, path string, opts ...Opt) *Observer {
	o := &Observer{
		source:   source,
		path:     path,
		interval: time.Second,
		attempts: 3,
		Log:      log.New(logrus.InfoLevel),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.persisted = source.SRAMSequence()
	o.hash = xxhash.Sum64(o.snapshot())
	return o
}

// Path returns the path of the save file.
func (o *Observer) Path() string {
	return o.path
}

// Flushes returns the number of times the save file has been written.
func (o *Observer) Flushes() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.flushes
}

func (o *Observer) snapshot() []byte {
	b := o.source.SRAM()
	if o.size > 0 && o.size < len(b) {
		b = b[:o.size]
	}
	return b
}

// Flush writes the external RAM to the save file if it has changed
// since the last flush.
func (o *Observer) Flush() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for attempt := 0; attempt < o.attempts; attempt++ {
		seq := o.source.SRAMSequence()
		if !o.source.SRAMDirty() && seq == o.persisted {
			return nil
		}

		b := o.snapshot()
		if h := xxhash.Sum64(b); h != o.hash {
			if err := o.write(b); err != nil {
				return err
			}
			o.hash = h
			o.flushes++
		}

		if o.source.SRAMSequence() != seq {
			o.Log.Debugf("persist: sram changed during flush of sequence %d, retrying", seq)
			continue
		}
		o.source.ClearSRAMDirty()
		o.persisted = seq
		return nil
	}

	return fmt.Errorf("%w after %d attempts", ErrStale, o.attempts)
}

// write replaces the save file with b, through a temporary file in
// the same directory so that a crash never leaves a torn save.
func (o *Observer) write(b []byte) error {
	dir := filepath.Dir(o.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("persist: creating save folder: %w", err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(o.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("persist: creating temporary save: %w", err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("persist: writing temporary save: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("persist: syncing temporary save: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("persist: closing temporary save: %w", err)
	}
	if err := os.Rename(f.Name(), o.path); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("persist: replacing save: %w", err)
	}
	return nil
}

// Run polls for changes every interval until ctx is cancelled, then
// performs a final flush and returns its error.
func (o *Observer) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return o.Flush()
		case <-ticker.C:
			if err := o.Flush(); err != nil {
				o.Log.Errorf("persist: %v", err)
			}
		}
	}
}

// Load reads a save file. A missing save file is not an error, and
// returns no data.
func Load(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: loading save: %w", err)
	}
	return b, nil
}
