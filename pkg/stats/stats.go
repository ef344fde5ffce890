// Package stats records per frame counters of the memory subsystem,
// and plots them.
package stats

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Source is sampled once per frame.
type Source interface {
	BankSwitches() uint64
	SRAMSequence() uint64
}

// Sample holds the counters observed during a single frame.
type Sample struct {
	Frame        uint64
	BankSwitches uint64 // bank switches during the frame
	SRAMWrites   uint64 // SRAM mutations during the frame
}

// Recorder keeps the samples of the most recent frames.
type Recorder struct {
	source Source

	mu      sync.Mutex
	samples []Sample
	next    int
	full    bool
	frame   uint64

	lastSwitches, lastSequence uint64
}

// NewRecorder returns a Recorder keeping the last size frames.
func NewRecorder(source Source, size int) *Recorder {
	return &Recorder{
		source:       source,
		samples:      make([]Sample, size),
		lastSwitches: source.BankSwitches(),
		lastSequence: source.SRAMSequence(),
	}
}

// Sample records the counters for the frame that just completed.
func (r *Recorder) Sample() {
	switches, sequence := r.source.BankSwitches(), r.source.SRAMSequence()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.frame++
	r.samples[r.next] = Sample{
		Frame:        r.frame,
		BankSwitches: switches - r.lastSwitches,
		SRAMWrites:   sequence - r.lastSequence,
	}
	r.lastSwitches, r.lastSequence = switches, sequence

	r.next = (r.next + 1) % len(r.samples)
	if r.next == 0 {
		r.full = true
	}
}

// Samples returns the recorded samples, oldest first.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		return append([]Sample(nil), r.samples[:r.next]...)
	}
	return append(append([]Sample(nil), r.samples[r.next:]...), r.samples[:r.next]...)
}

// Plot writes a PNG chart of the recorded samples to w.
func (r *Recorder) Plot(w io.Writer) error {
	samples := r.Samples()

	p := plot.New()
	p.Title.Text = "Memory activity"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Per frame"

	switches := make(plotter.XYs, len(samples))
	writes := make(plotter.XYs, len(samples))
	for i, s := range samples {
		switches[i].X, switches[i].Y = float64(s.Frame), float64(s.BankSwitches)
		writes[i].X, writes[i].Y = float64(s.Frame), float64(s.SRAMWrites)
	}

	if len(samples) == 0 {
		return r.encode(w, p)
	}
	for i, series := range []struct {
		name string
		xys  plotter.XYs
	}{
		{"Bank switches", switches},
		{"SRAM writes", writes},
	} {
		line, err := plotter.NewLine(series.xys)
		if err != nil {
			return fmt.Errorf("stats: plotting %s: %w", series.name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(series.name, line)
	}

	return r.encode(w, p)
}

func (r *Recorder) encode(w io.Writer, p *plot.Plot) error {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(c))

	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("stats: encoding plot: %w", err)
	}
	return nil
}
