// Package web provides a display driver that streams frames to
// browsers over a websocket, and accepts joypad input from them.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gbmem/pkg/display"
	"github.com/thelolagemann/gbmem/pkg/log"
)

// Plotter renders a chart as a PNG image.
type Plotter interface {
	Plot(w io.Writer) error
}

// Driver is the web display driver.
type Driver struct {
	addr        string
	compression bool
	quality     int
	cacheSize   int
	stats       Plotter

	Log log.Logger
}

// Opt configures a Driver.
type Opt func(d *Driver)

// WithAddress sets the address the driver listens on.
func WithAddress(addr string) Opt {
	return func(d *Driver) {
		d.addr = addr
	}
}

// WithCompression enables brotli compression of frames at the given
// quality (0-11).
func WithCompression(quality int) Opt {
	return func(d *Driver) {
		d.compression = true
		d.quality = quality
	}
}

// WithStats serves the chart rendered by p at /stats.png.
func WithStats(p Plotter) Opt {
	return func(d *Driver) {
		d.stats = p
	}
}

// WithLogger sets the logger used by the driver.
func WithLogger(l log.Logger) Opt {
	return func(d *Driver) {
		d.Log = l
	}
}

// New returns a new web driver.
func New(opts ...Opt) *Driver {
	d := &Driver{
		addr:      ":8090",
		quality:   7,
		cacheSize: 64,
		Log:       log.New(logrus.InfoLevel),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Start implements display.Driver.
func (d *Driver) Start(ctx context.Context, n *display.Notifier, in display.Input) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h := newHub(d.Log)
	go h.run(ctx)

	enc := newEncoder(d.compression, d.quality, d.cacheSize)
	srv := &http.Server{
		Addr:    d.addr,
		Handler: d.handler(h, enc, n, in),
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	d.Log.Infof("web: listening on %s", d.addr)

	frames := make(chan []byte)
	go func() {
		defer close(frames)
		for {
			f, err := n.Wait(ctx)
			if err != nil {
				return
			}
			select {
			case frames <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case err := <-errc:
			return fmt.Errorf("web: serving: %w", err)
		case f, ok := <-frames:
			if !ok {
				shutdown, done := context.WithTimeout(context.Background(), time.Second)
				defer done()
				if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("web: shutting down: %w", err)
				}
				return nil
			}
			msgs, err := enc.encode(f)
			if err != nil {
				d.Log.Errorf("%v", err)
				continue
			}
			for _, msg := range msgs {
				h.send(msg)
			}
		}
	}
}

// handler returns the HTTP handler serving websocket connections at
// / and the stats chart, if any, at /stats.png.
func (d *Driver) handler(h *hub, enc *encoder, n *display.Notifier, in display.Input) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.Log.Errorf("web: upgrading connection: %v", err)
			return
		}

		c := &Client{
			hub:        h,
			conn:       conn,
			Send:       make(chan []byte, 256),
			ID:         h.nextID(),
			RemoteAddr: r.RemoteAddr,
		}

		// queue the initial state before the client is visible to
		// broadcasts, so that it arrives first
		var flags uint8
		if d.compression {
			flags |= compressed
		}
		c.Send <- []byte{ClientInfo, c.ID, flags}
		c.Send <- enc.cache.sync()
		if f, err := enc.compress(n.Latest()); err == nil {
			c.Send <- append([]byte{FrameSync}, f...)
		}

		select {
		case h.register <- c:
		case <-h.done:
			conn.Close()
			return
		}

		go c.ReadPump(in)
		go c.WritePump()
	})

	if d.stats != nil {
		mux.HandleFunc("/stats.png", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			if err := d.stats.Plot(w); err != nil {
				d.Log.Errorf("web: plotting stats: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		})
	}

	return mux
}
