package web

import (
	"context"
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/thelolagemann/gbmem/pkg/log"
)

// hub tracks the connected clients and fans messages out to them.
// All of its state is owned by the run goroutine.
type hub struct {
	clients map[*Client]bool

	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{}

	currentID atomic.Uint32

	log log.Logger
}

func newHub(l log.Logger) *hub {
	return &hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        l,
	}
}

func (h *hub) run(ctx context.Context) {
	defer close(h.done)

	// periodic latency updates
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.log.Debugf("web: client %d connected from %s", c.ID, c.RemoteAddr)
		case c := <-h.unregister:
			if h.clients[c] {
				h.remove(c)
				h.log.Debugf("web: client %d disconnected", c.ID)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					// client can't keep up
					h.remove(c)
				}
			}
		case <-t.C:
			data := []byte{ServerInfo}
			for c := range h.clients {
				data = append(data, c.ID)
				data = binary.LittleEndian.AppendUint16(data, uint16(c.latency.Load()))
			}
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
				}
			}
		}
	}
}

func (h *hub) remove(c *Client) {
	delete(h.clients, c)
	close(c.Send)
}

// send queues msg for broadcast, dropping it if the hub has stopped.
func (h *hub) send(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// nextID returns the ID of the next client. IDs wrap after 255
// connections.
func (h *hub) nextID() uint8 {
	return uint8(h.currentID.Add(1))
}
