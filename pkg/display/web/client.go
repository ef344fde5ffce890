package web

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gbmem/internal/joypad"
	"github.com/thelolagemann/gbmem/pkg/display"
)

const writeWait = 5 * time.Second

// Client is a websocket connection to a browser.
type Client struct {
	hub  *hub
	conn *websocket.Conn

	// Send is closed by the hub when the client is removed.
	Send chan []byte

	ID         uint8
	RemoteAddr string

	latency atomic.Uint32 // smoothed round trip time in ms
}

// ReadPump forwards joypad events from the client to in, until the
// connection is closed.
func (c *Client) ReadPump(in display.Input) {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}
		if message[0] == Closing {
			return
		}
		if len(message) < 2 || message[0] > joypad.ButtonDown {
			continue
		}

		if message[1] == 0 {
			in.Release(message[0])
		} else {
			in.Press(message[0])
		}
	}
}

// WritePump writes queued messages to the client, until the hub
// closes Send.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.Send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		if rtt, err := roundTrip(c.conn.UnderlyingConn()); err == nil {
			ms := uint32(rtt / time.Millisecond)
			c.latency.Store((c.latency.Load()*9 + ms) / 10)
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
