package ws

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	Send       chan []byte
	UserID     uint64
	BusinessID uint64

	// rooms is owned by the hub and guarded by hub.mu.
	rooms     map[string]bool
	closeOnce sync.Once
}

// readPump consumes client events until the connection drops, then
// unregisters.
func (c *Client) readPump(dispatch func(*Client, Envelope)) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var envelope Envelope
		if err := c.conn.ReadJSON(&envelope); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: client %d read error: %v", c.UserID, err)
			}
			return
		}
		dispatch(c, envelope)
	}
}

// writePump drains Send and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendEvent delivers an event to this connection only.
func (c *Client) sendEvent(event string, data any) {
	payload, err := marshalEnvelope(event, data)
	if err != nil {
		log.Printf("ws: marshal %s failed: %v", event, err)
		return
	}
	select {
	case c.Send <- payload:
	default:
	}
}
