// Package ws is the push channel: one authenticated websocket per client,
// enrolled into rooms keyed by business, user, and conversation id. Room
// membership lives in this process only; a multi-process deployment needs an
// external fan-out layer in front of it.
package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Envelope is the wire format in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type broadcastMsg struct {
	room   string
	data   []byte
	except *Client
}

type Hub struct {
	mu         sync.Mutex
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 64),
		done:       make(chan struct{}),
	}
}

// Run owns the room table. Join/Leave mutate it directly under the mutex;
// register/unregister/broadcast flow through channels.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			for room := range c.rooms {
				h.addToRoom(c, room)
			}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			for room := range c.rooms {
				if conns := h.rooms[room]; conns != nil {
					delete(conns, c)
					if len(conns) == 0 {
						delete(h.rooms, room)
					}
				}
			}
			c.closeOnce.Do(func() { close(c.Send) })
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.room] {
				if c == m.except {
					continue
				}
				select {
				case c.Send <- m.data:
				default:
					// Slow consumer; drop the connection rather than block
					// the hub.
					delete(h.rooms[m.room], c)
					c.closeOnce.Do(func() { close(c.Send) })
				}
			}
			h.mu.Unlock()

		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Join enrolls the client into a room.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addToRoom(c, room)
}

// Leave drops the client from a room.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(c.rooms, room)
	if conns := h.rooms[room]; conns != nil {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) addToRoom(c *Client, room string) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	c.rooms[room] = true
}

// Emit broadcasts a named event to every connection in the room. Satisfies
// chatcore.EventSink.
func (h *Hub) Emit(room, event string, data any) {
	h.emit(room, event, data, nil)
}

// EmitExcept is Emit minus one connection; used for typing indicators so the
// typist does not echo back to itself.
func (h *Hub) EmitExcept(room, event string, data any, except *Client) {
	h.emit(room, event, data, except)
}

func (h *Hub) emit(room, event string, data any, except *Client) {
	out, err := marshalEnvelope(event, data)
	if err != nil {
		log.Printf("ws: marshal %s event failed: %v", event, err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{room: room, data: out, except: except}:
	case <-h.done:
	}
}

func marshalEnvelope(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: payload})
}
