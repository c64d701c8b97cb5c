package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestClient() *Client {
	return &Client{
		Send:  make(chan []byte, 8),
		rooms: make(map[string]bool),
	}
}

func recvEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case raw, ok := <-c.Send:
		if !ok {
			t.Fatalf("send channel closed unexpectedly")
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("unmarshal envelope: %v", err)
		}
		return env
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return Envelope{}
}

func expectNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.Send:
		t.Fatalf("unexpected delivery: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubEmitReachesRoomMembers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	member := newTestClient()
	member.rooms["conversation:1"] = true
	outsider := newTestClient()
	outsider.rooms["conversation:2"] = true

	hub.register <- member
	hub.register <- outsider

	hub.Emit("conversation:1", "new_message", map[string]string{"content": "hello"})

	env := recvEnvelope(t, member)
	if env.Event != "new_message" {
		t.Fatalf("event = %q, want new_message", env.Event)
	}
	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data["content"] != "hello" {
		t.Fatalf("content = %q, want hello", data["content"])
	}

	expectNothing(t, outsider)
}

func TestHubEmitExceptSkipsSender(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	sender := newTestClient()
	sender.rooms["conversation:7"] = true
	peer := newTestClient()
	peer.rooms["conversation:7"] = true

	hub.register <- sender
	hub.register <- peer

	hub.EmitExcept("conversation:7", "typing_start", map[string]string{"business_id": "3"}, sender)

	if env := recvEnvelope(t, peer); env.Event != "typing_start" {
		t.Fatalf("event = %q, want typing_start", env.Event)
	}
	expectNothing(t, sender)
}

func TestHubJoinAndLeave(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	c := newTestClient()
	hub.register <- c

	hub.Join(c, "conversation:9")
	hub.Emit("conversation:9", "ping", nil)
	if env := recvEnvelope(t, c); env.Event != "ping" {
		t.Fatalf("event = %q, want ping", env.Event)
	}

	hub.Leave(c, "conversation:9")
	hub.Emit("conversation:9", "ping", nil)
	expectNothing(t, c)
}

func TestHubUnregisterClosesSendAndLeavesRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	c := newTestClient()
	c.rooms["business:5"] = true
	hub.register <- c
	hub.unregister <- c

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatalf("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("send channel not closed after unregister")
	}

	// Broadcasting to the emptied room must not panic or deliver.
	hub.Emit("business:5", "new_order", nil)
}
