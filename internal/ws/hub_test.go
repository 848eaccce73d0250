package ws

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func (h *Hub) roomSize(room uuid.UUID) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[room])
}

func TestHub_RelayReachesPeersNotSender(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	room := uuid.New()
	sender := NewClient(hub, nil, room)
	peer := NewClient(hub, nil, room)
	hub.Register(sender)
	hub.Register(peer)
	waitFor(t, "both clients joined", func() bool { return hub.roomSize(room) == 2 })

	hub.Relay(room, sender, []byte("offer"))

	select {
	case got := <-peer.send:
		if string(got) != "offer" {
			t.Fatalf("unexpected payload %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("peer never received the relayed message")
	}

	select {
	case got := <-sender.send:
		t.Fatalf("sender received its own message %q", got)
	default:
	}
}

func TestHub_RelayStaysInsideRoom(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	roomA := uuid.New()
	roomB := uuid.New()
	sender := NewClient(hub, nil, roomA)
	outsider := NewClient(hub, nil, roomB)
	hub.Register(sender)
	hub.Register(outsider)
	waitFor(t, "both clients joined", func() bool {
		return hub.roomSize(roomA) == 1 && hub.roomSize(roomB) == 1
	})

	hub.Relay(roomA, sender, []byte("hello"))

	select {
	case got := <-outsider.send:
		t.Fatalf("message leaked across rooms: %q", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SlowPeerIsDroppedWithoutStallingTheHub(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	room := uuid.New()
	sender := NewClient(hub, nil, room)
	peer := NewClient(hub, nil, room)
	// Unbuffered send channel with no reader: every relay overflows it.
	slow := &Client{hub: hub, room: room, send: make(chan []byte)}
	hub.Register(sender)
	hub.Register(peer)
	hub.Register(slow)
	waitFor(t, "all clients joined", func() bool { return hub.roomSize(room) == 3 })

	hub.Relay(room, sender, []byte("first"))
	waitFor(t, "slow peer evicted", func() bool { return hub.roomSize(room) == 2 })

	select {
	case _, open := <-slow.send:
		if open {
			t.Fatalf("expected slow peer's channel closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("slow peer's channel never closed")
	}

	// The hub must keep relaying after the eviction.
	<-peer.send
	hub.Relay(room, sender, []byte("second"))
	select {
	case got := <-peer.send:
		if string(got) != "second" {
			t.Fatalf("unexpected payload %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("hub stopped relaying after dropping a slow peer")
	}
}
