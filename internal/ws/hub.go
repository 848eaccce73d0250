package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub relays messages between the participants of an interview room. Rooms
// are keyed by application id and exist only while someone is connected.
type Hub struct {
	rooms      map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	relay      chan roomMessage
	mutex      sync.RWMutex
	logger     *log.Logger
}

type roomMessage struct {
	room    uuid.UUID
	sender  *Client
	payload []byte
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		relay:      make(chan roomMessage, 1024),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			clients := h.rooms[client.room]
			if clients == nil {
				clients = make(map[*Client]bool)
				h.rooms[client.room] = clients
			}
			clients[client] = true
			total := len(clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS joined | room=%s participants=%d", client.room, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
				}
				if len(clients) == 0 {
					delete(h.rooms, client.room)
				}
			}
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS left | room=%s", client.room)
			}

		case msg := <-h.relay:
			// Slow peers are dropped inline; queueing them on h.unregister
			// from this loop could block the loop against itself.
			h.mutex.Lock()
			clients := h.rooms[msg.room]
			for c := range clients {
				if c == msg.sender {
					continue
				}
				select {
				case c.send <- msg.payload:
				default:
					delete(clients, c)
					close(c.send)
				}
			}
			if len(clients) == 0 {
				delete(h.rooms, msg.room)
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Relay fans a participant's message out to everyone else in the room.
func (h *Hub) Relay(room uuid.UUID, sender *Client, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.relay <- roomMessage{room: room, sender: sender, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS relay dropped | room=%s", room)
		}
	}
}
