package ws

import (
	"encoding/json"
	"log"

	"github.com/gofiber/websocket/v2"

	"syndiceasy/internal/core/event"
)

// Message is the wire envelope pushed to clients.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

type push struct {
	userID uint // 0 targets every connection
	data   []byte
}

// Hub tracks connected clients grouped by user id. A user may hold
// several connections (two browser tabs); every push goes to all of
// them. It also relays broadcast events from the bus.
type Hub struct {
	// Registered clients per user room.
	rooms map[uint]map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Outgoing pushes.
	pushes chan push

	// Event bus to listen for broadcast events
	bus event.Bus
}

// NewHub creates a new hub
func NewHub(bus event.Bus) *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		pushes:     make(chan push, 64),
		bus:        bus,
	}
}

// Run owns the room map. Call it once, in its own goroutine.
func (h *Hub) Run() {
	events, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()

	for {
		select {
		case client := <-h.register:
			room, ok := h.rooms[client.userID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.userID] = room
			}
			room[client] = true

		case client := <-h.unregister:
			if room, ok := h.rooms[client.userID]; ok {
				if _, registered := room[client]; registered {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.userID)
					}
				}
			}

		case p := <-h.pushes:
			if p.userID == 0 {
				for _, room := range h.rooms {
					h.deliver(room, p.data)
				}
			} else if room, ok := h.rooms[p.userID]; ok {
				h.deliver(room, p.data)
			}

		case e := <-events:
			// Only bus events addressed to everyone; targeted pushes
			// arrive through PushToUser.
			if e.UserID != 0 {
				continue
			}
			data, err := json.Marshal(Message{Event: string(e.Type), Payload: e.Payload})
			if err != nil {
				log.Printf("❌ Failed to marshal broadcast event: %v", err)
				continue
			}
			for _, room := range h.rooms {
				h.deliver(room, data)
			}
		}
	}
}

// PushToUser delivers a named event to every connection of a user.
// Implements the Broadcaster interface consumed by the services.
func (h *Hub) PushToUser(userID uint, eventName string, payload interface{}) {
	data, err := json.Marshal(Message{Event: eventName, Payload: payload})
	if err != nil {
		log.Printf("❌ Failed to marshal push for user %d: %v", userID, err)
		return
	}
	select {
	case h.pushes <- push{userID: userID, data: data}:
	default:
		log.Printf("⚠️ Push queue full, dropping %s for user %d", eventName, userID)
	}
}

func (h *Hub) deliver(room map[*Client]bool, data []byte) {
	for client := range room {
		select {
		case client.send <- data:
		default:
			// Slow consumer, drop the connection.
			delete(room, client)
			close(client.send)
		}
	}
}

// Handler returns the fiber handler driving a client connection. The
// auth middleware must have stored the user id in locals beforehand.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		userID, ok := conn.Locals("user_id").(uint)
		if !ok || userID == 0 {
			conn.Close()
			return
		}

		client := &Client{
			userID: userID,
			conn:   conn,
			send:   make(chan []byte, 32),
		}
		h.register <- client

		go client.writeLoop()
		client.readLoop(h)
	}
}
