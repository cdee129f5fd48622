package models

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Hub maintains the set of live-feed subscribers and broadcasts committed
// settlement events to them. Every subscriber sees every event; there is no
// per-team routing on the feed.
type Hub struct {
	// Registered clients.
	Clients map[*Client]bool

	// Outbound events to fan out to all clients.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client
}

// Client represents one WebSocket subscriber to the feed.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte
}

// NewHub creates a new Hub instance. The caller starts it with go hub.Run().
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[*Client]bool),
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}

		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer, drop it rather than block the feed.
					delete(h.Clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Publish marshals a feed event and broadcasts it. A full broadcast queue
// drops the event; the feed is advisory, the ledger is the source of truth.
func (h *Hub) Publish(event FeedEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling feed event: %v", err)
		return
	}
	select {
	case h.Broadcast <- data:
	default:
	}
}

// ReadPump drains the connection so control frames are processed and
// unregisters the client when the peer goes away. Feed clients are not
// expected to send application messages.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// WritePump pushes queued events to the connection and keeps it alive with
// pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
