// websocket/feed.go
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
)

// Live feed of activity log entries. Slow clients are dropped rather than
// allowed to block the broadcast.

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type feedHub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	mutex      sync.Mutex
}

var hub = &feedHub{
	clients:    make(map[*client]bool),
	register:   make(chan *client),
	unregister: make(chan *client),
	broadcast:  make(chan []byte, 64),
}

// StartFeed launches the hub loop. Call once at startup.
func StartFeed() {
	go hub.run()
}

func (h *feedHub) run() {
	for {
		select {
		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			h.mutex.Unlock()
		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
		case data := <-h.broadcast:
			h.mutex.Lock()
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast sends a new activity entry to all connected clients.
func Broadcast(entry models.ActivityEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("Failed to marshal activity for WS: %v", err)
		return
	}
	select {
	case hub.broadcast <- data:
	default:
		log.Println("activity feed broadcast buffer full, entry dropped")
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeActivityFeed upgrades the request and attaches the client to the
// feed until it disconnects.
func ServeActivityFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}
	hub.register <- c

	go c.writePump()
	go c.readPump()
}

func (c *client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) readPump() {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
