package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cx-tal-miterani/lodging-booking/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeReservationBooked MessageType = "reservation_booked"
	MessageTypeBookingRejected   MessageType = "booking_rejected"
)

// Message represents a WebSocket message
type Message struct {
	Type             MessageType         `json:"type"`
	Reservation      *models.Reservation `json:"reservation,omitempty"`
	ArrivalDate      string              `json:"arrivalDate,omitempty"`
	DurationDays     int                 `json:"durationDays,omitempty"`
	ConflictingDates []string            `json:"conflictingDates,omitempty"`
	Message          string              `json:"message,omitempty"`
	Timestamp        int64               `json:"timestamp"`
}

// Client represents a WebSocket client connection
type Client struct {
	id   uuid.UUID
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans booking events out to every connected client
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
	done       chan struct{}
	closeOnce  sync.Once
	upgrader   websocket.Upgrader
	now        func() time.Time
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		now: time.Now,
	}
}

// Run starts the hub's main loop; it returns after Close
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			log.Printf("WebSocket: client %s registered (total: %d)", client.id, len(h.clients))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("WebSocket: client %s unregistered (remaining: %d)", client.id, len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("WebSocket: failed to marshal message: %v", err)
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// slow consumer
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Close stops Run and disconnects every client
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ReservationBooked broadcasts a committed reservation
func (h *Hub) ReservationBooked(r *models.Reservation) {
	h.publish(&Message{
		Type:        MessageTypeReservationBooked,
		Reservation: r,
		Message:     "Reservation booked",
		Timestamp:   h.now().UnixMilli(),
	})
}

// BookingRejected broadcasts a request that collided with existing stays
func (h *Hub) BookingRejected(arrivalDate string, durationDays int, conflictingDates []string) {
	h.publish(&Message{
		Type:             MessageTypeBookingRejected,
		ArrivalDate:      arrivalDate,
		DurationDays:     durationDays,
		ConflictingDates: conflictingDates,
		Message:          "Requested dates are no longer available",
		Timestamp:        h.now().UnixMilli(),
	})
}

// publish never blocks a booking on a full broadcast queue
func (h *Hub) publish(msg *Message) {
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("WebSocket: broadcast queue full, dropping %s", msg.Type)
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades the request and streams booking events to it
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket: upgrade failed: %v", err)
		return
	}

	client := &Client{
		id:   uuid.New(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only watches for close and pong frames; clients send nothing else
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket: client %s read error: %v", c.id, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
