// Package websocket pushes entity change events (quotation created, payment
// recorded, leave decided) to connected dashboard clients.
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checking is handled by the CORS layer in front
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is the JSON payload pushed to connected clients whenever an entity
// changes. Type is "<entity>.<verb>", e.g. "quotation.created".
type Event struct {
	Type     string    `json:"type"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// Client is one connected dashboard session.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans broadcast payloads out to every connected client. Services talk
// to it only through Publish.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Publish serializes an Event and queues it for broadcast. The send is
// non-blocking so callers never stall when the hub is saturated or idle.
func (h *Hub) Publish(eventType, entity, entityID, message string) {
	payload, err := json.Marshal(Event{
		Type:     eventType,
		Entity:   entity,
		EntityID: entityID,
		Message:  message,
		At:       time.Now(),
	})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		log.Println("websocket: broadcast queue full, dropping event", eventType)
	}
}

// Run is the dispatch loop. Started once from main as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Println("websocket: client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Println("websocket: client disconnected")
			}
			h.mu.Unlock()
		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow consumer, drop the connection
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for payload := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		_, _ = w.Write(payload)

		// Drain anything already queued into the same frame
		n := len(c.send)
		for i := 0; i < n; i++ {
			_, _ = w.Write([]byte{'\n'})
			_, _ = w.Write(<-c.send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames; the protocol is push-only. Reading is
// still required to process control frames and detect the close.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket: read error: %v", err)
			}
			return
		}
	}
}

// authorizeWs validates the JWT passed as the token query parameter.
// Browsers cannot set headers on the upgrade request, hence the query param.
func authorizeWs(c *gin.Context, secret []byte) bool {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return false
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		log.Println("websocket: rejected invalid token:", err)
		c.AbortWithStatus(http.StatusUnauthorized)
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return false
	}
	role, _ := claims["role"].(string)
	if role != "admin" && role != "manager" && role != "staff" {
		c.AbortWithStatus(http.StatusForbidden)
		return false
	}
	return true
}

// ServeWs authorizes the request, upgrades it and hands the connection to
// the hub.
func ServeWs(hub *Hub, c *gin.Context, secret []byte) {
	if !authorizeWs(c, secret) {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("websocket: upgrade failed:", err)
		return
	}

	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256)}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}
