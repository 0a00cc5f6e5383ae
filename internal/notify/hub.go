package notify

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"serenityspa/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS middleware in front of the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client pairs a connection with its write lock. gorilla/websocket
// supports at most one concurrent writer per connection, so all
// writes go through the mutex.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub delivers toasts over one websocket per user. It satisfies
// Notifier; pushing to an offline user is silently dropped.
type Hub struct {
	clients map[int64]*client
	mu      sync.RWMutex
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[int64]*client),
		log:     log,
	}
}

func (h *Hub) register(userID int64, conn *websocket.Conn) *client {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.clients[userID]; ok {
		_ = old.conn.Close()
	}
	cl := &client{conn: conn}
	h.clients[userID] = cl
	return cl
}

// unregister drops the client only while it is still the user's
// current one; a reconnect that already replaced it is left alone.
func (h *Hub) unregister(userID int64, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.clients[userID]; ok && cur == cl {
		_ = cl.conn.Close()
		delete(h.clients, userID)
	}
}

// Push implements Notifier.
func (h *Hub) Push(userID int64, t Toast) {
	if t.Variant == "" {
		t.Variant = VariantDefault
	}

	h.mu.RLock()
	cl, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return
	}
	if err := cl.writeJSON(t); err != nil {
		h.log.Debug().Int64("user_id", userID).Err(err).Msg("dropping dead notification socket")
		h.unregister(userID, cl)
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, cl := range h.clients {
		_ = cl.conn.Close()
		delete(h.clients, userID)
	}
}

// WSHandler upgrades GET /ws/notifications?token=JWT connections.
// Authentication rides the query string because websocket clients
// cannot set headers.
type WSHandler struct {
	hub *Hub
	jwt *jwt.Service
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwtService}
}

func (h *WSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/notifications", h.Serve)
}

func (h *WSHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	cl := h.hub.register(claims.UserID, conn)

	// The channel is one-way; the read loop only notices disconnects.
	go func() {
		defer h.hub.unregister(claims.UserID, cl)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
