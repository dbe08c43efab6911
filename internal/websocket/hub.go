// Package websocket streams season-simulation progress to connected
// clients (grounded on the teacher's internal/websocket/hub.go).
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one open WebSocket connection, subscribed to progress
// updates for a single run (a season or a game batch).
type Client struct {
	RunID string
	Conn  *websocket.Conn
	Send  chan []byte
	Hub   *Hub
}

// Hub maintains active WebSocket connections and broadcasts season
// progress messages, keyed by the run they're watching.
type Hub struct {
	clients    map[*Client]bool
	runClients map[string][]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *logrus.Logger
	mutex      sync.RWMutex
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		runClients: make(map[string][]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run handles client registration, unregistration, and broadcast
// until the process exits; call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.runClients[client.RunID] = append(h.runClients[client.RunID], client)
			h.mutex.Unlock()

			h.logger.WithFields(logrus.Fields{
				"run_id":        client.RunID,
				"total_clients": len(h.clients),
			}).Info("season progress client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)

				siblings := h.runClients[client.RunID]
				for i, c := range siblings {
					if c == client {
						h.runClients[client.RunID] = append(siblings[:i], siblings[i+1:]...)
						break
					}
				}
				if len(h.runClients[client.RunID]) == 0 {
					delete(h.runClients, client.RunID)
				}
			}
			h.mutex.Unlock()

			h.logger.WithFields(logrus.Fields{
				"run_id":        client.RunID,
				"total_clients": len(h.clients),
			}).Info("season progress client disconnected")

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// HandleWebSocket upgrades an incoming request and registers it
// against the run_id path parameter.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	runID := c.Param("run_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("failed to upgrade websocket connection")
		return
	}

	client := &Client{RunID: runID, Conn: conn, Send: make(chan []byte, 256), Hub: h}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastToRun sends a message to every client watching runID.
func (h *Hub) BroadcastToRun(runID string, message interface{}) {
	h.mutex.RLock()
	clients := h.runClients[runID]
	h.mutex.RUnlock()

	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.WithError(err).Error("failed to marshal websocket message")
		return
	}

	h.mutex.RLock()
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
	h.mutex.RUnlock()
}

// GetConnectionCount returns the total number of active connections.
func (h *Hub) GetConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.WithError(err).Error("websocket read error")
			}
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.Hub.logger.WithError(err).Error("failed to write websocket message")
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
