package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	sendBufferSize = 64
)

// Client is one notification connection. The stream is server to client
// only; anything the peer sends is read and discarded.
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint

	ctx    context.Context
	cancel context.CancelFunc

	// guards send against concurrent close
	sendMu     sync.RWMutex
	sendClosed int32
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		id:     uuid.New().String(),
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		userID: userID,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Send queues a message without blocking. A full buffer drops the message.
func (c *Client) Send(message []byte) error {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()

	if atomic.LoadInt32(&c.sendClosed) == 1 {
		return ErrClientDisconnected
	}

	select {
	case c.send <- message:
		return nil
	default:
		slog.Warn("Send buffer full, dropping notification", "clientID", c.id, "userID", c.userID)
		return ErrClientDisconnected
	}
}

func (c *Client) closeSendChannel() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if atomic.CompareAndSwapInt32(&c.sendClosed, 0, 1) {
		close(c.send)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.cancel()

		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		case <-time.After(5 * time.Second):
			slog.Warn("Timeout sending unregister request", "clientID", c.id, "userID", c.userID)
		}

		if err := c.conn.Close(); err != nil {
			slog.Debug("Error closing connection", "clientID", c.id, "userID", c.userID, "error", err)
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "clientID", c.id, "userID", c.userID, "error", err)
			} else {
				slog.Debug("WebSocket connection closed", "clientID", c.id, "userID", c.userID, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				c.conn.Close()
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				slog.Debug("Error writing message", "clientID", c.id, "userID", c.userID, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Debug("Error sending ping", "clientID", c.id, "userID", c.userID, "error", err)
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// ServeWS upgrades the request and attaches the connection to the hub.
func ServeWS(hub *Hub, upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "userID", userID, "error", err)
		return
	}

	client := NewClient(hub, conn, userID)
	slog.Info("New WebSocket connection established", "clientID", client.id, "userID", userID)

	select {
	case hub.register <- client:
	case <-hub.ctx.Done():
		conn.Close()
		return
	case <-time.After(5 * time.Second):
		slog.Error("Timeout sending registration request", "clientID", client.id, "userID", userID)
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
