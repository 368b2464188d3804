package websocket

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"friend-service/internal/services"

	"github.com/redis/go-redis/v9"
)

var ErrClientDisconnected = errors.New("client disconnected")

const (
	subscribeBackoffMin = 100 * time.Millisecond
	subscribeBackoffMax = 5 * time.Second
)

// Hub fans notifications published on Redis out to every open connection of
// the addressed user. Any number of instances can share one Redis.
type Hub struct {
	// Connections by user ID
	userClients map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	redisService *services.RedisService
	pubsub       *redis.PubSub
	subscribed   atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc

	mu sync.RWMutex
}

func NewHub(redisService *services.RedisService) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		userClients:  make(map[uint]map[*Client]bool),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		redisService: redisService,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (h *Hub) Run() {
	if err := h.subscribeToRedis(); err != nil {
		slog.Error("Failed to subscribe to notifications, retrying", "error", err)
		go h.resubscribe()
	}

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-h.ctx.Done():
			slog.Info("WebSocket hub shutting down")
			h.closeAll()
			return
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.RLock()
	pubsub := h.pubsub
	h.mu.RUnlock()
	if pubsub != nil {
		pubsub.Close()
	}
}

// Subscribed reports whether the notification subscription is live.
func (h *Hub) Subscribed() bool {
	return h.subscribed.Load()
}

// ConnectionCount reports how many connections the user has open here.
func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients[userID])
}

// Deliver queues payload on every connection of the user.
func (h *Hub) Deliver(userID uint, payload []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.userClients[userID]))
	for client := range h.userClients[userID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.Send(payload); err != nil {
			slog.Debug("Dropped notification", "clientID", client.id, "userID", userID, "error", err)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.userClients[client.userID] == nil {
		h.userClients[client.userID] = make(map[*Client]bool)
	}
	h.userClients[client.userID][client] = true

	slog.Info("Client registered", "clientID", client.id, "userID", client.userID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.userClients[client.userID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.userClients, client.userID)
	}
	client.closeSendChannel()

	slog.Info("Client unregistered", "clientID", client.id, "userID", client.userID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, clients := range h.userClients {
		for client := range clients {
			client.closeSendChannel()
		}
		delete(h.userClients, userID)
	}
}

// subscribeToRedis waits for the subscription to be confirmed so no early
// publish is missed.
func (h *Hub) subscribeToRedis() error {
	pubsub := h.redisService.PSubscribe(h.ctx, services.NotificationPattern)
	if _, err := pubsub.Receive(h.ctx); err != nil {
		pubsub.Close()
		return err
	}

	h.mu.Lock()
	if err := h.ctx.Err(); err != nil {
		h.mu.Unlock()
		pubsub.Close()
		return err
	}
	h.pubsub = pubsub
	h.mu.Unlock()
	h.subscribed.Store(true)

	go h.handleRedisMessages(pubsub)
	return nil
}

func (h *Hub) resubscribe() {
	backoff := subscribeBackoffMin
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-time.After(backoff):
		}

		err := h.subscribeToRedis()
		if err == nil {
			slog.Info("Subscribed to notifications")
			return
		}
		if h.ctx.Err() != nil {
			return
		}
		slog.Warn("Notification subscription failed", "error", err, "retryIn", backoff)
		backoff = min(backoff*2, subscribeBackoffMax)
	}
}

func (h *Hub) handleRedisMessages(pubsub *redis.PubSub) {
	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			userID, ok := services.UserIDFromChannel(msg.Channel)
			if !ok {
				slog.Warn("Notification on unexpected channel", "channel", msg.Channel)
				continue
			}
			h.Deliver(userID, []byte(msg.Payload))

		case <-h.ctx.Done():
			return
		}
	}
}
