package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"zeorag-be/internal/dto"
	"zeorag-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const redisChannel = "zeorag_events"

// Hub fans ingestion progress out to every connected websocket client.
// There is no per-client addressing; every event goes to everyone.
type Hub struct {
	clients map[*Client]struct{}

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]struct{}),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", nil)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an ingestion event to all connected clients, on this
// instance directly and to other instances through redis.
func (h *Hub) Broadcast(event dto.IngestionEvent) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "ingestion",
		"data": event,
	})

	h.sendLocal(data)

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), redisChannel, data)
	}
}

func (h *Hub) sendLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer, drop the connection.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.sendLocal([]byte(msg.Payload))
	}
}
