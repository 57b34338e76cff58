package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: InterviewID -> List of Clients. Host and
	// candidate watch the same interview from separate connections.
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
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
			h.clients[client.InterviewID] = append(h.clients[client.InterviewID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"interview_id": client.InterviewID, "role": client.Role})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.InterviewID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.InterviewID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.InterviewID]) == 0 {
					delete(h.clients, client.InterviewID)
					h.logger.Info("Hub", "Interview room empty, removed", map[string]interface{}{"interview_id": client.InterviewID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes a status update to every client watching the interview, and
// publishes to Redis so other instances can deliver to their own clients.
func (h *Hub) Send(interviewID uuid.UUID, update dto.StatusUpdateMessage) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "status_update",
		"data": update,
	})

	h.mu.RLock()
	clients, localFound := h.clients[interviewID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"interview_id": interviewID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_interview_id": interviewID.String(),
			"message":             data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "interview_cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel and delivers only to
	// the interviews it has locally connected clients for.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "interview_cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetInterviewID string          `json:"target_interview_id"`
			Message           json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		iid, err := uuid.Parse(payload.TargetInterviewID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[iid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					close(client.Send)
					h.unregister <- client
				}
			}
		}
	}
}
