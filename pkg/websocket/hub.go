package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub хранит подключённых клиентов и рассылает им сообщения.
// Уведомления в консоли общие, поэтому основная операция - Broadcast.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	// done закрывается, когда Run завершился.
	done   chan struct{}
	mu     sync.RWMutex
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run обрабатывает подключения до отмены контекста.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("Клиент зарегистрирован", zap.String("userID", client.UserID))
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
			h.logger.Debug("Клиент отсоединён", zap.String("userID", client.UserID))
		}
	}
}

// Register после остановки хаба сразу закрывает Send, чтобы WritePump завершился.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

// Unregister после остановки хаба ничего не делает: closeAll уже убрал всех клиентов.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// remove вызывается под h.mu.
func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		h.remove(client)
	}
}

func encode(messageType string, payload interface{}) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}

// Broadcast отправляет сообщение всем клиентам. Клиент с переполненным буфером пропускает сообщение.
func (h *Hub) Broadcast(messageType string, payload interface{}) (int, error) {
	message, err := encode(messageType, payload)
	if err != nil {
		h.logger.Error("Ошибка сериализации сообщения для WebSocket", zap.Error(err))
		return 0, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.clients {
		select {
		case client.Send <- message:
			delivered++
		default:
			h.logger.Warn("Буфер клиента переполнен, сообщение пропущено", zap.String("userID", client.UserID))
		}
	}
	return delivered, nil
}

// ClientCount - число активных соединений.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
