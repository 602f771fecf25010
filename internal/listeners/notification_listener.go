package listeners

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"os-manager/internal/events"
	"os-manager/pkg/eventbus"
	"os-manager/pkg/websocket"
)

// Broadcaster - рассылка сообщения всем подключённым клиентам.
type Broadcaster interface {
	Broadcast(messageType string, payload interface{}) (int, error)
}

// NotificationListener пересылает созданные уведомления в открытые websocket-соединения.
type NotificationListener struct {
	hub    Broadcaster
	logger *zap.Logger
}

func NewNotificationListener(hub Broadcaster, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{hub: hub, logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.NotificationCreated, l.handleNotificationCreated)
	l.logger.Info("NotificationListener подписан на событие", zap.String("event", events.NotificationCreated))
}

func (l *NotificationListener) handleNotificationCreated(_ context.Context, e eventbus.Event) error {
	event, ok := e.(events.NotificationCreatedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", e)
	}
	n := event.Notification

	delivered, err := l.hub.Broadcast(websocket.MessageNotification, websocket.NotificationPayload{
		EventID:   uuid.NewString(),
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedDate,
	})
	if err != nil {
		return err
	}
	l.logger.Debug("Уведомление разослано", zap.String("id", n.ID), zap.Int("clients", delivered))
	return nil
}
