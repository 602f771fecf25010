package events

import (
	"os-manager/internal/entities"
)

const (
	OrderCreated        = "order.created"
	OrderStatusChanged  = "order.status.changed"
	NotificationCreated = "notification.created"
	LoginAttempted      = "auth.login.attempted"
)

// OrderCreatedEvent - заявка сохранена.
type OrderCreatedEvent struct {
	Order entities.ServiceOrder
	Actor string
}

func (e OrderCreatedEvent) Name() string { return OrderCreated }

// OrderStatusChangedEvent возникает только при реальной смене статуса.
type OrderStatusChangedEvent struct {
	Order entities.ServiceOrder
	From  entities.OrderStatus
	To    entities.OrderStatus
	Actor string
}

func (e OrderStatusChangedEvent) Name() string { return OrderStatusChanged }

type NotificationCreatedEvent struct {
	Notification entities.Notification
}

func (e NotificationCreatedEvent) Name() string { return NotificationCreated }

// Результаты попытки входа.
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginInactive           = "inactive"
	LoginLocked             = "locked"
)

type LoginAttemptedEvent struct {
	Email  string
	Result string
}

func (e LoginAttemptedEvent) Name() string { return LoginAttempted }
