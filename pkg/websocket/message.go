package websocket

import "time"

// Envelope - конверт сообщения. Type подсказывает фронтенду, что делать с Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Типы сообщений.
const (
	MessageNotification = "notification"
)

// NotificationPayload - содержимое "колокольчика".
type NotificationPayload struct {
	EventID   string    `json:"eventId"`
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"created_at"`
}
