package entities

import "time"

type Notification struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	IsRead      bool             `json:"is_read"`
	CreatedDate time.Time        `json:"created_date"`
}
