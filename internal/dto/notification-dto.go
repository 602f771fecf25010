package dto

import "os-manager/internal/entities"

type NotificationListDTO struct {
	Items       []entities.Notification `json:"items"`
	UnreadCount int                     `json:"unread_count"`
}
