package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// ActivityLog - запись журнала действий. Только добавление, без изменений и удаления.
type ActivityLog struct {
	ID           string      `json:"id"`
	ActionType   ActionType  `json:"action_type"`
	EntityType   null.String `json:"entity_type"`
	EntityID     null.String `json:"entity_id"`
	UserEmail    string      `json:"user_email"`
	UserName     null.String `json:"user_name"`
	Description  string      `json:"description"`
	OldValue     null.String `json:"old_value"`
	NewValue     null.String `json:"new_value"`
	ErrorMessage null.String `json:"error_message"`
	IPAddress    null.String `json:"ip_address"`
	Severity     Severity    `json:"severity"`
	CreatedDate  time.Time   `json:"created_date"`
}
