package dto

import (
	"github.com/aarondl/null/v8"

	"os-manager/internal/entities"
)

// LogFilterDTO - фильтр журнала. Period: today | 7days | 30days, пустой - за всё время.
type LogFilterDTO struct {
	Search   string `query:"search"`
	Severity string `query:"severity" validate:"omitempty,oneof=all info warning error critical"`
	Period   string `query:"period"   validate:"omitempty,oneof=all today 7days 30days"`
}

// LogEntryDTO - запись, которую сервисы передают в журнал.
type LogEntryDTO struct {
	ActionType   entities.ActionType
	EntityType   string
	EntityID     string
	Description  string
	OldValue     interface{}
	NewValue     interface{}
	ErrorMessage string
	Severity     entities.Severity
	// Заполняются из актора, если не заданы явно.
	UserEmail string
	UserName  null.String
}
