package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// DateLayout - формат календарных дат (scheduled_date, executed_date).
const DateLayout = "2006-01-02"

// ServiceOrder - заявка (O.S.). AssignedTo - свободный текст, а не ссылка на User.
type ServiceOrder struct {
	ID            string        `json:"id"`
	OSNumber      string        `json:"os_number"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	ClientName    string        `json:"client_name"`
	ClientContact string        `json:"client_contact"`
	Status        OrderStatus   `json:"status"`
	Priority      OrderPriority `json:"priority"`
	ScheduledDate string        `json:"scheduled_date"`
	ExecutedDate  null.String   `json:"executed_date"`
	Category      string        `json:"category"`
	AssignedTo    string        `json:"assigned_to"`
	Notes         string        `json:"notes"`
	CreatedBy     string        `json:"created_by"`
	CreatedDate   time.Time     `json:"created_date"`
	UpdatedDate   time.Time     `json:"updated_date"`
}

// ServiceOrderPatch - частичное обновление: nil-поля сохраняют прежнее значение.
type ServiceOrderPatch struct {
	OSNumber      *string
	Title         *string
	Description   *string
	ClientName    *string
	ClientContact *string
	Status        *OrderStatus
	Priority      *OrderPriority
	ScheduledDate *string
	ExecutedDate  *null.String
	Category      *string
	AssignedTo    *string
	Notes         *string
}

// Apply выполняет поверхностное слияние и сообщает, изменилось ли что-нибудь.
func (p ServiceOrderPatch) Apply(o *ServiceOrder) bool {
	changed := false
	setString := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	setString(&o.OSNumber, p.OSNumber)
	setString(&o.Title, p.Title)
	setString(&o.Description, p.Description)
	setString(&o.ClientName, p.ClientName)
	setString(&o.ClientContact, p.ClientContact)
	setString(&o.ScheduledDate, p.ScheduledDate)
	setString(&o.Category, p.Category)
	setString(&o.AssignedTo, p.AssignedTo)
	setString(&o.Notes, p.Notes)

	if p.Status != nil && o.Status != *p.Status {
		o.Status = *p.Status
		changed = true
	}
	if p.Priority != nil && o.Priority != *p.Priority {
		o.Priority = *p.Priority
		changed = true
	}
	if p.ExecutedDate != nil && o.ExecutedDate != *p.ExecutedDate {
		o.ExecutedDate = *p.ExecutedDate
		changed = true
	}
	return changed
}
