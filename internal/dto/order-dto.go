package dto

import (
	"os-manager/internal/entities"
	"os-manager/pkg/utils"
)

type CreateOrderDTO struct {
	OSNumber      string  `json:"os_number"      validate:"required,os_number"`
	Title         string  `json:"title"          validate:"required,max=200"`
	Description   string  `json:"description"    validate:"omitempty,max=5000"`
	ClientName    string  `json:"client_name"    validate:"required,max=200"`
	ClientContact string  `json:"client_contact" validate:"omitempty,max=200"`
	Status        string  `json:"status"         validate:"omitempty,os_status"`
	Priority      string  `json:"priority"       validate:"omitempty,os_priority"`
	ScheduledDate string  `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	ExecutedDate  *string `json:"executed_date"  validate:"omitempty,datetime=2006-01-02"`
	Category      string  `json:"category"       validate:"omitempty,max=100"`
	AssignedTo    string  `json:"assigned_to"    validate:"omitempty,max=200"`
	Notes         string  `json:"notes"          validate:"omitempty,max=5000"`
}

// ToEntity заполняет значения по умолчанию: статус agendado, приоритет media.
func (d CreateOrderDTO) ToEntity() entities.ServiceOrder {
	order := entities.ServiceOrder{
		OSNumber:      d.OSNumber,
		Title:         d.Title,
		Description:   d.Description,
		ClientName:    d.ClientName,
		ClientContact: d.ClientContact,
		Status:        entities.OrderStatus(d.Status),
		Priority:      entities.OrderPriority(d.Priority),
		ScheduledDate: d.ScheduledDate,
		ExecutedDate:  utils.NullStringFromPtr(d.ExecutedDate),
		Category:      d.Category,
		AssignedTo:    d.AssignedTo,
		Notes:         d.Notes,
	}
	if order.Status == "" {
		order.Status = entities.StatusAgendado
	}
	if order.Priority == "" {
		order.Priority = entities.PriorityMedia
	}
	return order
}

// UpdateOrderDTO - все поля необязательные, отсутствующие не меняются.
type UpdateOrderDTO struct {
	OSNumber      *string `json:"os_number"      validate:"omitempty,os_number"`
	Title         *string `json:"title"          validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description"    validate:"omitempty,max=5000"`
	ClientName    *string `json:"client_name"    validate:"omitempty,min=1,max=200"`
	ClientContact *string `json:"client_contact" validate:"omitempty,max=200"`
	Status        *string `json:"status"         validate:"omitempty,os_status"`
	Priority      *string `json:"priority"       validate:"omitempty,os_priority"`
	ScheduledDate *string `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	ExecutedDate  *string `json:"executed_date"  validate:"omitempty,datetime=2006-01-02"`
	Category      *string `json:"category"       validate:"omitempty,max=100"`
	AssignedTo    *string `json:"assigned_to"    validate:"omitempty,max=200"`
	Notes         *string `json:"notes"          validate:"omitempty,max=5000"`
}

func (d UpdateOrderDTO) ToPatch() entities.ServiceOrderPatch {
	patch := entities.ServiceOrderPatch{
		OSNumber:      d.OSNumber,
		Title:         d.Title,
		Description:   d.Description,
		ClientName:    d.ClientName,
		ClientContact: d.ClientContact,
		ScheduledDate: d.ScheduledDate,
		Category:      d.Category,
		AssignedTo:    d.AssignedTo,
		Notes:         d.Notes,
	}
	if d.Status != nil {
		s := entities.OrderStatus(*d.Status)
		patch.Status = &s
	}
	if d.Priority != nil {
		p := entities.OrderPriority(*d.Priority)
		patch.Priority = &p
	}
	if d.ExecutedDate != nil {
		// "" сбрасывает дату, и при переходе в executado она проставится заново.
		ed := utils.NullString(*d.ExecutedDate)
		patch.ExecutedDate = &ed
	}
	return patch
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status" validate:"required,os_status"`
}

// OrderFilterDTO - поиск по заголовку, клиенту и номеру; статус "all" или пустой - без фильтра.
// В режиме отслеживания (Track) номер O.S. в поиске не участвует.
type OrderFilterDTO struct {
	Search string `query:"search"`
	Status string `query:"status" validate:"omitempty,oneof=all agendado executado pendente atrasado"`
	Track  bool   `query:"track"`
	Limit  int    `query:"limit" validate:"omitempty,min=0,max=1000"`
}
