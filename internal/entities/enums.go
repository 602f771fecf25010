package entities

type OrderStatus string

const (
	StatusAgendado  OrderStatus = "agendado"
	StatusExecutado OrderStatus = "executado"
	StatusPendente  OrderStatus = "pendente"
	StatusAtrasado  OrderStatus = "atrasado"
)

// OrderStatuses - все статусы в порядке отображения на дашборде.
var OrderStatuses = []OrderStatus{StatusAgendado, StatusExecutado, StatusPendente, StatusAtrasado}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type OrderPriority string

const (
	PriorityBaixa   OrderPriority = "baixa"
	PriorityMedia   OrderPriority = "media"
	PriorityAlta    OrderPriority = "alta"
	PriorityUrgente OrderPriority = "urgente"
)

var OrderPriorities = []OrderPriority{PriorityBaixa, PriorityMedia, PriorityAlta, PriorityUrgente}

func (p OrderPriority) Valid() bool {
	for _, v := range OrderPriorities {
		if v == p {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleAnalist Role = "analist"
)

var Roles = []Role{RoleManager, RoleAdmin, RoleUser, RoleAnalist}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

type ActionType string

const (
	ActionCreate       ActionType = "create"
	ActionUpdate       ActionType = "update"
	ActionDelete       ActionType = "delete"
	ActionStatusChange ActionType = "status_change"
	ActionLogin        ActionType = "login"
	ActionLogout       ActionType = "logout"
	ActionError        ActionType = "error"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	}
	return false
}

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
)

var statusLabels = map[OrderStatus]string{
	StatusAgendado:  "Agendado",
	StatusExecutado: "Executado",
	StatusPendente:  "Pendente",
	StatusAtrasado:  "Atrasado",
}

// Label - подпись для отчётов. Неизвестное значение возвращается как есть.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

var priorityLabels = map[OrderPriority]string{
	PriorityBaixa:   "Baixa",
	PriorityMedia:   "Média",
	PriorityAlta:    "Alta",
	PriorityUrgente: "Urgente",
}

func (p OrderPriority) Label() string {
	if l, ok := priorityLabels[p]; ok {
		return l
	}
	return string(p)
}
