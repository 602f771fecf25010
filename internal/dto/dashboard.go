package dto

import "os-manager/internal/entities"

// StatsDTO - производная статистика, пересчитывается при каждом чтении.
type StatsDTO struct {
	Total          int                          `json:"total"`
	ByStatus       map[entities.OrderStatus]int `json:"by_status"`
	Percentages    map[entities.OrderStatus]int `json:"percentages"`
	CompletionRate int                          `json:"completion_rate"`
}

type DashboardFilterDTO struct {
	From   string `query:"from"   validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to"     validate:"omitempty,datetime=2006-01-02"`
	Recent int    `query:"recent" validate:"omitempty,min=1,max=50"`
}

type DashboardDTO struct {
	Stats        StatsDTO                `json:"stats"`
	RecentOrders []entities.ServiceOrder `json:"recent_orders"`
}
