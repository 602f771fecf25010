package dto

import (
	"os-manager/internal/entities"
)

// ReportFilterDTO - даты в формате YYYY-MM-DD, обе границы включительно.
type ReportFilterDTO struct {
	From   string `query:"from"   validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to"     validate:"omitempty,datetime=2006-01-02"`
	Status string `query:"status" validate:"omitempty,oneof=all agendado executado pendente atrasado"`
	Format string `query:"format" validate:"omitempty,oneof=xlsx csv"`
}

type ReportDTO struct {
	Orders []entities.ServiceOrder `json:"orders"`
	Stats  StatsDTO                `json:"stats"`
}
