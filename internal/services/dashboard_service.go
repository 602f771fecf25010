package services

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"os-manager/internal/authz"
	"os-manager/internal/dto"
	"os-manager/internal/entities"
	"os-manager/internal/repositories"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/utils"
)

const (
	statsSourceLimit   = 1000
	defaultRecentCount = 5
)

// DateRange - интервал по created_date, обе границы включительно.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains - заявки без даты создания попадают в любой интервал.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return true
	}
	return !t.Before(r.From) && !t.After(r.To)
}

// CurrentMonth - интервал по умолчанию для дашборда и отчётов.
func CurrentMonth(now time.Time) DateRange {
	y, m, _ := now.Date()
	from := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	return DateRange{From: from, To: from.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// ParseDateRange разбирает даты YYYY-MM-DD. Недостающая граница берётся из текущего месяца.
// to включает весь день.
func ParseDateRange(from, to string, now time.Time) (DateRange, error) {
	r := CurrentMonth(now)
	if from != "" {
		t, err := time.ParseInLocation(entities.DateLayout, from, now.Location())
		if err != nil {
			return r, apperrors.NewValidationError("from", "data inválida: %s", from)
		}
		r.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation(entities.DateLayout, to, now.Location())
		if err != nil {
			return r, apperrors.NewValidationError("to", "data inválida: %s", to)
		}
		r.To = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if r.To.Before(r.From) {
		return r, apperrors.NewValidationError("to", "a data final é anterior à inicial")
	}
	return r, nil
}

// ComputeStats считает заявки интервала по статусам. Процент выполнения
// round(executado / total * 100), 0 при пустой выборке.
func ComputeStats(orders []entities.ServiceOrder, r DateRange) dto.StatsDTO {
	stats := dto.StatsDTO{
		ByStatus:    make(map[entities.OrderStatus]int, len(entities.OrderStatuses)),
		Percentages: make(map[entities.OrderStatus]int, len(entities.OrderStatuses)),
	}
	for _, s := range entities.OrderStatuses {
		stats.ByStatus[s] = 0
	}
	for _, o := range orders {
		if !r.Contains(o.CreatedDate) {
			continue
		}
		stats.Total++
		stats.ByStatus[o.Status]++
	}
	for status, count := range stats.ByStatus {
		stats.Percentages[status] = percent(count, stats.Total)
	}
	stats.CompletionRate = stats.Percentages[entities.StatusExecutado]
	return stats
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

type DashboardServiceInterface interface {
	Get(ctx context.Context, filter dto.DashboardFilterDTO) (*dto.DashboardDTO, error)
}

type DashboardService struct {
	orderRepo  repositories.OrderRepositoryInterface
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
	now        func() time.Time
}

func NewDashboardService(orderRepo repositories.OrderRepositoryInterface, gatekeeper *authz.Gatekeeper, logger *zap.Logger) *DashboardService {
	return &DashboardService{orderRepo: orderRepo, gatekeeper: gatekeeper, logger: logger, now: time.Now}
}

func (s *DashboardService) Get(ctx context.Context, filter dto.DashboardFilterDTO) (*dto.DashboardDTO, error) {
	actor, _ := utils.GetActorFromCtx(ctx)
	if err := s.gatekeeper.Require(actor, authz.DashboardView); err != nil {
		return nil, err
	}
	r, err := ParseDateRange(filter.From, filter.To, s.now())
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.List(ctx, repositories.ListParams{SortDesc: repositories.SortCreatedDate, Limit: statsSourceLimit})
	if err != nil {
		return nil, err
	}

	recentCount := filter.Recent
	if recentCount <= 0 {
		recentCount = defaultRecentCount
	}
	recent := make([]entities.ServiceOrder, 0, recentCount)
	for _, o := range orders {
		if r.Contains(o.CreatedDate) {
			recent = append(recent, o)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedDate.After(recent[j].CreatedDate) })
	if len(recent) > recentCount {
		recent = recent[:recentCount]
	}

	return &dto.DashboardDTO{
		Stats:        ComputeStats(orders, r),
		RecentOrders: recent,
	}, nil
}
