package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"os-manager/internal/authz"
	"os-manager/internal/dto"
	"os-manager/internal/entities"
	"os-manager/internal/repositories"
	"os-manager/pkg/utils"
)

const logListLimit = 500

type ActivityLogServiceInterface interface {
	Record(ctx context.Context, entry dto.LogEntryDTO)
	List(ctx context.Context, filter dto.LogFilterDTO) ([]entities.ActivityLog, error)
}

type ActivityLogService struct {
	repo       repositories.ActivityLogRepositoryInterface
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
	now        func() time.Time
}

func NewActivityLogService(repo repositories.ActivityLogRepositoryInterface, gatekeeper *authz.Gatekeeper, logger *zap.Logger) *ActivityLogService {
	return &ActivityLogService{repo: repo, gatekeeper: gatekeeper, logger: logger, now: time.Now}
}

// Record пишет запись журнала. Ошибка записи не прерывает основную операцию, она только логируется.
func (s *ActivityLogService) Record(ctx context.Context, entry dto.LogEntryDTO) {
	record := entities.ActivityLog{
		ActionType:   entry.ActionType,
		EntityType:   nullIfEmpty(entry.EntityType),
		EntityID:     nullIfEmpty(entry.EntityID),
		UserEmail:    entry.UserEmail,
		UserName:     entry.UserName,
		Description:  entry.Description,
		OldValue:     snapshot(entry.OldValue),
		NewValue:     snapshot(entry.NewValue),
		ErrorMessage: nullIfEmpty(entry.ErrorMessage),
		IPAddress:    nullIfEmpty(utils.GetRequestIPFromCtx(ctx)),
		Severity:     entry.Severity,
	}
	if record.Severity == "" {
		record.Severity = entities.SeverityInfo
	}
	if record.UserEmail == "" {
		if actor, ok := utils.GetActorFromCtx(ctx); ok {
			record.UserEmail = actor.Email
			record.UserName = null.StringFrom(actor.DisplayName())
		}
	}

	if _, err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("Не удалось записать событие в журнал",
			zap.String("action", string(entry.ActionType)),
			zap.String("description", entry.Description),
			zap.Error(err),
		)
	}
}

// List - только для manager. Новые сверху, не больше 500 записей.
func (s *ActivityLogService) List(ctx context.Context, filter dto.LogFilterDTO) ([]entities.ActivityLog, error) {
	actor, _ := utils.GetActorFromCtx(ctx)
	if err := s.gatekeeper.Require(actor, authz.LogsView); err != nil {
		return nil, err
	}

	logs, err := s.repo.List(ctx, repositories.ListParams{SortDesc: repositories.SortCreatedDate, Limit: logListLimit})
	if err != nil {
		return nil, err
	}

	since, bounded := periodStart(filter.Period, s.now())
	out := make([]entities.ActivityLog, 0, len(logs))
	for _, l := range logs {
		if !utils.MatchesAny(filter.Search, l.Description, l.UserName.String, l.UserEmail) {
			continue
		}
		if filter.Severity != "" && filter.Severity != "all" && string(l.Severity) != filter.Severity {
			continue
		}
		if bounded && l.CreatedDate.Before(since) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// periodStart - нижняя граница периода. today - с начала текущих суток.
func periodStart(period string, now time.Time) (time.Time, bool) {
	switch period {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case "7days":
		return now.AddDate(0, 0, -7), true
	case "30days":
		return now.AddDate(0, 0, -30), true
	}
	return time.Time{}, false
}

func nullIfEmpty(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// snapshot сериализует состояние сущности для old_value/new_value.
func snapshot(v interface{}) null.String {
	if v == nil {
		return null.String{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return null.String{}
	}
	return null.StringFrom(string(raw))
}
