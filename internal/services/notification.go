package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"os-manager/internal/authz"
	"os-manager/internal/dto"
	"os-manager/internal/entities"
	"os-manager/internal/events"
	"os-manager/internal/repositories"
	"os-manager/pkg/eventbus"
	"os-manager/pkg/utils"
)

type NotificationServiceInterface interface {
	Add(ctx context.Context, title, message string, notificationType entities.NotificationType) (*entities.Notification, error)
	List(ctx context.Context) (*dto.NotificationListDTO, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) (int, error)
	UnreadCount(ctx context.Context) (int, error)
}

type NotificationService struct {
	repo       repositories.NotificationRepositoryInterface
	gatekeeper *authz.Gatekeeper
	bus        *eventbus.Bus
	logger     *zap.Logger
}

func NewNotificationService(
	repo repositories.NotificationRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{repo: repo, gatekeeper: gatekeeper, bus: bus, logger: logger}
}

// Add - внутренний вызов (побочный эффект заявок), права не проверяются.
func (s *NotificationService) Add(ctx context.Context, title, message string, notificationType entities.NotificationType) (*entities.Notification, error) {
	n, err := s.repo.Create(ctx, entities.Notification{
		Title:   title,
		Message: message,
		Type:    notificationType,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать уведомление: %w", err)
	}
	s.logger.Debug("Уведомление создано", zap.String("id", n.ID), zap.String("type", string(n.Type)))
	if s.bus != nil {
		s.bus.Publish(ctx, events.NotificationCreatedEvent{Notification: *n})
	}
	return n, nil
}

func (s *NotificationService) authorize(ctx context.Context) error {
	actor, _ := utils.GetActorFromCtx(ctx)
	return s.gatekeeper.Require(actor, authz.NotificationsView)
}

// List - новые сверху.
func (s *NotificationService) List(ctx context.Context) (*dto.NotificationListDTO, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, repositories.ListParams{SortDesc: repositories.SortCreatedDate})
	if err != nil {
		return nil, err
	}
	return &dto.NotificationListDTO{Items: items, UnreadCount: countUnread(items)}, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id string) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context) (int, error) {
	if err := s.authorize(ctx); err != nil {
		return 0, err
	}
	return s.repo.MarkAllAsRead(ctx)
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	if err := s.authorize(ctx); err != nil {
		return 0, err
	}
	items, err := s.repo.List(ctx, repositories.ListParams{})
	if err != nil {
		return 0, err
	}
	return countUnread(items), nil
}

func countUnread(items []entities.Notification) int {
	unread := 0
	for _, n := range items {
		if !n.IsRead {
			unread++
		}
	}
	return unread
}
