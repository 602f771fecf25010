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
	"os-manager/pkg/constants"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/eventbus"
	"os-manager/pkg/sanitize"
	"os-manager/pkg/utils"
)

const orderListLimit = 1000

type OrderServiceInterface interface {
	List(ctx context.Context, filter dto.OrderFilterDTO) ([]entities.ServiceOrder, error)
	FindByID(ctx context.Context, id string) (*entities.ServiceOrder, error)
	Create(ctx context.Context, payload dto.CreateOrderDTO) (*entities.ServiceOrder, error)
	Update(ctx context.Context, id string, payload dto.UpdateOrderDTO) (*entities.ServiceOrder, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (*entities.ServiceOrder, error)
	Delete(ctx context.Context, id string) error
}

type OrderService struct {
	repo                repositories.OrderRepositoryInterface
	notificationService NotificationServiceInterface
	logService          ActivityLogServiceInterface
	gatekeeper          *authz.Gatekeeper
	sanitizer           *sanitize.TextSanitizer
	bus                 *eventbus.Bus
	logger              *zap.Logger
}

func NewOrderService(
	repo repositories.OrderRepositoryInterface,
	notificationService NotificationServiceInterface,
	logService ActivityLogServiceInterface,
	gatekeeper *authz.Gatekeeper,
	sanitizer *sanitize.TextSanitizer,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		repo:                repo,
		notificationService: notificationService,
		logService:          logService,
		gatekeeper:          gatekeeper,
		sanitizer:           sanitizer,
		bus:                 bus,
		logger:              logger,
	}
}

func (s *OrderService) require(ctx context.Context, permission string) (*entities.User, error) {
	actor, _ := utils.GetActorFromCtx(ctx)
	if err := s.gatekeeper.Require(actor, permission); err != nil {
		return nil, err
	}
	return actor, nil
}

// List - новые сверху. В режиме отслеживания поиск идёт только по заголовку и клиенту.
func (s *OrderService) List(ctx context.Context, filter dto.OrderFilterDTO) ([]entities.ServiceOrder, error) {
	permission := authz.OrdersView
	if filter.Track {
		permission = authz.TrackView
	}
	if _, err := s.require(ctx, permission); err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > orderListLimit {
		limit = orderListLimit
	}
	orders, err := s.repo.List(ctx, repositories.ListParams{SortDesc: repositories.SortCreatedDate, Limit: limit})
	if err != nil {
		return nil, err
	}

	out := make([]entities.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		if filter.Status != "" && filter.Status != "all" && string(o.Status) != filter.Status {
			continue
		}
		fields := []string{o.Title, o.ClientName}
		if !filter.Track {
			fields = append(fields, o.OSNumber)
		}
		if !utils.MatchesAny(filter.Search, fields...) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *OrderService) FindByID(ctx context.Context, id string) (*entities.ServiceOrder, error) {
	if _, err := s.require(ctx, authz.OrdersView); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) Create(ctx context.Context, payload dto.CreateOrderDTO) (*entities.ServiceOrder, error) {
	actor, err := s.require(ctx, authz.OrdersCreate)
	if err != nil {
		return nil, err
	}

	order := payload.ToEntity()
	if !order.Status.Valid() || !order.Priority.Valid() {
		return nil, apperrors.NewValidationError("status", "status ou prioridade inválidos")
	}
	s.sanitizeOrder(&order)
	order.CreatedBy = actor.Email

	created, err := s.repo.Create(ctx, order, s.notifyTransition)
	if err != nil {
		s.recordFailure(ctx, "create", order.OSNumber, err)
		return nil, err
	}

	s.logService.Record(ctx, dto.LogEntryDTO{
		ActionType:  entities.ActionCreate,
		EntityType:  constants.EntityServiceOrder,
		EntityID:    created.ID,
		Description: fmt.Sprintf("O.S. #%s criada: %s", created.OSNumber, created.Title),
		NewValue:    created,
		Severity:    entities.SeverityInfo,
	})
	s.publish(ctx, events.OrderCreatedEvent{Order: *created, Actor: actor.Email})
	s.logger.Info("Заявка создана", zap.String("id", created.ID), zap.String("os_number", created.OSNumber))
	return created, nil
}

// Update - редактирование. Изменение статуса через эту форму требует orders:update.
func (s *OrderService) Update(ctx context.Context, id string, payload dto.UpdateOrderDTO) (*entities.ServiceOrder, error) {
	if _, err := s.require(ctx, authz.OrdersUpdate); err != nil {
		return nil, err
	}

	patch := payload.ToPatch()
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.NewValidationError("status", "status inválido: %s", *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, apperrors.NewValidationError("priority", "prioridade inválida: %s", *patch.Priority)
	}
	s.sanitizePatch(&patch)
	return s.applyPatch(ctx, id, patch, entities.ActionUpdate)
}

// UpdateStatus - быстрая смена статуса из списка заявок.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (*entities.ServiceOrder, error) {
	if _, err := s.require(ctx, authz.OrdersStatus); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", "status inválido: %s", status)
	}
	return s.applyPatch(ctx, id, entities.ServiceOrderPatch{Status: &status}, entities.ActionStatusChange)
}

func (s *OrderService) applyPatch(ctx context.Context, id string, patch entities.ServiceOrderPatch, action entities.ActionType) (*entities.ServiceOrder, error) {
	var before entities.ServiceOrder
	capture := func(_ context.Context, prev *entities.ServiceOrder, _ entities.ServiceOrder) error {
		before = *prev
		return nil
	}

	updated, err := s.repo.Update(ctx, id, patch, capture, s.notifyTransition)
	if err != nil {
		s.recordFailure(ctx, string(action), id, err)
		return nil, err
	}

	statusChanged := before.Status != updated.Status
	if statusChanged {
		action = entities.ActionStatusChange
	} else if action == entities.ActionStatusChange {
		action = entities.ActionUpdate
	}
	description := fmt.Sprintf("O.S. #%s atualizada", updated.OSNumber)
	if statusChanged {
		description = fmt.Sprintf("O.S. #%s: status alterado de %s para %s", updated.OSNumber, before.Status, updated.Status)
	}
	s.logService.Record(ctx, dto.LogEntryDTO{
		ActionType:  action,
		EntityType:  constants.EntityServiceOrder,
		EntityID:    updated.ID,
		Description: description,
		OldValue:    before,
		NewValue:    updated,
		Severity:    entities.SeverityInfo,
	})
	if statusChanged {
		actor, _ := utils.GetActorFromCtx(ctx)
		email := ""
		if actor != nil {
			email = actor.Email
		}
		s.publish(ctx, events.OrderStatusChangedEvent{Order: *updated, From: before.Status, To: updated.Status, Actor: email})
	}
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if _, err := s.require(ctx, authz.OrdersDelete); err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil && !isNotFound(err) {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.recordFailure(ctx, "delete", id, err)
		return err
	}
	if existing == nil {
		return nil
	}

	s.logService.Record(ctx, dto.LogEntryDTO{
		ActionType:  entities.ActionDelete,
		EntityType:  constants.EntityServiceOrder,
		EntityID:    existing.ID,
		Description: fmt.Sprintf("O.S. #%s excluída", existing.OSNumber),
		OldValue:    existing,
		Severity:    entities.SeverityWarning,
	})
	s.logger.Info("Заявка удалена", zap.String("id", id))
	return nil
}

// notifyTransition выполняется под блокировкой коллекции заявок,
// поэтому одна реальная смена статуса даёт ровно одно уведомление.
func (s *OrderService) notifyTransition(ctx context.Context, before *entities.ServiceOrder, after entities.ServiceOrder) error {
	title, message, kind, ok := transitionNotification(before, after)
	if !ok {
		return nil
	}
	_, err := s.notificationService.Add(ctx, title, message, kind)
	return err
}

// transitionNotification - какое уведомление положено за переход. before == nil - создание.
func transitionNotification(before *entities.ServiceOrder, after entities.ServiceOrder) (string, string, entities.NotificationType, bool) {
	if before == nil {
		return "Nova Demanda",
			fmt.Sprintf("O.S. #%s foi criada com sucesso.", after.OSNumber),
			entities.NotificationInfo, true
	}
	if before.Status == after.Status {
		return "", "", "", false
	}
	switch after.Status {
	case entities.StatusExecutado:
		return "O.S. Executada",
			fmt.Sprintf("O.S. #%s foi concluída.", after.OSNumber),
			entities.NotificationSuccess, true
	case entities.StatusAtrasado:
		return "O.S. Atrasada",
			fmt.Sprintf("O.S. #%s ultrapassou o prazo.", after.OSNumber),
			entities.NotificationError, true
	}
	return "", "", "", false
}

func (s *OrderService) recordFailure(ctx context.Context, operation, ref string, err error) {
	if isNotFound(err) {
		return
	}
	s.logService.Record(ctx, dto.LogEntryDTO{
		ActionType:   entities.ActionError,
		EntityType:   constants.EntityServiceOrder,
		EntityID:     ref,
		Description:  fmt.Sprintf("Falha ao executar %s em O.S.", operation),
		ErrorMessage: err.Error(),
		Severity:     entities.SeverityError,
	})
}

func (s *OrderService) publish(ctx context.Context, event eventbus.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, event)
	}
}

func (s *OrderService) sanitizeOrder(o *entities.ServiceOrder) {
	if s.sanitizer == nil {
		return
	}
	o.Title = s.sanitizer.Text(o.Title)
	o.Description = s.sanitizer.Text(o.Description)
	o.ClientName = s.sanitizer.Text(o.ClientName)
	o.ClientContact = s.sanitizer.Text(o.ClientContact)
	o.Category = s.sanitizer.Text(o.Category)
	o.AssignedTo = s.sanitizer.Text(o.AssignedTo)
	o.Notes = s.sanitizer.Text(o.Notes)
}

func (s *OrderService) sanitizePatch(p *entities.ServiceOrderPatch) {
	if s.sanitizer == nil {
		return
	}
	p.Title = s.sanitizer.Ptr(p.Title)
	p.Description = s.sanitizer.Ptr(p.Description)
	p.ClientName = s.sanitizer.Ptr(p.ClientName)
	p.ClientContact = s.sanitizer.Ptr(p.ClientContact)
	p.Category = s.sanitizer.Ptr(p.Category)
	p.AssignedTo = s.sanitizer.Ptr(p.AssignedTo)
	p.Notes = s.sanitizer.Ptr(p.Notes)
}
