package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"os-manager/internal/dto"
	"os-manager/internal/entities"
	"os-manager/internal/repositories"
	apperrors "os-manager/pkg/errors"
)

type OrderServiceTestSuite struct {
	suite.Suite
	env     *testEnv
	manager context.Context
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.manager = s.env.as(s.T(), entities.RoleManager)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) create(osNumber string) *entities.ServiceOrder {
	order, err := s.env.orderService.Create(s.manager, dto.CreateOrderDTO{
		OSNumber:   osNumber,
		Title:      "Troca de disjuntor",
		ClientName: "Padaria Central",
	})
	s.Require().NoError(err)
	return order
}

func (s *OrderServiceTestSuite) TestCreateAppliesDefaultsAndNotifies() {
	order := s.create("0000000001")

	s.NotEmpty(order.ID)
	s.Equal(entities.StatusAgendado, order.Status)
	s.Equal(entities.PriorityMedia, order.Priority)
	s.False(order.CreatedDate.IsZero())
	s.Contains(order.CreatedBy, "@ospro.com")

	info := s.env.notificationsOfType(s.T(), entities.NotificationInfo)
	s.Require().Len(info, 1)
	s.Equal("Nova Demanda", info[0].Title)
	s.Equal("O.S. #0000000001 foi criada com sucesso.", info[0].Message)
	s.False(info[0].IsRead)

	list, err := s.env.orderService.List(s.manager, dto.OrderFilterDTO{})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *OrderServiceTestSuite) TestStatusToAtrasadoNotifiesOnce() {
	order := s.create("0000000001")

	updated, err := s.env.orderService.Update(s.manager, order.ID, dto.UpdateOrderDTO{Status: strPtr("atrasado")})
	s.Require().NoError(err)
	s.Equal(entities.StatusAtrasado, updated.Status)

	// Повторная установка того же статуса - не переход.
	_, err = s.env.orderService.UpdateStatus(s.manager, order.ID, entities.StatusAtrasado)
	s.Require().NoError(err)

	errs := s.env.notificationsOfType(s.T(), entities.NotificationError)
	s.Require().Len(errs, 1)
	s.Equal("O.S. Atrasada", errs[0].Title)
	s.True(strings.Contains(errs[0].Message, "0000000001"))
}

func (s *OrderServiceTestSuite) TestExecutadoStampsDateAndNotifies() {
	order := s.create("1002")

	updated, err := s.env.orderService.UpdateStatus(s.manager, order.ID, entities.StatusExecutado)
	s.Require().NoError(err)
	s.True(updated.ExecutedDate.Valid)
	s.Len(updated.ExecutedDate.String, len(entities.DateLayout))

	success := s.env.notificationsOfType(s.T(), entities.NotificationSuccess)
	s.Require().Len(success, 1)
	s.Equal("O.S. #1002 foi concluída.", success[0].Message)

	// Переход в pendente уведомления не даёт.
	_, err = s.env.orderService.UpdateStatus(s.manager, order.ID, entities.StatusPendente)
	s.Require().NoError(err)
	all, err := s.env.notifications.List(context.Background(), repositories.ListParams{})
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *OrderServiceTestSuite) TestEmptyExecutedDateClearsAndRestamps() {
	order, err := s.env.orderService.Create(s.manager, dto.CreateOrderDTO{
		OSNumber:     "1010",
		Title:        "Revisão de gerador",
		ClientName:   "Hotel Sol",
		ExecutedDate: strPtr(""),
	})
	s.Require().NoError(err)
	s.False(order.ExecutedDate.Valid)

	done, err := s.env.orderService.UpdateStatus(s.manager, order.ID, entities.StatusExecutado)
	s.Require().NoError(err)
	s.True(done.ExecutedDate.Valid)

	reopened, err := s.env.orderService.Update(s.manager, order.ID, dto.UpdateOrderDTO{
		Status:       strPtr("pendente"),
		ExecutedDate: strPtr(""),
	})
	s.Require().NoError(err)
	s.False(reopened.ExecutedDate.Valid)

	again, err := s.env.orderService.UpdateStatus(s.manager, order.ID, entities.StatusExecutado)
	s.Require().NoError(err)
	s.True(again.ExecutedDate.Valid)
	s.NotEmpty(again.ExecutedDate.String)
}

func (s *OrderServiceTestSuite) TestConcurrentStatusUpdatesNotifyOnce() {
	order := s.create("1003")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.env.orderService.UpdateStatus(s.manager, order.ID, entities.StatusExecutado)
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.Len(s.env.notificationsOfType(s.T(), entities.NotificationSuccess), 1)

	logs, err := s.env.logs.List(context.Background(), repositories.ListParams{})
	s.Require().NoError(err)
	transitions := 0
	for _, l := range logs {
		if l.ActionType == entities.ActionStatusChange {
			transitions++
		}
	}
	s.Equal(1, transitions)
}

func (s *OrderServiceTestSuite) TestUpdateMissingOrder() {
	_, err := s.env.orderService.UpdateStatus(s.manager, "nope", entities.StatusExecutado)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.env.orderService.FindByID(s.manager, "nope")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *OrderServiceTestSuite) TestInvalidStatusRejected() {
	order := s.create("1004")

	_, err := s.env.orderService.UpdateStatus(s.manager, order.ID, entities.OrderStatus("cancelado"))
	s.True(apperrors.IsValidationError(err))

	_, err = s.env.orderService.Create(s.manager, dto.CreateOrderDTO{OSNumber: "1", Title: "t", ClientName: "c", Priority: "maxima"})
	s.True(apperrors.IsValidationError(err))
}

func (s *OrderServiceTestSuite) TestDeleteIsIdempotentAndLogged() {
	order := s.create("1005")

	s.Require().NoError(s.env.orderService.Delete(s.manager, order.ID))
	s.Require().NoError(s.env.orderService.Delete(s.manager, order.ID))

	list, err := s.env.orderService.List(s.manager, dto.OrderFilterDTO{})
	s.Require().NoError(err)
	s.Empty(list)

	logs, err := s.env.logs.List(context.Background(), repositories.ListParams{})
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal(entities.ActionDelete, logs[1].ActionType)
	s.Equal(entities.SeverityWarning, logs[1].Severity)
	s.True(logs[1].OldValue.Valid)
}

func (s *OrderServiceTestSuite) TestListFilters() {
	s.create("2001")
	_, err := s.env.orderService.Create(s.manager, dto.CreateOrderDTO{
		OSNumber:   "2002",
		Title:      "Manutenção de Servidor",
		ClientName: "Tech Solutions",
		Status:     "pendente",
	})
	s.Require().NoError(err)

	list, err := s.env.orderService.List(s.manager, dto.OrderFilterDTO{Search: "tech"})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("2002", list[0].OSNumber)

	list, err = s.env.orderService.List(s.manager, dto.OrderFilterDTO{Status: "pendente"})
	s.Require().NoError(err)
	s.Len(list, 1)

	list, err = s.env.orderService.List(s.manager, dto.OrderFilterDTO{Status: "all"})
	s.Require().NoError(err)
	s.Len(list, 2)
	s.Equal("2002", list[0].OSNumber, "новые сверху")

	list, err = s.env.orderService.List(s.manager, dto.OrderFilterDTO{Search: "2001"})
	s.Require().NoError(err)
	s.Len(list, 1)

	list, err = s.env.orderService.List(s.manager, dto.OrderFilterDTO{Search: "2001", Track: true})
	s.Require().NoError(err)
	s.Empty(list, "отслеживание не ищет по номеру")
}

func (s *OrderServiceTestSuite) TestSanitizesText() {
	order, err := s.env.orderService.Create(s.manager, dto.CreateOrderDTO{
		OSNumber:   "3001",
		Title:      "<script>alert(1)</script>Reparo",
		ClientName: "<b>Cliente</b>",
	})
	s.Require().NoError(err)
	s.Equal("Reparo", order.Title)
	s.Equal("Cliente", order.ClientName)
}

func (s *OrderServiceTestSuite) TestPermissionsByRole() {
	order := s.create("4001")
	analist := s.env.as(s.T(), entities.RoleAnalist)
	user := s.env.as(s.T(), entities.RoleUser)
	admin := s.env.as(s.T(), entities.RoleAdmin)

	_, err := s.env.orderService.Create(analist, dto.CreateOrderDTO{OSNumber: "1", Title: "t", ClientName: "c"})
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.env.orderService.UpdateStatus(analist, order.ID, entities.StatusPendente)
	s.NoError(err)

	_, err = s.env.orderService.List(user, dto.OrderFilterDTO{Track: true})
	s.NoError(err)
	s.ErrorIs(s.env.orderService.Delete(user, order.ID), apperrors.ErrForbidden)
	s.ErrorIs(s.env.orderService.Delete(analist, order.ID), apperrors.ErrForbidden)

	_, err = s.env.orderService.Update(admin, order.ID, dto.UpdateOrderDTO{Title: strPtr("Novo")})
	s.NoError(err)

	_, err = s.env.orderService.List(context.Background(), dto.OrderFilterDTO{})
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}
