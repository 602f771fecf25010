package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"os-manager/internal/dto"
	"os-manager/internal/entities"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	env     *testEnv
	manager context.Context
	admin   context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.manager = s.env.as(s.T(), entities.RoleManager)
	s.admin = s.env.as(s.T(), entities.RoleAdmin)
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) invite(ctx context.Context, email string, role entities.Role) (*entities.User, error) {
	return s.env.userService.Create(ctx, dto.CreateUserDTO{
		FullName: "Maria Souza",
		Email:    email,
		Role:     string(role),
		Password: "segredo1",
	})
}

func (s *UserServiceTestSuite) TestCreateHashesPasswordAndDefaultsActive() {
	u, err := s.invite(s.admin, "maria@ospro.com", entities.RoleUser)
	s.Require().NoError(err)

	s.True(u.IsActive)
	s.NotEqual("segredo1", u.PasswordHash)
	s.True(s.env.hasher.Verify(u.PasswordHash, "segredo1"))

	_, err = s.env.auth.Login(context.Background(), dto.LoginDTO{Email: "maria@ospro.com", Password: "segredo1"})
	s.NoError(err)
}

func (s *UserServiceTestSuite) TestDuplicateEmailConflicts() {
	_, err := s.invite(s.admin, "dup@ospro.com", entities.RoleUser)
	s.Require().NoError(err)

	_, err = s.invite(s.admin, "dup@ospro.com", entities.RoleAnalist)
	s.ErrorIs(err, ErrEmailTaken)
	s.Equal(409, apperrors.StatusCode(err))

	_, err = s.invite(s.admin, "DUP@ospro.com", entities.RoleUser)
	s.ErrorIs(err, ErrEmailTaken)

	other, err := s.invite(s.admin, "other@ospro.com", entities.RoleUser)
	s.Require().NoError(err)
	_, err = s.env.userService.Update(s.admin, other.ID, dto.UpdateUserDTO{Email: strPtr("dup@ospro.com")})
	s.ErrorIs(err, ErrEmailTaken)
	_, err = s.env.userService.Update(s.admin, other.ID, dto.UpdateUserDTO{Email: strPtr("Dup@OSPRO.com")})
	s.ErrorIs(err, ErrEmailTaken)

	// Смена регистра собственного адреса конфликтом не считается.
	_, err = s.env.userService.Update(s.admin, other.ID, dto.UpdateUserDTO{Email: strPtr("Other@ospro.com")})
	s.NoError(err)
}

func (s *UserServiceTestSuite) TestOnlyManagerGrantsManager() {
	_, err := s.invite(s.admin, "boss@ospro.com", entities.RoleManager)
	s.ErrorIs(err, apperrors.ErrForbidden)

	boss, err := s.invite(s.manager, "boss@ospro.com", entities.RoleManager)
	s.Require().NoError(err)

	_, err = s.env.userService.Update(s.admin, boss.ID, dto.UpdateUserDTO{Role: strPtr("user")})
	s.ErrorIs(err, apperrors.ErrForbidden)

	updated, err := s.env.userService.Update(s.manager, boss.ID, dto.UpdateUserDTO{Role: strPtr("analist")})
	s.Require().NoError(err)
	s.Equal(entities.RoleAnalist, updated.Role)
}

func (s *UserServiceTestSuite) TestDeleteRules() {
	self, _ := utils.GetActorFromCtx(s.admin)
	s.True(apperrors.IsValidationError(s.env.userService.Delete(s.admin, self.ID)))

	boss, err := s.invite(s.manager, "boss@ospro.com", entities.RoleManager)
	s.Require().NoError(err)
	s.ErrorIs(s.env.userService.Delete(s.admin, boss.ID), apperrors.ErrForbidden)

	worker, err := s.invite(s.admin, "worker@ospro.com", entities.RoleUser)
	s.Require().NoError(err)
	s.Require().NoError(s.env.userService.Delete(s.admin, worker.ID))
	s.NoError(s.env.userService.Delete(s.admin, worker.ID), "повторное удаление - no-op")

	_, err = s.env.userService.FindByID(s.admin, worker.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *UserServiceTestSuite) TestRequiresUsersManage() {
	user := s.env.as(s.T(), entities.RoleUser)
	analist := s.env.as(s.T(), entities.RoleAnalist)

	_, err := s.env.userService.List(user)
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.invite(analist, "x@ospro.com", entities.RoleUser)
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.env.userService.List(context.Background())
	s.ErrorIs(err, apperrors.ErrUnauthenticated)

	list, err := s.env.userService.List(s.admin)
	s.Require().NoError(err)
	s.Len(list, 4)
}

func (s *UserServiceTestSuite) TestDeactivatedActorLosesAccess() {
	worker, err := s.invite(s.manager, "worker@ospro.com", entities.RoleAdmin)
	s.Require().NoError(err)
	_, err = s.env.userService.Update(s.manager, worker.ID, dto.UpdateUserDTO{IsActive: boolPtr(false)})
	s.Require().NoError(err)

	stored, err := s.env.users.FindByID(context.Background(), worker.ID)
	s.Require().NoError(err)
	_, err = s.env.userService.List(utils.WithActor(context.Background(), stored))
	s.ErrorIs(err, apperrors.ErrForbidden)
}
