package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"os-manager/internal/dto"
	"os-manager/internal/entities"
	"os-manager/internal/repositories"
	apperrors "os-manager/pkg/errors"
)

type AuthServiceTestSuite struct {
	suite.Suite
	env *testEnv
	ctx context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.ctx = context.Background()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestLoginUpdateProfileMeScenario() {
	created := s.env.seedUser(s.T(), "a@x.com", "pw", entities.RoleUser, true)

	user, err := s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "a@x.com", Password: "pw"})
	s.Require().NoError(err)
	s.Equal(created.ID, user.ID)
	s.Equal("a@x.com", user.Email)

	_, err = s.env.auth.UpdateProfile(s.ctx, dto.ProfileUpdateDTO{Nickname: strPtr("A")})
	s.Require().NoError(err)

	me, err := s.env.auth.Me(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(me)
	s.Equal("A", me.Nickname.String)
	s.Equal("a@x.com", me.Email)

	stored, err := s.env.users.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("A", stored.Nickname.String, "профиль обновляется и в коллекции users")
}

func (s *AuthServiceTestSuite) TestLoginFailures() {
	s.env.seedUser(s.T(), "off@x.com", "pw", entities.RoleUser, false)
	s.env.seedUser(s.T(), "on@x.com", "pw", entities.RoleUser, true)

	_, err := s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "off@x.com", Password: "pw"})
	s.ErrorIs(err, apperrors.ErrAccountInactive)

	_, err = s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "off@x.com", Password: "wrong"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials, "неверный пароль проверяется раньше активности")

	_, err = s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "on@x.com", Password: "wrong"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, err = s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "nobody@x.com", Password: "pw"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)

	me, err := s.env.auth.Me(s.ctx)
	s.Require().NoError(err)
	s.Nil(me, "неудачный вход не создаёт сессию")
}

func (s *AuthServiceTestSuite) TestLockoutAfterRepeatedFailures() {
	s.env.seedUser(s.T(), "lock@x.com", "pw", entities.RoleUser, true)

	for i := 0; i < 3; i++ {
		_, err := s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "lock@x.com", Password: "bad"})
		s.ErrorIs(err, apperrors.ErrInvalidCredentials)
	}
	_, err := s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "lock@x.com", Password: "pw"})
	s.ErrorIs(err, apperrors.ErrTooManyAttempts)
}

func (s *AuthServiceTestSuite) TestLoginAndFailuresAreLogged() {
	s.env.seedUser(s.T(), "log@x.com", "pw", entities.RoleUser, true)

	_, err := s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "log@x.com", Password: "bad"})
	s.Error(err)
	_, err = s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "log@x.com", Password: "pw"})
	s.Require().NoError(err)
	s.Require().NoError(s.env.auth.Logout(s.ctx))

	logs, err := s.env.logs.List(s.ctx, repositories.ListParams{})
	s.Require().NoError(err)
	s.Require().Len(logs, 3)
	s.Equal(entities.ActionError, logs[0].ActionType)
	s.Equal(entities.ActionLogin, logs[1].ActionType)
	s.Equal(entities.ActionLogout, logs[2].ActionType)
	s.Equal("log@x.com", logs[2].UserEmail)
}

func (s *AuthServiceTestSuite) TestLogoutClearsSession() {
	s.env.seedUser(s.T(), "b@x.com", "pw", entities.RoleUser, true)
	_, err := s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "b@x.com", Password: "pw"})
	s.Require().NoError(err)

	stored, err := s.env.session.Get(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal("b@x.com", stored.Email)
	s.Empty(stored.PasswordHash)

	s.Require().NoError(s.env.auth.Logout(s.ctx))
	s.Require().NoError(s.env.auth.Logout(s.ctx))

	me, err := s.env.auth.Me(s.ctx)
	s.Require().NoError(err)
	s.Nil(me)
}

func (s *AuthServiceTestSuite) TestUpdateProfileRequiresSession() {
	_, err := s.env.auth.UpdateProfile(s.ctx, dto.ProfileUpdateDTO{Nickname: strPtr("X")})
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (s *AuthServiceTestSuite) TestUpdateProfileValidation() {
	s.env.seedUser(s.T(), "c@x.com", "pw", entities.RoleUser, true)
	_, err := s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "c@x.com", Password: "pw"})
	s.Require().NoError(err)

	long := strings.TrimSpace(strings.Repeat("palavra ", 101))
	_, err = s.env.auth.UpdateProfile(s.ctx, dto.ProfileUpdateDTO{Description: &long})
	s.True(apperrors.IsValidationError(err))

	_, err = s.env.auth.UpdateProfile(s.ctx, dto.ProfileUpdateDTO{Password: strPtr("novasenha"), ConfirmPassword: strPtr("outra")})
	s.True(apperrors.IsValidationError(err))

	_, err = s.env.auth.UpdateProfile(s.ctx, dto.ProfileUpdateDTO{Password: strPtr("novasenha"), ConfirmPassword: strPtr("novasenha")})
	s.Require().NoError(err)
	s.Require().NoError(s.env.auth.Logout(s.ctx))

	_, err = s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "c@x.com", Password: "pw"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
	_, err = s.env.auth.Login(s.ctx, dto.LoginDTO{Email: "c@x.com", Password: "novasenha"})
	s.NoError(err)
}

func TestPasswordHasher_VerifiesBothAlgorithms(t *testing.T) {
	bcryptHasher, err := NewPasswordHasher(HasherBcrypt)
	require.NoError(t, err)
	argonHasher, err := NewPasswordHasher(HasherArgon2id)
	require.NoError(t, err)

	bHash, err := bcryptHasher.Hash("segredo")
	require.NoError(t, err)
	aHash, err := argonHasher.Hash("segredo")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(aHash, "$argon2id$"))

	for _, h := range []PasswordHasher{bcryptHasher, argonHasher} {
		assert.True(t, h.Verify(bHash, "segredo"))
		assert.True(t, h.Verify(aHash, "segredo"))
		assert.False(t, h.Verify(aHash, "errado"))
		assert.False(t, h.Verify("", ""))
		assert.False(t, h.Verify("plaintext", "plaintext"))
	}

	_, err = NewPasswordHasher("md5")
	assert.Error(t, err)
}
