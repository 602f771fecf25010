// Файл: internal/services/auth.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"os-manager/internal/dto"
	"os-manager/internal/entities"
	"os-manager/internal/events"
	"os-manager/internal/repositories"
	"os-manager/pkg/config"
	"os-manager/pkg/constants"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/eventbus"
	"os-manager/pkg/utils"
)

const maxDescriptionWords = 100

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*entities.User, error)
	UpdateProfile(ctx context.Context, payload dto.ProfileUpdateDTO) (*entities.User, error)
	GetUserByID(ctx context.Context, id string) (*entities.User, error)
}

type AuthService struct {
	userRepo    repositories.UserRepositoryInterface
	sessionRepo repositories.SessionRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	hasher      PasswordHasher
	logService  ActivityLogServiceInterface
	bus         *eventbus.Bus
	logger      *zap.Logger
	cfg         *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	sessionRepo repositories.SessionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	hasher PasswordHasher,
	logService ActivityLogServiceInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cacheRepo:   cacheRepo,
		hasher:      hasher,
		logService:  logService,
		bus:         bus,
		logger:      logger,
		cfg:         cfg,
	}
}

// Login: неверный email или пароль - ErrInvalidCredentials, верные данные неактивной
// учётной записи - ErrAccountInactive. При успехе пользователь сохраняется как текущая сессия.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	logger := s.logger.With(zap.String("email", payload.Email))

	if err := s.checkLockout(ctx, payload.Email); err != nil {
		s.recordLogin(ctx, payload.Email, events.LoginLocked, nil)
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(user.PasswordHash, payload.Password) {
		s.handleFailedLoginAttempt(ctx, payload.Email)
		s.recordLogin(ctx, payload.Email, events.LoginInvalidCredentials, nil)
		logger.Info("Неудачная попытка входа")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.recordLogin(ctx, payload.Email, events.LoginInactive, user)
		logger.Info("Попытка входа в деактивированную учётную запись")
		return nil, apperrors.ErrAccountInactive
	}

	if err := s.sessionRepo.Set(ctx, *user); err != nil {
		return nil, fmt.Errorf("не удалось сохранить сессию: %w", err)
	}
	s.resetLoginAttempts(ctx, payload.Email)
	s.recordLogin(ctx, payload.Email, events.LoginSuccess, user)
	logger.Info("Пользователь вошёл в систему", zap.String("userID", user.ID))
	return user, nil
}

// Logout очищает сессию безусловно.
func (s *AuthService) Logout(ctx context.Context) error {
	current, err := s.sessionRepo.Get(ctx)
	if err != nil {
		s.logger.Warn("Logout: не удалось прочитать сессию", zap.Error(err))
	}
	if err := s.sessionRepo.Clear(ctx); err != nil {
		return fmt.Errorf("не удалось очистить сессию: %w", err)
	}

	actor, ok := utils.GetActorFromCtx(ctx)
	if !ok {
		actor = current
	}
	if actor != nil {
		s.logService.Record(ctx, dto.LogEntryDTO{
			ActionType:  entities.ActionLogout,
			EntityType:  constants.EntityUser,
			EntityID:    actor.ID,
			UserEmail:   actor.Email,
			UserName:    null.StringFrom(actor.DisplayName()),
			Description: fmt.Sprintf("%s saiu do sistema", actor.DisplayName()),
			Severity:    entities.SeverityInfo,
		})
	}
	return nil
}

// Me: с пользователем в контексте запроса возвращает его актуальную запись,
// без него - сохранённую сессию как есть (nil, если её нет).
func (s *AuthService) Me(ctx context.Context) (*entities.User, error) {
	if actor, ok := utils.GetActorFromCtx(ctx); ok {
		return s.userRepo.FindByID(ctx, actor.ID)
	}
	return s.sessionRepo.Get(ctx)
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("GetUserByID: не удалось найти пользователя", zap.String("userID", id), zap.Error(err))
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile меняет ник, описание и пароль текущего пользователя
// и в коллекции users, и в сессии.
func (s *AuthService) UpdateProfile(ctx context.Context, payload dto.ProfileUpdateDTO) (*entities.User, error) {
	target, err := s.profileOwner(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateProfile(payload); err != nil {
		return nil, err
	}

	patch := entities.UserPatch{}
	if payload.Nickname != nil {
		nick := null.StringFrom(strings.TrimSpace(*payload.Nickname))
		patch.Nickname = &nick
	}
	if payload.Description != nil {
		desc := null.StringFrom(*payload.Description)
		patch.Description = &desc
	}
	if payload.Password != nil && *payload.Password != "" {
		hash, err := s.hasher.Hash(*payload.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.userRepo.Update(ctx, target.ID, patch)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Сессия ссылается на удалённого пользователя: меняем только её.
			merged := *target
			patch.Apply(&merged)
			updated = &merged
		} else {
			return nil, err
		}
	}

	session, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if session != nil && session.ID == target.ID {
		patch.Apply(session)
		session.UpdatedDate = updated.UpdatedDate
		if err := s.sessionRepo.Set(ctx, *session); err != nil {
			return nil, fmt.Errorf("не удалось обновить сессию: %w", err)
		}
	}

	s.logService.Record(ctx, dto.LogEntryDTO{
		ActionType:  entities.ActionUpdate,
		EntityType:  constants.EntityUser,
		EntityID:    target.ID,
		UserEmail:   target.Email,
		UserName:    null.StringFrom(updated.DisplayName()),
		Description: fmt.Sprintf("Perfil de %s atualizado", updated.DisplayName()),
		OldValue:    dto.NewUserResponseDTO(target),
		NewValue:    dto.NewUserResponseDTO(updated),
		Severity:    entities.SeverityInfo,
	})
	return updated, nil
}

func (s *AuthService) profileOwner(ctx context.Context) (*entities.User, error) {
	if actor, ok := utils.GetActorFromCtx(ctx); ok {
		return actor, nil
	}
	session, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return session, nil
}

func validateProfile(payload dto.ProfileUpdateDTO) error {
	if payload.Description != nil && utils.CountWords(*payload.Description) > maxDescriptionWords {
		return apperrors.NewValidationError("description", "não pode ter mais de %d palavras", maxDescriptionWords)
	}
	if payload.Password != nil && payload.ConfirmPassword != nil && *payload.Password != *payload.ConfirmPassword {
		return apperrors.NewValidationError("confirm_password", "as senhas não coincidem")
	}
	return nil
}

func (s *AuthService) recordLogin(ctx context.Context, email, result string, user *entities.User) {
	if s.bus != nil {
		s.bus.Publish(ctx, events.LoginAttemptedEvent{Email: email, Result: result})
	}

	entry := dto.LogEntryDTO{
		EntityType: constants.EntityUser,
		UserEmail:  email,
	}
	if user != nil {
		entry.EntityID = user.ID
		entry.UserName = null.StringFrom(user.DisplayName())
	}
	switch result {
	case events.LoginSuccess:
		entry.ActionType = entities.ActionLogin
		entry.Severity = entities.SeverityInfo
		entry.Description = fmt.Sprintf("%s entrou no sistema", user.DisplayName())
	case events.LoginInactive:
		entry.ActionType = entities.ActionError
		entry.Severity = entities.SeverityWarning
		entry.Description = "Tentativa de login em conta desativada"
		entry.ErrorMessage = apperrors.ErrAccountInactive.Error()
	case events.LoginLocked:
		entry.ActionType = entities.ActionError
		entry.Severity = entities.SeverityWarning
		entry.Description = "Login bloqueado por excesso de tentativas"
		entry.ErrorMessage = apperrors.ErrTooManyAttempts.Error()
	default:
		entry.ActionType = entities.ActionError
		entry.Severity = entities.SeverityWarning
		entry.Description = "Falha de login: credenciais inválidas"
		entry.ErrorMessage = apperrors.ErrInvalidCredentials.Error()
	}
	s.logService.Record(ctx, entry)
}

func lockoutKey(email string) string {
	return fmt.Sprintf(constants.CacheKeyLockout, strings.ToLower(email))
}

func attemptsKey(email string) string {
	return fmt.Sprintf(constants.CacheKeyLoginAttempts, strings.ToLower(email))
}

// checkLockout - если ключ блокировки существует, вход запрещён.
func (s *AuthService) checkLockout(ctx context.Context, email string) error {
	if s.cacheRepo == nil || s.cfg.MaxLoginAttempts <= 0 {
		return nil
	}
	if _, err := s.cacheRepo.Get(ctx, lockoutKey(email)); err == nil {
		return apperrors.ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, email string) {
	if s.cacheRepo == nil || s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey(email))
	if err != nil {
		s.logger.Warn("Не удалось учесть неудачную попытку входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey(email), s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, lockoutKey(email), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey(email))
		s.logger.Warn("Вход заблокирован после серии неудачных попыток", zap.String("email", email))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, email string) {
	if s.cacheRepo == nil {
		return
	}
	_ = s.cacheRepo.Del(ctx, attemptsKey(email), lockoutKey(email))
}
