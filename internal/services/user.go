package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"os-manager/internal/authz"
	"os-manager/internal/dto"
	"os-manager/internal/entities"
	"os-manager/internal/repositories"
	"os-manager/pkg/constants"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/sanitize"
	"os-manager/pkg/utils"
)

var ErrEmailTaken = apperrors.NewHttpError(http.StatusConflict, "Este e-mail já está em uso", nil, nil)

type UserServiceInterface interface {
	List(ctx context.Context) ([]entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	Create(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	Update(ctx context.Context, id string, payload dto.UpdateUserDTO) (*entities.User, error)
	Delete(ctx context.Context, id string) error
}

type UserService struct {
	repo       repositories.UserRepositoryInterface
	hasher     PasswordHasher
	logService ActivityLogServiceInterface
	gatekeeper *authz.Gatekeeper
	sanitizer  *sanitize.TextSanitizer
	logger     *zap.Logger
}

func NewUserService(
	repo repositories.UserRepositoryInterface,
	hasher PasswordHasher,
	logService ActivityLogServiceInterface,
	gatekeeper *authz.Gatekeeper,
	sanitizer *sanitize.TextSanitizer,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		repo:       repo,
		hasher:     hasher,
		logService: logService,
		gatekeeper: gatekeeper,
		sanitizer:  sanitizer,
		logger:     logger,
	}
}

func (s *UserService) require(ctx context.Context) (*entities.User, error) {
	actor, _ := utils.GetActorFromCtx(ctx)
	if err := s.gatekeeper.Require(actor, authz.UsersManage); err != nil {
		return nil, err
	}
	return actor, nil
}

func (s *UserService) List(ctx context.Context) ([]entities.User, error) {
	if _, err := s.require(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, repositories.ListParams{SortDesc: repositories.SortCreatedDate})
}

func (s *UserService) FindByID(ctx context.Context, id string) (*entities.User, error) {
	if _, err := s.require(ctx); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Create - приглашение пользователя. По умолчанию учётная запись активна.
func (s *UserService) Create(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	actor, err := s.require(ctx)
	if err != nil {
		return nil, err
	}
	role := entities.Role(payload.Role)
	if !s.gatekeeper.CanChangeRole(actor, nil, role) {
		return nil, apperrors.ErrForbidden
	}

	email := strings.TrimSpace(payload.Email)
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(payload.Password)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		FullName:     s.text(payload.FullName),
		Email:        email,
		Role:         role,
		Department:   null.StringFromPtr(s.textPtr(payload.Department)),
		Phone:        null.StringFromPtr(payload.Phone),
		IsActive:     payload.IsActive == nil || *payload.IsActive,
		PasswordHash: hash,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logService.Record(ctx, dto.LogEntryDTO{
		ActionType:  entities.ActionCreate,
		EntityType:  constants.EntityUser,
		EntityID:    created.ID,
		Description: fmt.Sprintf("Usuário %s convidado como %s", created.Email, created.Role),
		NewValue:    dto.NewUserResponseDTO(created),
		Severity:    entities.SeverityInfo,
	})
	s.logger.Info("Пользователь создан", zap.String("id", created.ID), zap.String("role", string(created.Role)))
	return created, nil
}

// Update - редактирование администратором. Роль manager выдаёт и снимает только manager.
func (s *UserService) Update(ctx context.Context, id string, payload dto.UpdateUserDTO) (*entities.User, error) {
	actor, err := s.require(ctx)
	if err != nil {
		return nil, err
	}
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := entities.UserPatch{
		FullName: s.textPtr(payload.FullName),
		IsActive: payload.IsActive,
	}
	if payload.Email != nil {
		email := strings.TrimSpace(*payload.Email)
		if email != target.Email {
			if err := s.ensureEmailFree(ctx, email, target.ID); err != nil {
				return nil, err
			}
		}
		patch.Email = &email
	}
	if payload.Role != nil {
		role := entities.Role(*payload.Role)
		if role != target.Role && !s.gatekeeper.CanChangeRole(actor, target, role) {
			return nil, apperrors.ErrForbidden
		}
		patch.Role = &role
	}
	if payload.Department != nil {
		dep := null.StringFromPtr(s.textPtr(payload.Department))
		patch.Department = &dep
	}
	if payload.Phone != nil {
		phone := null.StringFromPtr(payload.Phone)
		patch.Phone = &phone
	}
	if payload.Password != nil && *payload.Password != "" {
		hash, err := s.hasher.Hash(*payload.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logService.Record(ctx, dto.LogEntryDTO{
		ActionType:  entities.ActionUpdate,
		EntityType:  constants.EntityUser,
		EntityID:    updated.ID,
		Description: fmt.Sprintf("Usuário %s atualizado", updated.Email),
		OldValue:    dto.NewUserResponseDTO(target),
		NewValue:    dto.NewUserResponseDTO(updated),
		Severity:    entities.SeverityInfo,
	})
	return updated, nil
}

// Delete - жёсткое удаление. Удалить себя нельзя, удалить manager может только manager.
func (s *UserService) Delete(ctx context.Context, id string) error {
	actor, err := s.require(ctx)
	if err != nil {
		return err
	}
	if actor.ID == id {
		return apperrors.NewValidationError("id", "não é possível excluir o próprio usuário")
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if target.Role == entities.RoleManager && actor.Role != entities.RoleManager {
		return apperrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logService.Record(ctx, dto.LogEntryDTO{
		ActionType:  entities.ActionDelete,
		EntityType:  constants.EntityUser,
		EntityID:    target.ID,
		Description: fmt.Sprintf("Usuário %s excluído", target.Email),
		OldValue:    dto.NewUserResponseDTO(target),
		Severity:    entities.SeverityWarning,
	})
	return nil
}

// ensureEmailFree - email уникален без учёта регистра. Вход при этом сравнивает адрес точно.
func (s *UserService) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	users, err := s.repo.List(ctx, repositories.ListParams{})
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID != exceptID && strings.EqualFold(users[i].Email, email) {
			return ErrEmailTaken
		}
	}
	return nil
}

func (s *UserService) text(v string) string {
	if s.sanitizer == nil {
		return v
	}
	return s.sanitizer.Text(v)
}

func (s *UserService) textPtr(v *string) *string {
	if s.sanitizer == nil {
		return v
	}
	return s.sanitizer.Ptr(v)
}
