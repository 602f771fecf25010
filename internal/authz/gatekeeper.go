package authz

import (
	"os-manager/internal/entities"
	apperrors "os-manager/pkg/errors"
)

// Gatekeeper проверяет права конкретного пользователя, а не только роли.
type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

func (g *Gatekeeper) Can(actor *entities.User, permission string) bool {
	if actor == nil || !actor.IsActive {
		return false
	}
	return Can(actor.Role, permission)
}

// Require возвращает ErrUnauthenticated без пользователя и ErrForbidden без права.
func (g *Gatekeeper) Require(actor *entities.User, permission string) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	if !g.Can(actor, permission) {
		return apperrors.ErrForbidden
	}
	return nil
}

// CanChangeRole - может ли actor перевести target в роль newRole.
// Снять роль manager с пользователя тоже может только manager.
func (g *Gatekeeper) CanChangeRole(actor *entities.User, target *entities.User, newRole entities.Role) bool {
	if actor == nil || !actor.IsActive {
		return false
	}
	if !CanAssignRole(actor.Role, newRole) {
		return false
	}
	if target != nil && target.Role == entities.RoleManager && newRole != entities.RoleManager {
		return actor.Role == entities.RoleManager
	}
	return true
}
