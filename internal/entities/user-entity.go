// Файл: internal/entities/user-entity.go
package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type User struct {
	ID          string      `json:"id"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Department  null.String `json:"department"`
	Phone       null.String `json:"phone"`
	IsActive    bool        `json:"is_active"`
	Nickname    null.String `json:"nickname"`
	Description null.String `json:"description"`

	// Хеш пароля, никогда не отдаётся наружу через DTO.
	PasswordHash string `json:"password_hash,omitempty"`

	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

type UserPatch struct {
	FullName     *string
	Email        *string
	Role         *Role
	Department   *null.String
	Phone        *null.String
	IsActive     *bool
	Nickname     *null.String
	Description  *null.String
	PasswordHash *string
}

func (p UserPatch) Apply(u *User) bool {
	changed := false
	if p.FullName != nil && u.FullName != *p.FullName {
		u.FullName = *p.FullName
		changed = true
	}
	if p.Email != nil && u.Email != *p.Email {
		u.Email = *p.Email
		changed = true
	}
	if p.Role != nil && u.Role != *p.Role {
		u.Role = *p.Role
		changed = true
	}
	if p.IsActive != nil && u.IsActive != *p.IsActive {
		u.IsActive = *p.IsActive
		changed = true
	}
	if p.PasswordHash != nil && u.PasswordHash != *p.PasswordHash {
		u.PasswordHash = *p.PasswordHash
		changed = true
	}
	for _, f := range []struct {
		dst *null.String
		src *null.String
	}{
		{&u.Department, p.Department},
		{&u.Phone, p.Phone},
		{&u.Nickname, p.Nickname},
		{&u.Description, p.Description},
	} {
		if f.src != nil && *f.dst != *f.src {
			*f.dst = *f.src
			changed = true
		}
	}
	return changed
}

// DisplayName - ник, если задан, иначе полное имя.
func (u *User) DisplayName() string {
	if u.Nickname.Valid && u.Nickname.String != "" {
		return u.Nickname.String
	}
	return u.FullName
}
