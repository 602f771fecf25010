package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"os-manager/internal/entities"
)

type CreateUserDTO struct {
	FullName   string  `json:"full_name"  validate:"required,max=150"`
	Email      string  `json:"email"      validate:"required,email"`
	Role       string  `json:"role"       validate:"required,user_role"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Phone      *string `json:"phone"      validate:"omitempty,max=30"`
	IsActive   *bool   `json:"is_active"`
	Password   string  `json:"password"   validate:"required,min=6"`
}

type UpdateUserDTO struct {
	FullName   *string `json:"full_name"  validate:"omitempty,min=1,max=150"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Role       *string `json:"role"       validate:"omitempty,user_role"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Phone      *string `json:"phone"      validate:"omitempty,max=30"`
	IsActive   *bool   `json:"is_active"`
	Password   *string `json:"password"   validate:"omitempty,min=6"`
}

// UserResponseDTO - пользователь без хеша пароля.
type UserResponseDTO struct {
	ID          string        `json:"id"`
	FullName    string        `json:"full_name"`
	Email       string        `json:"email"`
	Role        entities.Role `json:"role"`
	Department  null.String   `json:"department"`
	Phone       null.String   `json:"phone"`
	IsActive    bool          `json:"is_active"`
	Nickname    null.String   `json:"nickname"`
	Description null.String   `json:"description"`
	Permissions []string      `json:"permissions,omitempty"`
	CreatedDate time.Time     `json:"created_date"`
	UpdatedDate time.Time     `json:"updated_date"`
}

func NewUserResponseDTO(u *entities.User) *UserResponseDTO {
	if u == nil {
		return nil
	}
	return &UserResponseDTO{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        u.Role,
		Department:  u.Department,
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		Nickname:    u.Nickname,
		Description: u.Description,
		CreatedDate: u.CreatedDate,
		UpdatedDate: u.UpdatedDate,
	}
}

func NewUserResponseList(users []entities.User) []UserResponseDTO {
	out := make([]UserResponseDTO, 0, len(users))
	for i := range users {
		out = append(out, *NewUserResponseDTO(&users[i]))
	}
	return out
}
