package dto

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateDTO - самостоятельное изменение профиля. Пароль меняется, только если задан.
type ProfileUpdateDTO struct {
	Nickname        *string `json:"nickname"         validate:"omitempty,max=50"`
	Description     *string `json:"description"      validate:"omitempty,max_words=100"`
	Password        *string `json:"password"         validate:"omitempty,min=6"`
	ConfirmPassword *string `json:"confirm_password" validate:"omitempty"`
}

type AuthResponseDTO struct {
	AccessToken string           `json:"accessToken"`
	User        *UserResponseDTO `json:"user"`
}
