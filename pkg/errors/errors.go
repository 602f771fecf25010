package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrAccountInactive    = fmt.Errorf("учётная запись деактивирована")
	ErrUnauthenticated    = fmt.Errorf("не аутентифицирован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")
	ErrTooManyAttempts    = fmt.Errorf("слишком много попыток входа")

	// Общие
	ErrNotFound       = fmt.Errorf("запись не найдена")
	ErrUserNotFound   = fmt.Errorf("пользователь не найден: %w", ErrNotFound)
	ErrBadRequest     = fmt.Errorf("неверный запрос")
	ErrInternalServer = fmt.Errorf("внутренняя ошибка сервера")
)

// ValidationError - нарушение правил бизнес-валидации (например, лимит слов в описании).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// HttpError - ошибка с HTTP-кодом для отдачи клиенту.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// StatusCode сопоставляет доменную ошибку с HTTP-статусом.
func StatusCode(err error) int {
	var httpErr *HttpError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case IsValidationError(err), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrEmptyAuthHeader),
		errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrInvalidSigningMethod):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccountInactive), errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}
