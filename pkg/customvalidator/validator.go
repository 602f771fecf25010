// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"os-manager/internal/entities"
)

var osNumberRegex = regexp.MustCompile(`^\d{1,10}$`)

// RegisterCustomValidations регистрирует правила предметной области в валидаторе.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"os_number":   isOSNumber,
		"os_status":   isOrderStatus,
		"os_priority": isOrderPriority,
		"user_role":   isUserRole,
		"severity":    isSeverity,
		"max_words":   hasMaxWords,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Номер O.S. - только цифры, не длиннее 10 символов.
func isOSNumber(fl validator.FieldLevel) bool {
	return osNumberRegex.MatchString(fl.Field().String())
}

func isOrderStatus(fl validator.FieldLevel) bool {
	return entities.OrderStatus(fl.Field().String()).Valid()
}

func isOrderPriority(fl validator.FieldLevel) bool {
	return entities.OrderPriority(fl.Field().String()).Valid()
}

func isUserRole(fl validator.FieldLevel) bool {
	return entities.Role(fl.Field().String()).Valid()
}

func isSeverity(fl validator.FieldLevel) bool {
	return entities.Severity(fl.Field().String()).Valid()
}

// max_words=N - не больше N слов, разделённых пробелами.
func hasMaxWords(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(strings.Fields(fl.Field().String())) <= limit
}
