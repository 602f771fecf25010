package services

import (
	"errors"

	apperrors "os-manager/pkg/errors"
)

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
