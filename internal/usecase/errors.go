package usecase

import (
	"errors"
	"fmt"
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

// storeError maps repository failures onto HTTP-facing errors. Anything
// unexpected is wrapped with the action that failed and becomes a 500.
func storeError(err error, action, notFound string) error {
	var appErr *apperror.AppError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, domain.ErrInvalidID):
		return apperror.BadRequest("Invalid ID format")
	case errors.As(err, &appErr):
		return appErr
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
