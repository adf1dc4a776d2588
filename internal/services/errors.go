package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Every error a service returns to signal a business rule wraps
// exactly one of them, so the HTTP layer only has to match on these.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)

	ErrCategoryExists   = fmt.Errorf("%w: category already exists", ErrConflict)
	ErrCategoryNotFound = fmt.Errorf("%w: category not found", ErrNotFound)

	ErrStatusExists   = fmt.Errorf("%w: status already exists", ErrConflict)
	ErrStatusNotFound = fmt.Errorf("%w: status not found", ErrNotFound)

	ErrProjectNotFound = fmt.Errorf("%w: project not found", ErrNotFound)
	ErrNotProjectOwner = fmt.Errorf("%w: only the project owner can delete it", ErrUnauthorized)

	ErrTaskNotFound         = fmt.Errorf("%w: task not found", ErrNotFound)
	ErrTaskPermissionDenied = fmt.Errorf("%w: user does not have permission to modify this task", ErrUnauthorized)
)

// notFound maps gorm.ErrRecordNotFound to the given domain error and wraps
// anything else with op.
func notFound(err error, target error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
