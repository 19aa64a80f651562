package usecase

import (
	"errors"
	"fmt"

	"dropship-store/pkg/utils"
)

// Sentinel errors returned by every service, matched with errors.Is by the
// HTTP layer.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// FieldErrors is a ValidationError that keeps the per-field messages so the
// HTTP layer can return them as a map.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return ErrValidation.Error() + ": " + utils.FormatValidationErrors(e)
}

func (e FieldErrors) Unwrap() error { return ErrValidation }

func fieldErrors(errs map[string]string) error {
	return FieldErrors(errs)
}

// notFound renders as e.g. "product not found"
func notFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

func checkID(kind, id string) error {
	if !utils.IsValidID(id) {
		return validationError("invalid %s id", kind)
	}
	return nil
}
