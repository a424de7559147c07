package service

import (
	"errors"
	"fmt"

	"go-inventory-orders/pkg/validator"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrOptionNotFound   = errors.New("product option not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ValidationError rejects input before any store call is made.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// validate runs struct tags and reports the first failure.
func validate(v any) error {
	errs := validator.ValidateStruct(v)
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	switch first.Tag {
	case "required", "notblank", "uuid_required":
		return invalid(first.FailedField, "is required")
	case "min":
		return invalid(first.FailedField, "needs at least "+first.Value)
	case "gte":
		return invalid(first.FailedField, "must be at least "+first.Value)
	case "datetime":
		return invalid(first.FailedField, "must be a date in YYYY-MM-DD form")
	default:
		return invalid(first.FailedField, "failed on '"+first.Tag+"'")
	}
}
