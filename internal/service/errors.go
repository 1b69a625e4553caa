package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports malformed input. Nothing is written when it is
// returned.
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthError is returned for rejected credentials, banned accounts and a wrong
// admin key.
type AuthError struct {
	Message string
	Banned  bool
}

func (ae AuthError) Error() string {
	return ae.Message
}

var (
	ErrInvalidCredentials = &AuthError{Message: "invalid email or password"}
	ErrAccountBanned      = &AuthError{Message: "account is banned", Banned: true}
	ErrInvalidAdminKey    = &AuthError{Message: "invalid admin key"}
	ErrSessionExpired     = &AuthError{Message: "session expired"}
)

// NetworkError wraps a failed call to an outside service.
type NetworkError struct {
	Op  string
	Err error
}

func (ne NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", ne.Op, ne.Err)
}

func (ne NetworkError) Unwrap() error {
	return ne.Err
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// validateStruct runs struct tag validation and reports the first failing
// field as a ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return NewValidationError(field, "is required")
	case "email":
		return NewValidationError(field, "must be a valid email address")
	case "min":
		return NewValidationError(field, fmt.Sprintf("must be at least %s characters", fe.Param()))
	case "max":
		return NewValidationError(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "gt":
		return NewValidationError(field, fmt.Sprintf("must be greater than %s", fe.Param()))
	case "hexcolor":
		return NewValidationError(field, "must be a hex color")
	case "oneof":
		return NewValidationError(field, fmt.Sprintf("must be one of: %s", fe.Param()))
	case "url":
		return NewValidationError(field, "must be a valid url")
	default:
		return NewValidationError(field, fmt.Sprintf("failed '%s' validation", fe.Tag()))
	}
}
