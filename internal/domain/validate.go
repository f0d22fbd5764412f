package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-() ]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("lead_status", func(fl validator.FieldLevel) bool {
		_, err := ParseLeadStatus(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		_, err := ParseRole(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("activity_type", func(fl validator.FieldLevel) bool {
		_, err := ParseActivityType(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("phone_chars", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidationError reports the fields of a draft that failed validation.
// It blocks submission; nothing is sent to the backend while it is non-nil.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateDraft checks a draft struct against its validate tags and returns
// a *ValidationError describing every failing field.
func ValidateDraft(draft any) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	failed := make(map[string]string, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		failed[fieldError.Field()] = reasonFor(fieldError)
	}
	return &ValidationError{Fields: failed}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lead_status":
		return "must be one of pending, verified, follow_up, converted, lost, rejected"
	case "user_role":
		return "must be one of admin, manager, sales"
	case "activity_type":
		return "must be one of note, call, meeting"
	case "phone_chars":
		return "can include digits and symbols only"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
