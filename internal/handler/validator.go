package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validation for Slack channel IDs
	_ = v.RegisterValidation("slack_channel", validateSlackChannel)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "slack_channel":
			errs[field] = "Invalid Slack channel ID"
		case "url":
			errs[field] = "Invalid URL"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "dive":
			errs[field] = "Invalid list entry"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateSlackChannel accepts Slack conversation IDs: an uppercase type
// prefix (C public, G private, D direct) followed by alphanumerics.
func validateSlackChannel(fl validator.FieldLevel) bool {
	channel := fl.Field().String()
	if channel == "" {
		return true
	}
	if len(channel) < 2 {
		return false
	}
	switch channel[0] {
	case 'C', 'G', 'D':
	default:
		return false
	}
	for _, r := range channel[1:] {
		isDigit := r >= '0' && r <= '9'
		isUpper := r >= 'A' && r <= 'Z'
		if !isDigit && !isUpper {
			return false
		}
	}
	return true
}
