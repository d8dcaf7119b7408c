// Package validation checks command options against their struct tags using
// go-playground/validator and reports failures in terms of command-line flags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed check on one flag
type FieldError struct {
	Flag    string
	Tag     string
	Param   string
	Message string
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return e.Message
}

// Error collects every failed check of a struct
type Error struct {
	Fields []FieldError
}

// Error implements the error interface
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	messages := make([]string, len(e.Fields))
	for i := range e.Fields {
		messages[i] = e.Fields[i].Message
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the shared validator. Field names are taken from the
// `flag` struct tag so messages read like --property-key.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := field.Tag.Get("flag")
			if name == "" || name == "-" {
				return field.Name
			}
			return "--" + name
		})
	})

	return validate
}

// ValidateStruct validates s and returns *Error when any check fails
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Flag:    fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translateError(fe),
		}
	}

	return &Error{Fields: fields}
}

// IsValidationError checks if an error came from ValidateStruct
func IsValidationError(err error) bool {
	var validErr *Error
	return errors.As(err, &validErr)
}

var messageTemplates = map[string]string{
	"required":        "%s is required",
	"required_unless": "%s is required",
}

func translateError(fe validator.FieldError) string {
	flag := fe.Field()

	if template, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, flag)
	}

	switch fe.Tag() {
	case "required_if":
		// param is "<Field> <value>"
		parts := strings.Fields(fe.Param())
		if len(parts) == 2 {
			return fmt.Sprintf("%s is required for %s filter", flag, parts[1])
		}
		return fmt.Sprintf("%s is required", flag)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", flag, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", flag, fe.Tag())
	}
}
