package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrNotFound = errors.New("not found")

type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed validation on save.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, " ")
}

func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}

var validate = validator.New()

// validateFields checks only the listed struct fields of entity, the same
// set that is about to be written.
func validateFields(entity interface{}, fields ...string) error {
	err := validate.StructPartial(entity, fields...)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty.", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}

// writeColumns adds the timestamp columns gorm maintains to a
// whitelisted field list.
func writeColumns(fields []string, create bool) []string {
	cols := append([]string{}, fields...)
	cols = append(cols, "UpdatedAt")
	if create {
		cols = append(cols, "CreatedAt")
	}
	return cols
}
