package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(data interface{}) error {
	return validate.Struct(data)
}

// Message turns a validation error into one line naming each offending field.
func Message(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s é obrigatório", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s inválido", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}
