package rest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
)

type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their json names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &requestValidator{
		validate: validate,
	}
}

// Validate reports the first failing field as ErrInvalidRequest.
func (that *requestValidator) Validate(i any) error {
	err := that.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]

		return fmt.Errorf("%w: %s failed on %s", apperror.ErrInvalidRequest, first.Field(), first.Tag())
	}

	return fmt.Errorf("%w: %w", apperror.ErrInvalidRequest, err)
}
