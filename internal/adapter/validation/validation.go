package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	err := v.RegisterValidation("items", validateItems)
	if err != nil {
		return nil, fmt.Errorf("register items validation: %w", err)
	}
	err = v.RegisterValidation("orderstatus", validateStatus)
	if err != nil {
		return nil, fmt.Errorf("register status validation: %w", err)
	}

	return &Validator{validate: v}, nil
}

// Validate returns *domain.ValidationError with one entry per failed field.
func (v *Validator) Validate(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return domain.NewValidationError(fields...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "items":
		return "must be a non-empty list of items"
	case "orderstatus":
		return fmt.Sprintf("unknown order status %q", fe.Value())
	default:
		return "failed on " + fe.Tag()
	}
}

func validateItems(fl validator.FieldLevel) bool {
	items, ok := fl.Field().Interface().(domain.Items)
	if !ok {
		return false
	}
	return !items.Empty()
}

func validateStatus(fl validator.FieldLevel) bool {
	return domain.OrderStatus(fl.Field().String()).Valid()
}
