// Package validation wraps go-playground/validator with the portal's custom
// rules and turns its errors into domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// New returns a validator with the "district", "category" and "mobile" rules
// registered. Field names in errors follow the json tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("district", func(fl validator.FieldLevel) bool {
		return domain.IsDistrict(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.IsCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return IsMobileNumber(fl.Field().String())
	})
	return v
}

// IsMobileNumber reports whether s is exactly 10 ASCII digits.
func IsMobileNumber(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Translate converts validator errors into a *domain.ValidationError for the
// first failing field. Other errors are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return &domain.ValidationError{Field: fieldName(fe), Reason: Reason(fe)}
	}
	return err
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// Reason describes why a single field failed.
func Reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "district":
		return "must be a known district"
	case "category":
		return "must be a known category"
	case "mobile":
		return "must be a valid 10-digit mobile number"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
