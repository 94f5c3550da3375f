package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/hp-grievance/portal/internal/pkg/validation"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Failures surface as *domain.ValidationError.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// A nil v uses validation.New().
func NewValidator(v *validator.Validate) *echoValidator {
	if v == nil {
		v = validation.New()
	}
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return validation.Translate(ev.v.Struct(i))
}
