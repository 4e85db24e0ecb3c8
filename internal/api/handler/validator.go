package handler

import (
	"github.com/barbercommunity/marketplace/internal/pkg/validate"
)

// echoValidator adapts validate.Validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validate.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validate.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}
