package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator plugs go-playground struct validation into echo so
// request DTO tags are checked on Bind+Validate.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the validator registered on the echo instance
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validator.New()}
}

// Validate checks the struct tags of a bound request. Raw
// validator.ValidationErrors are returned as-is; the central error
// handler turns them into VALIDATION_* responses.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
