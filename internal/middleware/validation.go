package middleware

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/traveltogether/api/internal/app/models/dto"
)

// RegisterCustomValidators wires application-specific validators into gin's
// binding validator. Safe to call more than once.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("daterange", validDateOnly)
	}
}

// validDateOnly accepts strings in YYYY-MM-DD form
func validDateOnly(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(dto.DateOnly, value)
	return err == nil
}
