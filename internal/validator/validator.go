// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Yns1000/haybank/internal/models"
)

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("movement_type", validateMovementType)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("not_blank", validateNotBlank)
	}
}

// validateMovementType accepts "D" or "C". Pointer fields are dereferenced
// by the engine, so an absent value never reaches here under omitempty.
func validateMovementType(fl validator.FieldLevel) bool {
	return models.MovementType(fl.Field().String()).Valid()
}

func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !isoDateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
