// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"stockqr/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn adds the custom tags to v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("movement_type", validateMovementType)
	_ = v.RegisterValidation("not_blank", validateNotBlank)
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateMovementType(fl validator.FieldLevel) bool {
	return models.MovementType(fl.Field().String()).Valid()
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
