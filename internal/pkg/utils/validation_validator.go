package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateEmail checks address syntax with the validator email rule, which
// requires a dotted domain part.
func ValidateEmail(email string) bool {
	if strings.TrimSpace(email) != email {
		return false
	}
	return validate.Var(email, "required,email") == nil
}
