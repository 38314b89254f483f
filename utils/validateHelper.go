package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags of an input struct.
func ValidateStruct(input interface{}) error {
	return validate.Struct(input)
}
