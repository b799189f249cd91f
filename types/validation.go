package types

import (
	"github.com/go-playground/validator/v10"
)

func TypeValidation(fl validator.FieldLevel) bool {
	_, err := Type(fl.Field().String()).Kind()
	return err == nil
}

func RegisterTypeValidation(v *validator.Validate) {
	v.RegisterValidation("type", TypeValidation)
}
