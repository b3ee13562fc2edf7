package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("weekday", validateWeekday)
	validate.RegisterValidation("urgency", validateUrgency)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateWeekday(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}

func validateUrgency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "RED", "AMBER", "YELLOW", "GREEN":
		return true
	}
	return false
}
