package utils

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate         *validator.Validate
	phoneNumberRegex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("date_only", validateDateOnly)
	validate.RegisterValidation("clock_time", validateClockTime)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phoneNumberRegex.MatchString(fl.Field().String())
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := ParseClockToMinutes(fl.Field().String())
	return err == nil
}
