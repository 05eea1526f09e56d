package customvalidator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var usernameRegex = regexp.MustCompile(`^[a-z][a-z0-9._-]{2,31}$`)

// RegisterCustomValidations wires the project-specific rules into the shared
// validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("username_format", isValidUsername); err != nil {
		return err
	}
	if err := v.RegisterValidation("datetime_local", isDateTimeLocal); err != nil {
		return err
	}
	if err := v.RegisterValidation("weekday", isWeekday); err != nil {
		return err
	}
	return nil
}

func isValidUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// isDateTimeLocal accepts "2006-01-02T15:04" with optional seconds.
func isDateTimeLocal(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02T15:04:05", s)
	return err == nil
}

func isWeekday(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 0 && d <= 6
}
