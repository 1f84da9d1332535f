package domain

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// HTTPURLTag is the validator tag for links and avatars.
const HTTPURLTag = "httpurl"

var httpURLPattern = regexp.MustCompile(`^https?://(www\.)?[a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=]+#?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterValidations installs the custom rules on v. The HTTP binding engine
// gets the same rules so requests and stores agree on what is valid.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(HTTPURLTag, func(fl validator.FieldLevel) bool {
		return IsHTTPURL(fl.Field().String())
	})
}

func IsHTTPURL(s string) bool {
	return httpURLPattern.MatchString(s)
}

// Validate checks a struct against its `validate` tags and reports any
// failure as ErrInvalidData.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}
