package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Indian mobile numbers: ten digits, leading 6-9.
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	// local@domain.tld with no whitespace or extra '@'.
	basicEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("in_mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return basicEmailPattern.MatchString(fl.Field().String())
	})

	return &CustomValidator{
		validator: v,
	}
}

// Var validates a single value against a tag expression such as "required" or "gte=1,lte=1000".
func (cv *CustomValidator) Var(field interface{}, tag string) error {
	return cv.validator.Var(field, tag)
}
