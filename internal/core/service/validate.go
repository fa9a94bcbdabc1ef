package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/niksmo/storefront/internal/core/domain"
)

var (
	cardRe   = regexp.MustCompile(`^[0-9]{16}$`)
	cvvRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

const passwordSpecials = "@$!%*?&"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err) // develop mistake
		}
	}
	must("card", func(fl validator.FieldLevel) bool {
		return cardRe.MatchString(fl.Field().String())
	})
	must("cvv", func(fl validator.FieldLevel) bool {
		return cvvRe.MatchString(fl.Field().String())
	})
	must("expiry", func(fl validator.FieldLevel) bool {
		return expiryRe.MatchString(fl.Field().String())
	})
	must("password", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String())
	})
	return v
}

// strongPassword requires a lower and upper case letter, a digit and one
// of the allowed special characters, and nothing else.
func strongPassword(s string) bool {
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// ValidateForm checks a form struct and reports every failing field as a
// [domain.ValidationError] keyed by the field's JSON name.
//
// Field messages come from the "label", "missing" and "invalid" struct tags.
func ValidateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	t := reflect.Indirect(reflect.ValueOf(form)).Type()
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, ok := fields[fe.Field()]; ok {
			continue
		}
		fields[fe.Field()] = fieldMessage(t, fe)
	}
	return domain.ValidationError{Fields: fields}
}

func fieldMessage(t reflect.Type, fe validator.FieldError) string {
	f, _ := t.FieldByName(fe.StructField())
	label := f.Tag.Get("label")
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required", "required_if":
		if msg := f.Tag.Get("missing"); msg != "" {
			return msg
		}
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "eqfield":
		return "Passwords do not match"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	}

	if msg := f.Tag.Get("invalid"); msg != "" {
		return msg
	}
	return label + " is invalid"
}
