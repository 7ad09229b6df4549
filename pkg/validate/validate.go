package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// notSpace is the JavaScript \s class negated, plus '@'. RE2's \s is ASCII only.
const notSpace = `[^\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}@]`

var (
	emailPattern = regexp.MustCompile(`^` + notSpace + `+@` + notSpace + `+\.` + notSpace + `+$`)
	phonePattern = regexp.MustCompile(`^[+]?[0-9]{10,13}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("pnemail", func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String())
	})
	_ = v.RegisterValidation("pnphone", func(fl validator.FieldLevel) bool {
		return Phone(fl.Field().String())
	})
	return v
}

func Email(s string) bool {
	return emailPattern.MatchString(s)
}

func Phone(s string) bool {
	return phonePattern.MatchString(s)
}

type FieldError struct {
	Field string
	Tag   string
}

func Struct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Tag: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

func HasTag(errs []FieldError, tags ...string) bool {
	for _, e := range errs {
		for _, t := range tags {
			if e.Tag == t {
				return true
			}
		}
	}
	return false
}

func Message(e FieldError) string {
	switch e.Tag {
	case "required":
		return "This field is required"
	case "pnemail", "email":
		return "Invalid email format"
	case "pnphone":
		return "Invalid phone number"
	case "oneof":
		return "Unsupported value"
	default:
		return fmt.Sprintf("Invalid %s field", e.Field)
	}
}

func Format(errs []FieldError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, Message(e)))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
