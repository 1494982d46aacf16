package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Errs carries every failing field of one validation run, not just the first.
type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Map turns the list into the field -> message map shown next to form inputs.
func (e Errs) Map() map[string]string {
	m := make(map[string]string, len(e))
	for _, ef := range e {
		if _, ok := m[ef.Field]; !ok {
			m[ef.Field] = ef.Msg
		}
	}
	return m
}



var (
	v    *validator.Validate
	once sync.Once
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("letterdigit", letterDigit)
	})
	return v
}

// Struct runs the struct's `validate` tags and returns Errs holding all failures.
// Non-validation problems (e.g. a non-struct argument) are returned as is.
func Struct(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := make(Errs, 0, len(ves))
	for _, fe := range ves {
		out = append(out, ErrField{Field: fe.Field(), Msg: message(fe)})
	}
	return out
}

func letterDigit(fl validator.FieldLevel) bool {
	var letter, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

var labels = map[string]string{
	"firstName": "first name",
	"lastName":  "last name",
	"email":     "email",
	"state":     "state",
	"username":  "username",
	"password":  "password",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

func message(fe validator.FieldError) string {
	l := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return l + " is required"
	case "email":
		return l + " is not valid"
	case "min":
		return l + " must be at least " + fe.Param() + " characters"
	case "max":
		return l + " must be at most " + fe.Param() + " characters"
	case "alphanum":
		return l + " must contain only letters and digits"
	case "letterdigit":
		return l + " must contain a letter and a digit"
	case "oneof":
		return l + " must be one of " + fe.Param()
	default:
		return l + " is invalid"
	}
}
