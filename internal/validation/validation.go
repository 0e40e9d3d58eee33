// Package validation wraps go-playground/validator with the project's custom
// rules and turns failures into per-field messages keyed by JSON name.
package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

// FieldErrors maps a JSON field name to its first failing rule's message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e[k])
	}
	return strings.Join(parts, " ")
}

// Summary is the first message followed by "(and N more errors)" when
// other fields failed too.
func (e FieldErrors) Summary() string {
	msg := e.First()
	if msg == "" {
		return "The given data was invalid."
	}
	if n := len(e) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more error", n)
		if n > 1 {
			msg += "s"
		}
		msg += ")"
	}
	return msg
}

// First returns the message of the alphabetically first field.
func (e FieldErrors) First() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return e[keys[0]]
}

type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock is New with an injectable clock for date rules.
func NewWithClock(now func() time.Time) *Validator {
	val := &Validator{
		v:   validator.New(validator.WithRequiredStructEnabled()),
		now: now,
	}

	val.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"after_today": val.afterToday,
	}
	for tag, fn := range rules {
		if err := val.v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validator %q: %v", tag, err))
		}
	}

	return val
}

var std = New()

// Struct validates s with the default validator.
func Struct(s any) FieldErrors {
	return std.Struct(s)
}

// Struct returns nil when s is valid.
func (val *Validator) Struct(s any) FieldErrors {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_": "The given data was invalid."}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(fe)
	}
	return out
}

// afterToday accepts a YYYY-MM-DD string strictly after the current UTC date.
func (val *Validator) afterToday(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	today := val.now().UTC().Truncate(24 * time.Hour)
	return d.After(today)
}

func message(fe validator.FieldError) string {
	name := strings.ReplaceAll(fe.Field(), "_", " ")
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return fmt.Sprintf("The %s field is required.", name)
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", name, fe.Param())
	case "gte", "min":
		if isString {
			return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "lte", "max":
		if isString {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "datetime":
		return fmt.Sprintf("The %s field must be a valid date.", name)
	case "after_today":
		return fmt.Sprintf("The %s field must be a date after today.", name)
	case "eqfield":
		return fmt.Sprintf("The %s field confirmation does not match.", strings.TrimSuffix(name, " confirmation"))
	case "uuid":
		return fmt.Sprintf("The %s field must be a valid UUID.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}
