package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/field-service-api/internal/httperr"
)

var setupOnce sync.Once

// Setup makes gin's validator report JSON field names and registers the
// custom tags used by request structs. It panics when a tag cannot be
// registered, so a broken binding fails at startup instead of per request.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := register(v); err != nil {
			panic(fmt.Sprintf("validators: %v", err))
		}
	})
}

func register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	if err := v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		return isDay(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register day: %w", err)
	}
	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsClock(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register hhmm: %w", err)
	}
	return nil
}

// Issues converts a binding error into field-level validation issues.
func Issues(err error) []httperr.Issue {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]httperr.Issue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, httperr.Issue{
				Code:    issueCode(fe.Tag()),
				Path:    fieldPath(fe.Namespace()),
				Message: issueMessage(fe),
			})
		}
		return issues
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []httperr.Issue{{
			Code:    "invalid_type",
			Path:    strings.Split(typeErr.Field, "."),
			Message: fmt.Sprintf("Expected %s, received %s", typeErr.Type.String(), typeErr.Value),
		}}
	}

	return []httperr.Issue{{
		Code:    "invalid_body",
		Path:    []string{},
		Message: err.Error(),
	}}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) []string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		return parts[1:]
	}
	return parts
}

func issueCode(tag string) string {
	switch tag {
	case "required":
		return "invalid_type"
	case "oneof":
		return "invalid_enum_value"
	case "min", "gt", "gte":
		return "too_small"
	case "max", "lt", "lte":
		return "too_big"
	case "email", "day", "hhmm", "url":
		return "invalid_string"
	}
	return "custom"
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "oneof":
		return fmt.Sprintf("Expected one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "email":
		return "Invalid email"
	case "day":
		return "Invalid date, expected YYYY-MM-DD or an ISO timestamp"
	case "hhmm":
		return "Invalid time, expected HH:MM"
	}
	return fmt.Sprintf("Failed %s validation", fe.Tag())
}
