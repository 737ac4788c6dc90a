package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/kbukum/schoolauth/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names as they appear on the wire, not as Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate checks the struct's validate tags and converts any failure into a
// VALIDATION_ERROR carrying per-field details.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation("Invalid request")
	}

	details := make(map[string]any, len(verrs))
	var fields []string
	for _, fe := range verrs {
		details[fe.Field()] = describeFailure(fe)
		if fe.Tag() == "required" {
			fields = append(fields, fe.Field())
		}
	}

	if len(fields) == len(verrs) {
		return apperrors.MissingFields(fields...).WithDetails(details)
	}
	return apperrors.Validation("Request validation failed").WithDetails(details)
}

func describeFailure(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
