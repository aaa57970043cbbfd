// Package validation checks request bodies against their `validate` tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"visitor-backend/internal/models"
)

var validate = newValidator()

var layoutHints = map[string]string{
	"2006-01-02": "YYYY-MM-DD",
	"15:04":      "HH:MM",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Errors name fields by their JSON key.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("shift", oneOf(models.ShiftSchedules)); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("purpose", oneOf(models.VisitPurposes)); err != nil {
		panic(err)
	}
	return v
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// Struct validates v and describes the first failing field in a message
// fit for the client, such as "email is not valid".
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "datetime":
		if hint, ok := layoutHints[fe.Param()]; ok {
			return fmt.Errorf("%s must be %s", field, hint)
		}
	}
	return fmt.Errorf("%s is not valid", field)
}
