package customvalidator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"machinery-registry/pkg/constants"
)

// RegisterCustomValidations registers the domain rules and makes validation
// errors report json field names.
func RegisterCustomValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("date_ymd", isDateYMD); err != nil {
		return err
	}
	if err := v.RegisterValidation("project_status", oneOf(constants.ProjectStatuses)); err != nil {
		return err
	}
	if err := v.RegisterValidation("machinery_status", oneOf(constants.MachineryStatuses)); err != nil {
		return err
	}
	if err := v.RegisterValidation("assignment_status", oneOf(constants.AssignmentStatuses)); err != nil {
		return err
	}
	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

func isDateYMD(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(constants.DateLayout, s)
	return err == nil
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}
