package validation

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	errors "github.com/hrkit/hr-management/internal"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
)

type ValidatorFunc func(interface{}) *errors.ValidationError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{fields: make([]FieldValidator, 0)}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) fail(message string) *errors.ValidationError {
	return &errors.ValidationError{Path: fv.FieldName, Message: message}
}

// asString unwraps string and *string values; ok is false for nil pointers.
func asString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if s, ok := asString(value); !ok || s == "" {
			return fv.fail(fmt.Sprintf("%s is required", fv.FieldName))
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if s, ok := asString(value); ok && s != "" && len(s) < min {
			return fv.fail(fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min))
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if s, ok := asString(value); ok && len(s) > max {
			return fv.fail(fmt.Sprintf("%s cannot exceed %d characters", fv.FieldName, max))
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Email() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if s, ok := asString(value); ok && s != "" && !emailPattern.MatchString(s) {
			return fv.fail("Must be a valid email")
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) UUID() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if s, ok := asString(value); ok && s != "" {
			if _, err := uuid.Parse(s); err != nil {
				return fv.fail(fmt.Sprintf("%s must be a valid UUID", fv.FieldName))
			}
		}
		return nil
	})
	return fv
}

// DateFormat enforces YYYY-MM-DD.
func (fv *FieldValidator) DateFormat() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if s, ok := asString(value); ok && s != "" && !datePattern.MatchString(s) {
			return fv.fail(fmt.Sprintf("%s must be in YYYY-MM-DD format", fv.FieldName))
		}
		return nil
	})
	return fv
}

// TimeFormat enforces HH:MM with optional :SS.
func (fv *FieldValidator) TimeFormat() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if s, ok := asString(value); ok && s != "" && !timePattern.MatchString(s) {
			return fv.fail(fmt.Sprintf("%s must be in HH:MM or HH:MM:SS format", fv.FieldName))
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		s, ok := asString(value)
		if !ok || s == "" {
			return nil
		}
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fv.fail(fmt.Sprintf("%s must be one of: %v", fv.FieldName, allowed))
	})
	return fv
}

func (fv *FieldValidator) MinFloat(min float64) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		switch v := value.(type) {
		case float64:
			if v < min {
				return fv.fail(fmt.Sprintf("%s must be greater than or equal to %g", fv.FieldName, min))
			}
		case *float64:
			if v != nil && *v < min {
				return fv.fail(fmt.Sprintf("%s must be greater than or equal to %g", fv.FieldName, min))
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator ValidatorFunc) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every field rule and collects failures into one
// validation AppError, or returns nil when everything passes.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				validationErrors = append(validationErrors, *err)
			}
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationErrors(validationErrors)
	}

	return nil
}
