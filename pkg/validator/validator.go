package validator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go-commerce-api/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	phoneStrip   = regexp.MustCompile(`[\s\-()]`)
)

func init() {
	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})

	// Optional-field formats: empty values pass, present values must match.
	validate.RegisterValidation("phone_format", func(fl validator.FieldLevel) bool {
		return Phone(fl.Field().String()) == nil
	})
	validate.RegisterValidation("email_format", func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String()) == nil
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// FirstError converts the first struct-validation failure into a
// ValidationError, or returns nil when the struct is valid.
func FirstError(data interface{}) error {
	if errs := ValidateStruct(data); len(errs) > 0 {
		first := errs[0]
		return apperr.NewValidation(first.FailedField, first.Tag,
			"validation failed: field '%s' failed on rule '%s'", first.FailedField, first.Tag)
	}
	return nil
}

// Float and Int wrap literals for the optional range bounds below.
func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }

// Required fails when value is nil, an empty/whitespace-only string, or a
// nil UUID.
func Required(value interface{}, field string) error {
	switch v := value.(type) {
	case nil:
		return apperr.NewValidation(field, apperr.RuleRequired, "%s is required", field)
	case string:
		if strings.TrimSpace(v) == "" {
			return apperr.NewValidation(field, apperr.RuleRequired, "%s is required", field)
		}
	case uuid.UUID:
		if v == uuid.Nil {
			return apperr.NewValidation(field, apperr.RuleRequired, "%s is required", field)
		}
	case *uuid.UUID:
		if v == nil || *v == uuid.Nil {
			return apperr.NewValidation(field, apperr.RuleRequired, "%s is required", field)
		}
	}
	return nil
}

// Numeric coerces value to a float64 and checks the optional [min, max]
// range. String inputs are accepted so callers can pass raw form values.
func Numeric(value interface{}, field string, min, max *float64) (float64, error) {
	num, ok := toFloat(value)
	if !ok {
		return 0, apperr.NewValidation(field, apperr.RuleNumeric, "%s must be a numeric value", field)
	}
	if min != nil && num < *min {
		return 0, apperr.NewValidation(field, apperr.RuleRange, "%s must be greater than or equal to %v", field, *min)
	}
	if max != nil && num > *max {
		return 0, apperr.NewValidation(field, apperr.RuleRange, "%s must be less than or equal to %v", field, *max)
	}
	return num, nil
}

// Integer is Numeric plus a whole-number check.
func Integer(value interface{}, field string, min, max *int) (int, error) {
	num, ok := toFloat(value)
	if !ok || num != math.Trunc(num) {
		return 0, apperr.NewValidation(field, apperr.RuleInteger, "%s must be a whole number", field)
	}
	n := int(num)
	if min != nil && n < *min {
		return 0, apperr.NewValidation(field, apperr.RuleRange, "%s must be greater than or equal to %d", field, *min)
	}
	if max != nil && n > *max {
		return 0, apperr.NewValidation(field, apperr.RuleRange, "%s must be less than or equal to %d", field, *max)
	}
	return n, nil
}

// Email accepts empty values (optional field); anything else must look
// like local@domain.tld.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return apperr.NewValidation("email", apperr.RuleEmail, "invalid email format: %q", email)
	}
	return nil
}

// Phone accepts empty values. Present values are stripped of spaces,
// hyphens and parentheses, then must be an optional '+' followed by 8-15
// digits.
func Phone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return nil
	}
	clean := phoneStrip.ReplaceAllString(phone, "")
	if !phonePattern.MatchString(clean) {
		return apperr.NewValidation("phone", apperr.RulePhone, "invalid phone number format: %q", phone)
	}
	return nil
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		num, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return num, true
	case fmt.Stringer:
		num, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, false
		}
		return num, true
	default:
		return 0, false
	}
}
