// Package inputval validates operator-supplied settings using waffle/pantry/validate.
//
// Define an input struct with validate tags, populate it, and call Validate
// to get readable error messages.
//
// Example:
//
//	type settingsInput struct {
//	    Storage    string `validate:"required,oneof=local s3" label:"Portfolio storage"`
//	    ChartColor string `validate:"required,hexcolor" label:"Chart color"`
//	}
//
//	if res := inputval.Validate(in); res.HasErrors() {
//	    return errors.New(res.All())
//	}
package inputval

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dalemusser/waffle/pantry/validate"
)

// Result holds validation results with user-friendly messages.
type Result struct {
	Errors []FieldError
}

// FieldError represents a validation error for a single field.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or empty string if no errors.
func (r *Result) First() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	return ""
}

// All returns all error messages joined with "; ".
func (r *Result) All() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

var (
	customValidator *validate.Validator
	validatorOnce   sync.Once
)

func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		// All errors are collected so a bad config is reported in one go.
		customValidator = validate.New()

		customValidator.RegisterRuleFunc("hexcolor", func(value any) bool {
			if s, ok := value.(string); ok {
				return IsHexColor(s)
			}
			return false
		}, "hexcolor")

		customValidator.RegisterRuleFunc("keyprefix", func(value any) bool {
			if s, ok := value.(string); ok {
				return IsKeyPrefix(s)
			}
			return false
		}, "keyprefix")
	})
	return customValidator
}

// Validate validates a struct and returns a Result with user-friendly errors.
// The struct should have `validate` tags for rules and optional `label` tags
// for field names in messages.
//
// Besides the pantry/validate rules (required, oneof, timezone, min, max)
// two rules are registered here:
//   - hexcolor: a #rrggbb color
//   - keyprefix: an object key prefix that does not start with "/"
func Validate(s any) *Result {
	result := &Result{}

	err := getValidator().Struct(s)
	if err == nil {
		return result
	}

	labels := getFieldLabels(s)

	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			label := labels[e.Field]
			if label == "" {
				label = e.Field
			}
			result.Errors = append(result.Errors, FieldError{
				Field:   e.Field,
				Label:   label,
				Message: formatMessage(label, e.Rule, e.Param),
			})
		}
	}

	return result
}

// getFieldLabels extracts the "label" tag from struct fields.
func getFieldLabels(s any) map[string]string {
	labels := make(map[string]string)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return labels
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		fieldName := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" && parts[0] != "-" {
				fieldName = parts[0]
			}
		}

		if label := field.Tag.Get("label"); label != "" {
			labels[fieldName] = label
		}
	}

	return labels
}

func formatMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "oneof", "enum":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "timezone":
		return label + " must be a valid time zone."
	case "hexcolor":
		return label + " must be a color like #1f77b4."
	case "keyprefix":
		return label + " must not start with a slash."
	default:
		return label + " is invalid."
	}
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsHexColor reports whether s is a #rrggbb color.
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// IsKeyPrefix reports whether s can be used as an S3 key prefix.
// The empty prefix is valid and means the bucket root.
func IsKeyPrefix(s string) bool {
	return !strings.HasPrefix(s, "/")
}
