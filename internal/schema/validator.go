// Package schema checks reservation detail payloads against a tenant's
// reservation-type schema.
package schema

import (
	"fmt"
	"slices"
	"strings"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/utils"
)

type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Message joins all errors into one line.
func (r Result) Message() string {
	return strings.Join(r.Errors, ", ")
}

// Validate checks details field by field in schema order and collects every
// error. Keys not declared in the schema are ignored.
func Validate(details map[string]any, s entity.ReservationTypeSchema) Result {
	var errs []string

	for _, field := range s.Fields {
		value, present := details[field.Name]
		if !hasValue(value, present) {
			if field.Required {
				errs = append(errs, fmt.Sprintf("Field '%s' is required", field.Name))
			}
			continue
		}

		fieldErrs := checkType(field, value)
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}

		if len(field.Options) > 0 {
			errs = append(errs, checkOptions(field, value)...)
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func hasValue(value any, present bool) bool {
	if !present || value == nil {
		return false
	}
	if s, ok := value.(string); ok && s == "" {
		return false
	}
	return true
}

func checkType(field entity.SchemaFieldDefinition, value any) []string {
	mismatch := []string{fmt.Sprintf("Field '%s' must be a %s", field.Name, field.Type)}

	switch field.Type {
	case entity.FieldTypeString:
		if _, ok := value.(string); !ok {
			return mismatch
		}
	case entity.FieldTypeBoolean:
		if _, ok := value.(bool); !ok {
			return mismatch
		}
	case entity.FieldTypeNumber:
		n, ok := toFloat(value)
		if !ok {
			return mismatch
		}
		var errs []string
		if field.Min != nil && n < *field.Min {
			errs = append(errs, fmt.Sprintf("Field '%s' must be at least %s", field.Name, utils.FormatNumber(*field.Min)))
		}
		if field.Max != nil && n > *field.Max {
			errs = append(errs, fmt.Sprintf("Field '%s' must be at most %s", field.Name, utils.FormatNumber(*field.Max)))
		}
		return errs
	case entity.FieldTypeArray:
		if _, ok := toSlice(value); !ok {
			return mismatch
		}
	case entity.FieldTypeObject:
		if _, ok := value.(map[string]any); !ok {
			return mismatch
		}
	default:
		return []string{fmt.Sprintf("Field '%s' has unsupported type %q", field.Name, field.Type)}
	}
	return nil
}

func checkOptions(field entity.SchemaFieldDefinition, value any) []string {
	if field.Type == entity.FieldTypeArray {
		items, _ := toSlice(value)
		var errs []string
		for _, item := range items {
			if v := stringify(item); !slices.Contains(field.Options, v) {
				errs = append(errs, fmt.Sprintf("Field '%s' contains invalid option '%s'", field.Name, v))
			}
		}
		return errs
	}

	if !slices.Contains(field.Options, stringify(value)) {
		return []string{fmt.Sprintf("Field '%s' must be one of: %s", field.Name, strings.Join(field.Options, ", "))}
	}
	return nil
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func stringify(value any) string {
	if n, ok := toFloat(value); ok {
		return utils.FormatNumber(n)
	}
	return fmt.Sprint(value)
}
