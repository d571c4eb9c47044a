package schema

import (
	"fmt"
	"maps"
	"slices"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/utils"
)

// CheckDefinition reports problems with a tenant-supplied schema: blank or
// duplicate field names, unknown types and inverted bounds.
func CheckDefinition(key string, s entity.ReservationTypeSchema) []string {
	var errs []string

	if msg := utils.FirstValidationError(s); msg != "" {
		errs = append(errs, fmt.Sprintf("schema '%s': %s", key, msg))
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, field := range s.Fields {
		if field.Name == "" {
			continue
		}
		if seen[field.Name] {
			errs = append(errs, fmt.Sprintf("schema '%s': duplicate field '%s'", key, field.Name))
		}
		seen[field.Name] = true

		if !field.Type.Valid() {
			errs = append(errs, fmt.Sprintf("schema '%s': field '%s' has unknown type '%s'", key, field.Name, field.Type))
		}
		if field.Min != nil && field.Max != nil && *field.Min > *field.Max {
			errs = append(errs, fmt.Sprintf("schema '%s': field '%s' has min greater than max", key, field.Name))
		}
	}

	return errs
}

// CheckConfig runs CheckDefinition over every reservation type in key order.
func CheckConfig(config entity.SchemaConfig) []string {
	var errs []string
	for _, key := range slices.Sorted(maps.Keys(config)) {
		s := config[key]
		if key == "" {
			errs = append(errs, "schema key must not be empty")
			continue
		}
		errs = append(errs, CheckDefinition(key, s)...)
	}
	return errs
}
