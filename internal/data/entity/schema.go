package entity

// FieldType is the closed set of value kinds a reservation detail field may declare.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeBoolean, FieldTypeArray, FieldTypeObject:
		return true
	}
	return false
}

// SchemaFieldDefinition describes one key of a reservation's details map.
// Label and Placeholder are presentation-only and never validated.
type SchemaFieldDefinition struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Type        FieldType `json:"type" validate:"required,oneof=string number boolean array object"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Label       string    `json:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

type ReservationTypeSchema struct {
	Fields           []SchemaFieldDefinition `json:"fields" validate:"dive"`
	RequiresApproval bool                    `json:"requiresApproval"`
	DisplayName      string                  `json:"displayName,omitempty"`
	Description      string                  `json:"description,omitempty"`
}

// SchemaConfig maps a reservation-type key to its schema.
type SchemaConfig map[string]ReservationTypeSchema
