package schema

import (
	"encoding/json"
	"testing"

	"tenant-booking/internal/data/entity"

	"github.com/google/go-cmp/cmp"
)

func ptr(f float64) *float64 { return &f }

func meetingSchema() entity.ReservationTypeSchema {
	return entity.ReservationTypeSchema{
		Fields: []entity.SchemaFieldDefinition{
			{Name: "title", Type: entity.FieldTypeString, Required: true},
			{Name: "attendees", Type: entity.FieldTypeNumber, Min: ptr(1), Max: ptr(20)},
			{Name: "room", Type: entity.FieldTypeString, Options: []string{"red", "blue"}},
			{Name: "equipment", Type: entity.FieldTypeArray, Options: []string{"projector", "whiteboard"}},
			{Name: "seats", Type: entity.FieldTypeNumber, Options: []string{"2", "4", "8"}},
			{Name: "remote", Type: entity.FieldTypeBoolean},
			{Name: "extra", Type: entity.FieldTypeObject},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		details map[string]any
		want    []string
	}{
		{
			name:    "minimal valid",
			details: map[string]any{"title": "Standup"},
		},
		{
			name: "all fields valid",
			details: map[string]any{
				"title":     "Planning",
				"attendees": float64(20),
				"room":      "red",
				"equipment": []any{"projector", "whiteboard"},
				"seats":     4,
				"remote":    false,
				"extra":     map[string]any{"a": 1},
			},
		},
		{
			name:    "missing required",
			details: map[string]any{},
			want:    []string{"Field 'title' is required"},
		},
		{
			name:    "empty string counts as missing",
			details: map[string]any{"title": ""},
			want:    []string{"Field 'title' is required"},
		},
		{
			name:    "nil counts as missing",
			details: map[string]any{"title": nil, "attendees": nil},
			want:    []string{"Field 'title' is required"},
		},
		{
			name:    "wrong types",
			details: map[string]any{"title": 5, "attendees": "many", "remote": "yes", "extra": []any{}},
			want: []string{
				"Field 'title' must be a string",
				"Field 'attendees' must be a number",
				"Field 'remote' must be a boolean",
				"Field 'extra' must be a object",
			},
		},
		{
			name:    "below min",
			details: map[string]any{"title": "x", "attendees": 0.5},
			want:    []string{"Field 'attendees' must be at least 1"},
		},
		{
			name:    "above max",
			details: map[string]any{"title": "x", "attendees": 21},
			want:    []string{"Field 'attendees' must be at most 20"},
		},
		{
			name:    "scalar option",
			details: map[string]any{"title": "x", "room": "green", "seats": 3},
			want: []string{
				"Field 'room' must be one of: red, blue",
				"Field 'seats' must be one of: 2, 4, 8",
			},
		},
		{
			name:    "array options report each offender",
			details: map[string]any{"title": "x", "equipment": []any{"projector", "tv", 7}},
			want: []string{
				"Field 'equipment' contains invalid option 'tv'",
				"Field 'equipment' contains invalid option '7'",
			},
		},
		{
			name:    "array type mismatch skips options",
			details: map[string]any{"title": "x", "equipment": "projector"},
			want:    []string{"Field 'equipment' must be a array"},
		},
		{
			name:    "unknown keys ignored",
			details: map[string]any{"title": "x", "legacyRef": 42},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.details, meetingSchema())
			if diff := cmp.Diff(tt.want, got.Errors); diff != "" {
				t.Errorf("Validate() errors mismatch (-want +got):\n%s", diff)
			}
			if got.Valid != (len(tt.want) == 0) {
				t.Errorf("Validate() valid = %v, want %v", got.Valid, len(tt.want) == 0)
			}
		})
	}
}

func TestValidateDecodedJSON(t *testing.T) {
	var details map[string]any
	if err := json.Unmarshal([]byte(`{"title":"Standup","attendees":3,"equipment":["projector"]}`), &details); err != nil {
		t.Fatal(err)
	}

	if got := Validate(details, meetingSchema()); !got.Valid {
		t.Fatalf("Validate() = %v, want valid", got.Errors)
	}
}

func TestValidateIsPure(t *testing.T) {
	details := map[string]any{"attendees": 99, "room": "green"}
	first := Validate(details, meetingSchema())
	second := Validate(details, meetingSchema())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Validate() differs (-first +second):\n%s", diff)
	}
	if got, want := first.Message(), "Field 'title' is required, Field 'attendees' must be at most 20, Field 'room' must be one of: red, blue"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestCheckConfig(t *testing.T) {
	config := entity.SchemaConfig{
		"meeting": meetingSchema(),
		"broken": {
			Fields: []entity.SchemaFieldDefinition{
				{Name: "a", Type: entity.FieldTypeString},
				{Name: "a", Type: entity.FieldTypeNumber, Min: ptr(5), Max: ptr(1)},
			},
		},
	}

	want := []string{
		"schema 'broken': duplicate field 'a'",
		"schema 'broken': field 'a' has min greater than max",
	}
	if diff := cmp.Diff(want, CheckConfig(config)); diff != "" {
		t.Errorf("CheckConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckDefinitionUnknownType(t *testing.T) {
	s := entity.ReservationTypeSchema{
		Fields: []entity.SchemaFieldDefinition{{Name: "when", Type: "date"}},
	}

	errs := CheckDefinition("event", s)
	if len(errs) != 2 {
		t.Fatalf("CheckDefinition() = %v, want tag error and unknown type", errs)
	}
	if want := "schema 'event': field 'when' has unknown type 'date'"; errs[1] != want {
		t.Errorf("errs[1] = %q, want %q", errs[1], want)
	}
}
