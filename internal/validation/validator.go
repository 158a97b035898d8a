// Package validation parses and checks what a person types at Kara's prompts.
package validation

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field names used in FieldErrors.
const (
	FieldTaskID      = "task_id"
	FieldHours       = "hours"
	FieldPersonName  = "person_name"
	FieldDescription = "task_description"
	FieldRole        = "role"
)

// Column limits of the ProjectTasks table.
const (
	MaxPersonNameLength  = 100
	MaxDescriptionLength = 1000
)

// ParseTaskID parses a task identifier typed at the prompt.
func ParseTaskID(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		ve := NewValidationError()
		ve.AddInvalidFormatError(FieldTaskID, input, "a whole number")
		return 0, ve
	}
	if id <= 0 {
		ve := NewValidationError()
		ve.AddInvalidRangeError(FieldTaskID, id, "must be positive")
		return 0, ve
	}
	return id, nil
}

// ParseHours parses logged hours as a decimal number. Hexadecimal floats, NaN
// and infinities are treated as non-numeric; negative values are out of range.
func ParseHours(input string) (float64, error) {
	trimmed := strings.TrimSpace(input)
	hours, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || isHexFloat(trimmed) || math.IsNaN(hours) || math.IsInf(hours, 0) {
		ve := NewValidationError()
		ve.AddInvalidFormatError(FieldHours, input, "a number")
		return 0, ve
	}
	if hours < 0 {
		ve := NewValidationError()
		ve.AddInvalidRangeError(FieldHours, hours, "must not be negative")
		return 0, ve
	}
	return hours, nil
}

func isHexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// ParseRole normalises the role typed at the first prompt.
func ParseRole(input string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(input))
	switch role {
	case "admin", "employee":
		return role, nil
	}
	ve := NewValidationError()
	ve.AddInvalidFormatError(FieldRole, input, "admin or employee")
	return "", ve
}

func checkText(ve *ValidationError, field, value string, max int, required bool) {
	if required && value == "" {
		ve.AddRequiredError(field)
		return
	}
	if utf8.RuneCountInString(value) > max {
		ve.AddInvalidLengthError(field, value, max)
	}
}
