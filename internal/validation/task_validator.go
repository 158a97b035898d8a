package validation

import (
	"math"
	"strings"

	"kara/internal/domain"
)

// TaskUpdateValidator checks an employee's update before it reaches the database.
type TaskUpdateValidator struct{}

// NewTaskUpdateValidator creates a new validator
func NewTaskUpdateValidator() *TaskUpdateValidator {
	return &TaskUpdateValidator{}
}

// ValidatePersonName checks the name typed at the employee prompt.
func (v *TaskUpdateValidator) ValidatePersonName(name string) error {
	ve := NewValidationError()
	checkText(ve, FieldPersonName, strings.TrimSpace(name), MaxPersonNameLength, true)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateDescription checks a task description. An empty description is allowed.
func (v *TaskUpdateValidator) ValidateDescription(description string) error {
	ve := NewValidationError()
	checkText(ve, FieldDescription, strings.TrimSpace(description), MaxDescriptionLength, false)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Validate checks every field of an update and trims its text fields.
func (v *TaskUpdateValidator) Validate(update domain.TaskUpdate) (domain.TaskUpdate, error) {
	ve := NewValidationError()

	update.PersonName = strings.TrimSpace(update.PersonName)
	update.Description = strings.TrimSpace(update.Description)

	if update.ID <= 0 {
		ve.AddInvalidRangeError(FieldTaskID, update.ID, "must be positive")
	}
	if update.Hours < 0 || math.IsNaN(update.Hours) || math.IsInf(update.Hours, 0) {
		ve.AddInvalidRangeError(FieldHours, update.Hours, "must not be negative")
	}
	checkText(ve, FieldPersonName, update.PersonName, MaxPersonNameLength, true)
	checkText(ve, FieldDescription, update.Description, MaxDescriptionLength, false)

	if ve.HasErrors() {
		return update, ve
	}
	return update, nil
}
