package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/flowtrack/internal/constants"
	"github.com/julianstephens/flowtrack/internal/models"
)

// Errors maps field names to human-readable problems.
type Errors map[string]string

// Any reports whether at least one field failed.
func (e Errors) Any() bool {
	return len(e) > 0
}

// FormatReport returns a human-readable report of all field errors.
func (e Errors) FormatReport() string {
	if !e.Any() {
		return "No validation errors."
	}
	var b strings.Builder
	b.WriteString("Validation errors:\n")
	for field, msg := range e {
		fmt.Fprintf(&b, "- %s: %s\n", field, msg)
	}
	return b.String()
}

// Validator checks habit and category input before it reaches storage.
// Scheduling itself never validates; anything that passes here is safe to
// classify.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabit checks a complete habit, e.g. at creation time. The due
// date is compared against now's calendar date.
func (v *Validator) ValidateHabit(h models.Habit, now time.Time) Errors {
	errs := Errors{}

	if strings.TrimSpace(h.Title) == "" {
		errs["title"] = "title is required"
	}
	if h.ReminderTime != "" && !models.ValidClock(h.ReminderTime) {
		errs["reminder_time"] = fmt.Sprintf("invalid time %q, expected HH:MM", h.ReminderTime)
	}
	if h.DueDate != "" {
		checkDueDate(errs, h.DueDate, now)
	}
	checkTarget(errs, h.TargetValue, h.TargetUnit)
	if len(h.ActiveDays) == 0 {
		errs["active_days"] = "choose at least one day"
	}

	return errs
}

// ValidateUpdate checks the supplied fields of a partial update. An update
// with no fields at all is itself an error.
func (v *Validator) ValidateUpdate(u models.HabitUpdate, now time.Time) Errors {
	errs := Errors{}

	if u.Empty() {
		errs["update"] = "no fields provided for update"
		return errs
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs["title"] = "title is required"
	}
	if u.ReminderTime != nil && *u.ReminderTime != "" && !models.ValidClock(*u.ReminderTime) {
		errs["reminder_time"] = fmt.Sprintf("invalid time %q, expected HH:MM", *u.ReminderTime)
	}
	if u.DueDate != nil && *u.DueDate != "" {
		checkDueDate(errs, *u.DueDate, now)
	}
	if u.TargetValue != nil || u.TargetUnit != nil {
		// A partial update may not leave the pair half-set.
		if u.TargetValue == nil || u.TargetUnit == nil {
			errs["target"] = "target value and unit must be updated together"
		} else {
			checkTarget(errs, u.TargetValue, *u.TargetUnit)
		}
	}
	if u.ActiveDays != nil && len(*u.ActiveDays) == 0 {
		errs["active_days"] = "choose at least one day"
	}

	return errs
}

// ValidateCategory checks category input.
func (v *Validator) ValidateCategory(c models.Category) Errors {
	errs := Errors{}
	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = "name is required"
	}
	return errs
}

func checkDueDate(errs Errors, due string, now time.Time) {
	d, err := time.ParseInLocation(constants.DateLayout, due, now.Location())
	if err != nil {
		errs["due_date"] = fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", due)
		return
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		errs["due_date"] = "due date is in the past"
	}
}

func checkTarget(errs Errors, value *int, unit string) {
	switch {
	case value != nil && unit == "":
		errs["target"] = "target unit is required when a target value is set"
	case value == nil && unit != "":
		errs["target"] = "target value is required when a target unit is set"
	case value != nil && *value <= 0:
		errs["target"] = "target value must be positive"
	}
}
