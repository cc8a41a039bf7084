package validation

import (
	"testing"
	"time"

	"github.com/julianstephens/flowtrack/internal/models"
)

var now = time.Date(2025, 12, 29, 12, 0, 0, 0, time.Local)

func validHabit() models.Habit {
	return models.Habit{
		UUID:       "habit-1",
		Title:      "Meditate",
		ActiveDays: models.EveryDay(),
		Active:     true,
		CreatedAt:  now,
	}
}

func TestValidateHabit_Valid(t *testing.T) {
	validator := New()
	target := 10
	h := validHabit()
	h.ReminderTime = "07:30"
	h.DueDate = "2026-06-01"
	h.TargetValue = &target
	h.TargetUnit = "minutes"

	if errs := validator.ValidateHabit(h, now); errs.Any() {
		t.Errorf("expected no errors, got: %s", errs.FormatReport())
	}
}

func TestValidateHabit_EmptyTitle(t *testing.T) {
	validator := New()
	h := validHabit()
	h.Title = "   "

	errs := validator.ValidateHabit(h, now)
	if _, ok := errs["title"]; !ok {
		t.Errorf("expected title error, got: %v", errs)
	}
}

func TestValidateHabit_BadReminderTime(t *testing.T) {
	validator := New()
	for _, bad := range []string{"25:00", "12:70", "8am", "not-a-time"} {
		h := validHabit()
		h.ReminderTime = bad
		errs := validator.ValidateHabit(h, now)
		if _, ok := errs["reminder_time"]; !ok {
			t.Errorf("expected reminder_time error for %q", bad)
		}
	}
}

func TestValidateHabit_DueDate(t *testing.T) {
	validator := New()

	h := validHabit()
	h.DueDate = "2025-12-28" // yesterday
	errs := validator.ValidateHabit(h, now)
	if _, ok := errs["due_date"]; !ok {
		t.Error("expected due_date error for past date")
	}

	h.DueDate = "2025-12-29" // today is allowed
	if errs := validator.ValidateHabit(h, now); errs.Any() {
		t.Errorf("today's date rejected: %s", errs.FormatReport())
	}

	h.DueDate = "12/29/2025"
	errs = validator.ValidateHabit(h, now)
	if _, ok := errs["due_date"]; !ok {
		t.Error("expected due_date error for malformed date")
	}
}

func TestValidateHabit_TargetPairing(t *testing.T) {
	validator := New()
	target := 8
	zero := 0

	cases := []struct {
		name  string
		value *int
		unit  string
		bad   bool
	}{
		{"both set", &target, "glasses", false},
		{"neither set", nil, "", false},
		{"value only", &target, "", true},
		{"unit only", nil, "glasses", true},
		{"non-positive value", &zero, "glasses", true},
	}
	for _, c := range cases {
		h := validHabit()
		h.TargetValue = c.value
		h.TargetUnit = c.unit
		errs := validator.ValidateHabit(h, now)
		if _, ok := errs["target"]; ok != c.bad {
			t.Errorf("%s: target error = %v, want %v", c.name, ok, c.bad)
		}
	}
}

func TestValidateHabit_EmptyDays(t *testing.T) {
	validator := New()
	h := validHabit()
	h.ActiveDays = models.ActiveDays{}
	errs := validator.ValidateHabit(h, now)
	if _, ok := errs["active_days"]; !ok {
		t.Error("expected active_days error for empty set")
	}
}

func TestValidateUpdate_Empty(t *testing.T) {
	validator := New()
	errs := validator.ValidateUpdate(models.HabitUpdate{}, now)
	if _, ok := errs["update"]; !ok {
		t.Error("expected empty update to be rejected")
	}
}

func TestValidateUpdate_PartialTarget(t *testing.T) {
	validator := New()
	target := 8

	errs := validator.ValidateUpdate(models.HabitUpdate{TargetValue: &target}, now)
	if _, ok := errs["target"]; !ok {
		t.Error("expected error when only target value is updated")
	}

	unit := "glasses"
	errs = validator.ValidateUpdate(models.HabitUpdate{TargetValue: &target, TargetUnit: &unit}, now)
	if errs.Any() {
		t.Errorf("expected paired target update to pass, got: %s", errs.FormatReport())
	}
}

func TestValidateUpdate_ClearReminderAllowed(t *testing.T) {
	validator := New()
	empty := ""
	errs := validator.ValidateUpdate(models.HabitUpdate{ReminderTime: &empty}, now)
	if errs.Any() {
		t.Errorf("clearing the reminder should be valid, got: %s", errs.FormatReport())
	}
}

func TestValidateCategory(t *testing.T) {
	validator := New()
	if errs := validator.ValidateCategory(models.Category{Name: "Health"}); errs.Any() {
		t.Errorf("expected no errors, got: %s", errs.FormatReport())
	}
	errs := validator.ValidateCategory(models.Category{Name: " "})
	if _, ok := errs["name"]; !ok {
		t.Error("expected name error for blank category name")
	}
}
