package models

import "time"

// Habit represents a recurring practice to track
type Habit struct {
	UUID         string     `json:"uuid"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	TargetValue  *int       `json:"target_value,omitempty"`
	TargetUnit   string     `json:"target_unit,omitempty"`
	ActiveDays   ActiveDays `json:"active_days"`
	ReminderTime string     `json:"reminder_time,omitempty"` // HH:MM, empty = no reminder
	Active       bool       `json:"is_active"`
	DueDate      string     `json:"due_date,omitempty"` // YYYY-MM-DD, empty = no due date
	CreatedAt    time.Time  `json:"created_at"`
	CategoryUUID string     `json:"category_uuid,omitempty"` // empty = uncategorized
}

// HasTarget reports whether the habit carries a complete target. Value and
// unit only mean something together.
func (h Habit) HasTarget() bool {
	return h.TargetValue != nil && h.TargetUnit != ""
}

// Category is a user-defined grouping label for habits
type Category struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DefaultCategoryIcon is assigned when a category is created without one.
const DefaultCategoryIcon = "circle"

// HabitWithCategory is a habit joined with its category metadata. Category
// is nil for uncategorized habits.
type HabitWithCategory struct {
	Habit
	Category *Category `json:"category,omitempty"`
}

// CategoryStats summarizes habit counts for one category.
type CategoryStats struct {
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	TotalHabits    int    `json:"total_habits"`
	ActiveHabits   int    `json:"active_habits"`
	InactiveHabits int    `json:"inactive_habits"`
}

// HabitUpdate is a partial-field habit mutation. Nil fields are left
// untouched; an update with no fields set is rejected by storage.
type HabitUpdate struct {
	Title        *string
	Description  *string
	TargetValue  *int
	TargetUnit   *string
	ActiveDays   *ActiveDays
	ReminderTime *string
	Active       *bool
	DueDate      *string
	CategoryUUID *string
}

// Empty reports whether the update would change nothing.
func (u HabitUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.TargetValue == nil &&
		u.TargetUnit == nil && u.ActiveDays == nil && u.ReminderTime == nil &&
		u.Active == nil && u.DueDate == nil && u.CategoryUUID == nil
}
