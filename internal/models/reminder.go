package models

import "time"

// Bucket classifies a habit's next reminder relative to now.
type Bucket string

const (
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketLater    Bucket = "later"
)

// ReminderCandidate is a display-ready projection of a habit selected for
// the upcoming-reminders list.
type ReminderCandidate struct {
	UUID         string    `json:"uuid"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	TargetText   string    `json:"target_text,omitempty"` // "{value} {unit}", empty when no target
	CategoryName string    `json:"category_name,omitempty"`
	CategoryIcon string    `json:"category_icon,omitempty"`
	Bucket       Bucket    `json:"bucket"`
	NextAt       time.Time `json:"next_at"`
	DisplayTime  string    `json:"display_time"` // raw HH:MM
}

// HabitsByCategory groups a category's most recent active habits for the
// dashboard. Uncategorized habits get a synthetic category.
type HabitsByCategory struct {
	Category Category            `json:"category"`
	Habits   []HabitWithCategory `json:"habits"`
}

// UncategorizedKey is the synthetic group key and UUID used for habits
// without a category.
const UncategorizedKey = "uncategorized"

// UncategorizedCategory is the pseudo-category attached to the ungrouped
// bucket.
func UncategorizedCategory() Category {
	return Category{UUID: UncategorizedKey, Name: "Uncategorized", Icon: DefaultCategoryIcon}
}
