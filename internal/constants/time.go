package constants

const (
	// TimeLayout is the storage format for clock times (24-hour).
	TimeLayout = "15:04"
	// DateLayout is the storage format for calendar dates.
	DateLayout = "2006-01-02"
)

const (
	// MaxHabitsPerCategory caps how many habits a category shows on the dashboard.
	MaxHabitsPerCategory = 3
	// MaxInactiveHabits caps the paused-habits list.
	MaxInactiveHabits = 3
	// DefaultReminderLimit is the default size of the upcoming-reminders list.
	DefaultReminderLimit = 5
)
