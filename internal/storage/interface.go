package storage

import (
	"errors"

	"github.com/julianstephens/flowtrack/internal/models"
)

var (
	// ErrNotFound is returned when an update or delete references an
	// unknown uuid.
	ErrNotFound = errors.New("not found")
	// ErrNoFields is returned for a partial update that supplies no fields.
	ErrNoFields = errors.New("no fields provided for update")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(uuid string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(uuid string, update models.HabitUpdate) error
	DeleteHabit(uuid string) error

	// Categories
	AddCategory(models.Category) error
	GetAllCategories() ([]models.Category, error)
	DeleteCategory(uuid string) error
	GetCategoryStats() ([]models.CategoryStats, error)

	// Dashboard snapshots. Implementations may pre-filter and cap as a
	// query optimization; callers re-apply the same rules in memory.
	ActiveHabitsWithCategory() ([]models.HabitWithCategory, error)
	InactiveHabits(limit int) ([]models.Habit, error)
	ReminderHabits() ([]models.HabitWithCategory, error)

	// Utils
	GetConfigPath() string
}
