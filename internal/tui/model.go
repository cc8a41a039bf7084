package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/flowtrack/internal/constants"
	"github.com/julianstephens/flowtrack/internal/models"
	"github.com/julianstephens/flowtrack/internal/schedule"
	"github.com/julianstephens/flowtrack/internal/storage"
	"github.com/julianstephens/flowtrack/internal/validation"
)

type SessionState int

const (
	StateUpcoming SessionState = iota
	StateHabits
	StateAddHabit
)

// snapshot is everything the dashboard renders, derived in one pass so the
// view never mixes data from two different fetches.
type snapshot struct {
	Reminders []models.ReminderCandidate
	Groups    []models.HabitsByCategory
	Inactive  []models.Habit
}

// hash fingerprints the snapshot so refreshes that change nothing can be
// dropped instead of re-rendering. The projection sticks to the fields the
// view actually shows.
func (s snapshot) hash() uint64 {
	var lines []string
	for _, r := range s.Reminders {
		lines = append(lines, strings.Join([]string{
			r.UUID, string(r.Bucket), r.DisplayTime, r.Title,
			r.Description, r.TargetText, r.CategoryName, r.CategoryIcon,
		}, "|"))
	}
	for _, g := range s.Groups {
		line := g.Category.UUID + "|" + g.Category.Name + "|" + g.Category.Icon
		for _, h := range g.Habits {
			line += "|" + h.UUID + "|" + h.Title + "|" + h.ReminderTime
		}
		lines = append(lines, line)
	}
	for _, h := range s.Inactive {
		lines = append(lines, h.UUID+"|"+h.Title)
	}

	h, err := hashstructure.Hash(lines, hashstructure.FormatV2, nil)
	if err != nil {
		return 0
	}
	return h
}

type HabitFormModel struct {
	Title       string
	Description string
	Days        []int
	Remind      string
	Category    string
}

type Model struct {
	store     storage.Provider
	validator *validation.Validator
	state     SessionState
	keys      KeyMap
	help      help.Model

	snap     snapshot
	snapHash uint64

	form       *huh.Form
	habitForm  *HabitFormModel
	categories []models.Category

	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, validator *validation.Validator) Model {
	m := Model{
		store:     store,
		validator: validator,
		state:     StateUpcoming,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}

	if snap, err := loadSnapshot(store, time.Now()); err != nil {
		m.err = err
	} else {
		m.snap = snap
		m.snapHash = snap.hash()
	}
	return m
}

// loadSnapshot fetches the habit snapshot and runs the schedule transforms
// with a single now value.
func loadSnapshot(store storage.Provider, now time.Time) (snapshot, error) {
	reminderHabits, err := store.ReminderHabits()
	if err != nil {
		return snapshot{}, err
	}
	activeHabits, err := store.ActiveHabitsWithCategory()
	if err != nil {
		return snapshot{}, err
	}
	inactiveHabits, err := store.InactiveHabits(constants.MaxInactiveHabits)
	if err != nil {
		return snapshot{}, err
	}

	return snapshot{
		Reminders: schedule.SelectUpcomingReminders(reminderHabits, now, constants.DefaultReminderLimit),
		Groups:    schedule.GroupActiveHabits(activeHabits),
		Inactive:  schedule.SelectInactiveHabits(inactiveHabits),
	}, nil
}

func (m *Model) newHabitForm() {
	m.habitForm = &HabitFormModel{Days: []int{1, 2, 3, 4, 5, 6, 7}}
	m.categories, _ = m.store.GetAllCategories()

	categoryOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, c := range m.categories {
		categoryOptions = append(categoryOptions, huh.NewOption(c.Name, c.UUID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&m.habitForm.Title),
			huh.NewInput().
				Title("Description (optional)").
				Value(&m.habitForm.Description),
			huh.NewMultiSelect[int]().
				Title("Active days").
				Options(
					huh.NewOption("Monday", 1),
					huh.NewOption("Tuesday", 2),
					huh.NewOption("Wednesday", 3),
					huh.NewOption("Thursday", 4),
					huh.NewOption("Friday", 5),
					huh.NewOption("Saturday", 6),
					huh.NewOption("Sunday", 7),
				).
				Value(&m.habitForm.Days),
			huh.NewInput().
				Title("Reminder time (HH:MM, optional)").
				Value(&m.habitForm.Remind),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&m.habitForm.Category),
		),
	)
}
