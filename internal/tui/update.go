package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/flowtrack/internal/models"
	"github.com/julianstephens/flowtrack/internal/validation"
)

// refreshInterval drives the periodic recomputation of the dashboard, the
// same job the mobile-style auto refresh timer does. A minute matches the
// granularity of reminder times.
const refreshInterval = time.Minute

type tickMsg time.Time

type snapshotMsg struct {
	snap snapshot
	hash uint64
}

type errMsg struct{ err error }

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) refresh() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		snap, err := loadSnapshot(store, time.Now())
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg{snap: snap, hash: snap.hash()}
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())

	case snapshotMsg:
		// Identical snapshots are dropped so back-to-back refresh
		// triggers coalesce into one repaint.
		if msg.hash != m.snapHash {
			m.snap = msg.snap
			m.snapHash = msg.hash
			m.err = nil
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	if m.state == StateAddHabit {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			if m.state == StateUpcoming {
				m.state = StateHabits
			} else {
				m.state = StateUpcoming
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, m.keys.Add):
			m.state = StateAddHabit
			m.newHabitForm()
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.state = StateUpcoming
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.state = StateUpcoming
		if err := m.submitHabit(); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.refresh()
	}
	return m, cmd
}

func (m *Model) submitHabit() error {
	habit := models.Habit{
		UUID:         uuid.New().String(),
		Title:        m.habitForm.Title,
		Description:  m.habitForm.Description,
		ActiveDays:   models.NewActiveDays(m.habitForm.Days...),
		ReminderTime: m.habitForm.Remind,
		Active:       true,
		CreatedAt:    time.Now(),
		CategoryUUID: m.habitForm.Category,
	}

	if errs := m.validator.ValidateHabit(habit, time.Now()); errs.Any() {
		return validationError(errs)
	}
	return m.store.AddHabit(habit)
}

type validationError validation.Errors

func (e validationError) Error() string {
	return validation.Errors(e).FormatReport()
}
