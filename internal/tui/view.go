package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flowtrack/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateAddHabit && m.form != nil {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateUpcoming:
		content = m.viewUpcoming()
	case StateHabits:
		content = m.viewHabits()
	}

	sections := []string{m.viewTabs(), content}
	if m.err != nil {
		sections = append(sections, errStyle.Render(m.err.Error()))
	}
	sections = append(sections, m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Upcoming", "Habits"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewUpcoming() string {
	if len(m.snap.Reminders) == 0 {
		return dimStyle.Render("\nNo upcoming reminders\n")
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, r := range m.snap.Reminders {
		badge := tomorrowBadgeStyle.Render("Tomorrow")
		if r.Bucket == models.BucketToday {
			badge = todayBadgeStyle.Render("Today")
		}
		fmt.Fprintf(&b, "%s %s %s",
			badge, models.DisplayClock(r.DisplayTime), titleStyle.Render(r.Title))
		if r.TargetText != "" {
			b.WriteString(dimStyle.Render(" - " + r.TargetText))
		}
		if r.CategoryName != "" {
			b.WriteString(dimStyle.Render(fmt.Sprintf(" [%s %s]", r.CategoryIcon, r.CategoryName)))
		}
		b.WriteString("\n")
		if r.Description != "" {
			b.WriteString(dimStyle.Render("    "+r.Description) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewHabits() string {
	var b strings.Builder
	b.WriteString("\n")

	if len(m.snap.Groups) == 0 {
		b.WriteString(dimStyle.Render("No active habits\n"))
	}
	for _, g := range m.snap.Groups {
		fmt.Fprintf(&b, "%s\n", categoryStyle.Render(fmt.Sprintf("%s %s", g.Category.Icon, g.Category.Name)))
		for _, h := range g.Habits {
			line := "  " + titleStyle.Render(h.Title)
			if h.ReminderTime != "" {
				line += dimStyle.Render(" at " + models.DisplayClock(h.ReminderTime))
			}
			if h.HasTarget() {
				line += dimStyle.Render(fmt.Sprintf(" - %d %s", *h.TargetValue, h.TargetUnit))
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if len(m.snap.Inactive) > 0 {
		b.WriteString(dimStyle.Render("Paused:") + "\n")
		for _, h := range m.snap.Inactive {
			b.WriteString(dimStyle.Render("  "+h.Title) + "\n")
		}
	}
	return b.String()
}
