// Package schedule derives reminder and dashboard state from a habit
// snapshot. Every function is a pure transform over its inputs: "now" is
// always an explicit parameter and nothing here touches storage, so results
// are reproducible and safe to recompute on any refresh trigger.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/flowtrack/internal/constants"
	"github.com/julianstephens/flowtrack/internal/models"
)

// Classification is the scheduling outcome for a single reminder-bearing
// habit.
type Classification struct {
	Bucket      models.Bucket
	NextAt      time.Time
	DisplayTime string
}

// Classify buckets a habit's next reminder relative to now.
//
// The lookahead is deliberately two days: a habit is "today" when it recurs
// on the current weekday and its reminder has not yet passed, "tomorrow"
// when it recurs on the next weekday, and "later" otherwise. NextAt is
// today's date plus the reminder time for the today bucket and tomorrow's
// date otherwise; no further search is done for later habits.
func Classify(h models.Habit, now time.Time) Classification {
	clock := now.Format(constants.TimeLayout)
	today := models.ISOWeekday(now.Weekday())
	tomorrow := models.ISOWeekday(now.AddDate(0, 0, 1).Weekday())

	c := Classification{DisplayTime: h.ReminderTime}
	switch {
	case h.ActiveDays.Contains(today) && h.ReminderTime >= clock:
		c.Bucket = models.BucketToday
		c.NextAt = atClock(now, h.ReminderTime, 0)
	case h.ActiveDays.Contains(tomorrow):
		c.Bucket = models.BucketTomorrow
		c.NextAt = atClock(now, h.ReminderTime, 1)
	default:
		c.Bucket = models.BucketLater
		c.NextAt = atClock(now, h.ReminderTime, 1)
	}
	return c
}

// IsHabitActiveToday reports whether the habit recurs on now's weekday.
func IsHabitActiveToday(h models.Habit, now time.Time) bool {
	return h.ActiveDays.ContainsWeekday(now.Weekday())
}

// SelectUpcomingReminders filters, classifies, orders, and truncates the
// habit snapshot into the upcoming-reminders list.
//
// Eligibility: active, reminder time set, and either bucketed today or
// recurring on tomorrow's weekday. A habit whose nearest recurrence is more
// than a day out is excluded entirely rather than surfaced as "later".
// Ordering places the today bucket first, then ascending reminder time;
// the sort is stable so equal times keep snapshot order.
func SelectUpcomingReminders(habits []models.HabitWithCategory, now time.Time, limit int) []models.ReminderCandidate {
	tomorrow := models.ISOWeekday(now.AddDate(0, 0, 1).Weekday())

	candidates := make([]models.ReminderCandidate, 0, len(habits))
	for _, h := range habits {
		if !h.Active || h.ReminderTime == "" {
			continue
		}
		c := Classify(h.Habit, now)
		if c.Bucket != models.BucketToday && !h.ActiveDays.Contains(tomorrow) {
			continue
		}
		candidates = append(candidates, newCandidate(h, c))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		iToday := candidates[i].Bucket == models.BucketToday
		jToday := candidates[j].Bucket == models.BucketToday
		if iToday != jToday {
			return iToday
		}
		return candidates[i].DisplayTime < candidates[j].DisplayTime
	})

	if limit < 0 {
		limit = 0
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// GroupActiveHabits partitions active habits by category, keeping the
// MaxHabitsPerCategory most recently created per group. Habits without a
// category land in a synthetic "Uncategorized" group. Groups come back
// sorted by category name.
func GroupActiveHabits(habits []models.HabitWithCategory) []models.HabitsByCategory {
	groups := make(map[string]*models.HabitsByCategory)
	for _, h := range habits {
		if !h.Active {
			continue
		}
		key := models.UncategorizedKey
		cat := models.UncategorizedCategory()
		if h.Category != nil {
			key = h.Category.UUID
			cat = *h.Category
		}
		g, ok := groups[key]
		if !ok {
			g = &models.HabitsByCategory{Category: cat}
			groups[key] = g
		}
		g.Habits = append(g.Habits, h)
	}

	out := make([]models.HabitsByCategory, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.Habits, func(i, j int) bool {
			return g.Habits[i].CreatedAt.After(g.Habits[j].CreatedAt)
		})
		if len(g.Habits) > constants.MaxHabitsPerCategory {
			g.Habits = g.Habits[:constants.MaxHabitsPerCategory]
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category.Name < out[j].Category.Name
	})
	return out
}

// SelectInactiveHabits returns the MaxInactiveHabits most recently created
// paused habits, newest first.
func SelectInactiveHabits(habits []models.Habit) []models.Habit {
	inactive := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if !h.Active {
			inactive = append(inactive, h)
		}
	}
	sort.SliceStable(inactive, func(i, j int) bool {
		return inactive[i].CreatedAt.After(inactive[j].CreatedAt)
	})
	if len(inactive) > constants.MaxInactiveHabits {
		inactive = inactive[:constants.MaxInactiveHabits]
	}
	return inactive
}

func newCandidate(h models.HabitWithCategory, c Classification) models.ReminderCandidate {
	rc := models.ReminderCandidate{
		UUID:        h.UUID,
		Title:       h.Title,
		Description: h.Description,
		Bucket:      c.Bucket,
		NextAt:      c.NextAt,
		DisplayTime: c.DisplayTime,
	}
	if h.HasTarget() {
		rc.TargetText = fmt.Sprintf("%d %s", *h.TargetValue, h.TargetUnit)
	}
	if h.Category != nil {
		rc.CategoryName = h.Category.Name
		rc.CategoryIcon = h.Category.Icon
	}
	return rc
}

// atClock combines now's date (shifted by dayOffset) with an HH:MM clock
// time in now's location.
func atClock(now time.Time, clock string, dayOffset int) time.Time {
	minutes, err := models.ParseClock(clock)
	if err != nil {
		minutes = 0
	}
	y, m, d := now.AddDate(0, 0, dayOffset).Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, now.Location())
}
