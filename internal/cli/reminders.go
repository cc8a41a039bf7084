package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/flowtrack/internal/constants"
	"github.com/julianstephens/flowtrack/internal/models"
	"github.com/julianstephens/flowtrack/internal/schedule"
)

type RemindersCmd struct {
	Limit int `short:"n" help:"Maximum number of reminders to show." default:"5"`
}

func (c *RemindersCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.ReminderHabits()
	if err != nil {
		return err
	}

	limit := c.Limit
	if limit < 0 {
		limit = constants.DefaultReminderLimit
	}
	reminders := schedule.SelectUpcomingReminders(habits, time.Now(), limit)
	if len(reminders) == 0 {
		fmt.Println("No upcoming reminders")
		return nil
	}

	fmt.Println("Upcoming reminders:")
	for _, r := range reminders {
		label := "Tomorrow"
		if r.Bucket == models.BucketToday {
			label = "Today"
		}
		line := fmt.Sprintf("  %s %s - %s", label, models.DisplayClock(r.DisplayTime), r.Title)
		if r.TargetText != "" {
			line += fmt.Sprintf(" (%s)", r.TargetText)
		}
		if r.CategoryName != "" {
			line += fmt.Sprintf(" [%s]", r.CategoryName)
		}
		fmt.Println(line)
	}
	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	now := time.Now()
	found := false
	for _, h := range habits {
		if h.Active && schedule.IsHabitActiveToday(h, now) {
			printHabit(h)
			found = true
		}
	}
	if !found {
		fmt.Println("Nothing scheduled for today")
	}
	return nil
}
