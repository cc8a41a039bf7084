package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/flowtrack/internal/constants"
	"github.com/julianstephens/flowtrack/internal/models"
	"github.com/julianstephens/flowtrack/internal/schedule"
)

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Description string `short:"d" help:"Optional description."`
	Days        string `short:"w" help:"Comma-separated weekdays (mon..sun or 1..7). Defaults to every day."`
	Remind      string `short:"r" help:"Daily reminder time (HH:MM)."`
	Due         string `help:"Due date (YYYY-MM-DD)."`
	Target      *int   `short:"t" help:"Target value, e.g. 8."`
	Unit        string `short:"u" help:"Target unit, e.g. glasses."`
	Category    string `short:"c" help:"Category name."`
	Paused      bool   `help:"Create the habit inactive."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	days := models.EveryDay()
	if c.Days != "" {
		parsed, err := parseDays(c.Days)
		if err != nil {
			return err
		}
		days = parsed
	}

	habit := models.Habit{
		UUID:         uuid.New().String(),
		Title:        c.Title,
		Description:  c.Description,
		TargetValue:  c.Target,
		TargetUnit:   c.Unit,
		ActiveDays:   days,
		ReminderTime: c.Remind,
		Active:       !c.Paused,
		DueDate:      c.Due,
		CreatedAt:    time.Now(),
	}

	if c.Category != "" {
		cat, err := findCategory(ctx, c.Category)
		if err != nil {
			return err
		}
		habit.CategoryUUID = cat.UUID
	}

	if errs := ctx.Validator.ValidateHabit(habit, time.Now()); errs.Any() {
		return reportErrors(errs)
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", habit.Title, habit.UUID)
	return nil
}

type HabitEditCmd struct {
	ID          string  `arg:"" help:"Habit UUID."`
	Title       *string `help:"New title."`
	Description *string `short:"d" help:"New description."`
	Days        *string `short:"w" help:"New weekdays (mon..sun or 1..7)."`
	Remind      *string `short:"r" help:"New reminder time (HH:MM, empty to clear)."`
	Due         *string `help:"New due date (YYYY-MM-DD, empty to clear)."`
	Target      *int    `short:"t" help:"New target value."`
	Unit        *string `short:"u" help:"New target unit."`
	Category    *string `short:"c" help:"New category name (empty to uncategorize)."`
	Pause       bool    `help:"Deactivate the habit."`
	Resume      bool    `help:"Reactivate the habit."`
}

func (c *HabitEditCmd) Validate() error {
	if c.Pause && c.Resume {
		return fmt.Errorf("--pause and --resume are mutually exclusive")
	}
	return nil
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	update := models.HabitUpdate{
		Title:        c.Title,
		Description:  c.Description,
		TargetValue:  c.Target,
		TargetUnit:   c.Unit,
		ReminderTime: c.Remind,
		DueDate:      c.Due,
	}

	if c.Days != nil {
		days, err := parseDays(*c.Days)
		if err != nil {
			return err
		}
		update.ActiveDays = &days
	}
	if c.Pause || c.Resume {
		active := c.Resume
		update.Active = &active
	}
	if c.Category != nil {
		if *c.Category == "" {
			empty := ""
			update.CategoryUUID = &empty
		} else {
			cat, err := findCategory(ctx, *c.Category)
			if err != nil {
				return err
			}
			update.CategoryUUID = &cat.UUID
		}
	}

	if errs := ctx.Validator.ValidateUpdate(update, time.Now()); errs.Any() {
		return reportErrors(errs)
	}

	if err := ctx.Store.UpdateHabit(c.ID, update); err != nil {
		return err
	}

	fmt.Printf("Updated habit %s\n", c.ID)
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit UUID."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.DeleteHabit(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit %s\n", c.ID)
	return nil
}

type HabitListCmd struct {
	All bool `help:"List every habit instead of the dashboard grouping."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.All {
		habits, err := ctx.Store.GetAllHabits()
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			fmt.Println("No habits found")
			return nil
		}
		for _, h := range habits {
			printHabit(h)
		}
		return nil
	}

	active, err := ctx.Store.ActiveHabitsWithCategory()
	if err != nil {
		return err
	}
	inactive, err := ctx.Store.InactiveHabits(constants.MaxInactiveHabits)
	if err != nil {
		return err
	}

	groups := schedule.GroupActiveHabits(active)
	if len(groups) == 0 {
		fmt.Println("No active habits")
	}
	for _, g := range groups {
		fmt.Printf("%s (%s)\n", g.Category.Name, g.Category.Icon)
		for _, h := range g.Habits {
			printHabit(h.Habit)
		}
	}

	paused := schedule.SelectInactiveHabits(inactive)
	if len(paused) > 0 {
		fmt.Println("Paused:")
		for _, h := range paused {
			printHabit(h)
		}
	}
	return nil
}

func printHabit(h models.Habit) {
	status := "active"
	if !h.Active {
		status = "paused"
	}
	line := fmt.Sprintf("  [%s] %s (%s)", status, h.Title, formatDays(h.ActiveDays))
	if h.ReminderTime != "" {
		line += " at " + models.DisplayClock(h.ReminderTime)
	}
	if h.HasTarget() {
		line += fmt.Sprintf(" - %d %s", *h.TargetValue, h.TargetUnit)
	}
	if h.DueDate != "" {
		line += " due " + h.DueDate
	}
	fmt.Println(line)
	fmt.Printf("      ID: %s\n", h.UUID)
}

func findCategory(ctx *Context, name string) (models.Category, error) {
	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return models.Category{}, err
	}
	for _, c := range categories {
		if c.Name == name {
			return c, nil
		}
	}
	return models.Category{}, fmt.Errorf("category %q not found", name)
}
