package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/flowtrack/internal/cli"
	"github.com/julianstephens/flowtrack/internal/storage"
	"github.com/julianstephens/flowtrack/internal/validation"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/flowtrack/flowtrack.db"`

	Init      cli.InitCmd      `cmd:"" help:"Initialize flowtrack storage."`
	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Reminders cli.RemindersCmd `cmd:"" help:"Show upcoming reminders."`
	Today     cli.TodayCmd     `cmd:"" help:"Show habits scheduled for today."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run diagnostics on the store."`
	Habit     struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a new habit."`
		Edit   cli.HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List habits."`
	} `cmd:"" help:"Manage habits."`
	Category struct {
		Add    cli.CategoryAddCmd    `cmd:"" help:"Add a new category."`
		List   cli.CategoryListCmd   `cmd:"" help:"List categories with habit counts."`
		Delete cli.CategoryDeleteCmd `cmd:"" help:"Delete a category (habits are kept)."`
	} `cmd:"" help:"Manage categories."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("flowtrack"),
		kong.Description("Habit tracker with weekly schedules and reminders"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:     store,
		Validator: validation.New(),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
