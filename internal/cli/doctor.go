package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/flowtrack/internal/backup"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	// Check 2: data validation sweep
	if storeReachable {
		if err := checkHabitData(ctx); err != nil {
			fmt.Printf("❌ Habit data: FAIL\n")
			fmt.Printf("   %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Habit data: OK\n")
		}
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 4: concurrent flowtrack processes (warning only)
	if others, err := otherFlowtrackProcesses(); err != nil {
		fmt.Printf("⚠ Process check: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else if len(others) > 0 {
		fmt.Printf("⚠ Other flowtrack processes: WARNING\n")
		fmt.Printf("   PIDs %v may hold the store open\n", others)
	} else {
		fmt.Printf("✓ No other flowtrack processes: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed")
	return nil
}

// checkHabitData runs the validator over every stored habit. Past due dates
// are tolerated here since they were valid at creation time; only structural
// problems fail the check.
func checkHabitData(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	// Far-past reference keeps existing due dates from tripping the sweep.
	reference := time.Date(1970, 1, 1, 0, 0, 0, 0, time.Local)

	bad := 0
	for _, h := range habits {
		if errs := ctx.Validator.ValidateHabit(h, reference); errs.Any() {
			bad++
			fmt.Printf("   habit %s: %s", h.UUID, errs.FormatReport())
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d habit(s) failed validation", bad)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'flowtrack backup create'")
	}
	return nil
}

func otherFlowtrackProcesses() ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), "flowtrack") {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
