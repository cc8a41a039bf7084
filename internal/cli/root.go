package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/flowtrack/internal/models"
	"github.com/julianstephens/flowtrack/internal/storage"
	"github.com/julianstephens/flowtrack/internal/validation"
)

type Context struct {
	Store     storage.Provider
	Validator *validation.Validator
}

var dayNames = map[string]int{
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
	"sun": 7, "sunday": 7,
}

var dayLabels = [8]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// parseDays turns "mon,wed,fri" or "1,3,5" into an ActiveDays set
// (1=Monday..7=Sunday).
func parseDays(s string) (models.ActiveDays, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if d, ok := dayNames[part]; ok {
			days = append(days, d)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 1 || num > 7 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}
	return models.NewActiveDays(days...), nil
}

func formatDays(days models.ActiveDays) string {
	if days.Equal(models.EveryDay()) {
		return "every day"
	}
	if len(days) == 0 {
		return "never"
	}
	var labels []string
	for _, d := range days {
		labels = append(labels, dayLabels[d])
	}
	return strings.Join(labels, ",")
}

func reportErrors(errs validation.Errors) error {
	return fmt.Errorf("%s", strings.TrimSpace(errs.FormatReport()))
}
