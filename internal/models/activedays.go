package models

import (
	"encoding/json"
	"sort"
	"time"
)

// ActiveDays is the set of ISO weekdays (1=Monday..7=Sunday) a habit recurs
// on. It is kept sorted and de-duplicated so that equal sets compare equal
// and serialization is canonical. An empty set means the habit never recurs.
type ActiveDays []int

// EveryDay returns the full weekly pattern.
func EveryDay() ActiveDays {
	return ActiveDays{1, 2, 3, 4, 5, 6, 7}
}

// NewActiveDays normalizes arbitrary day numbers into a valid set: values
// outside 1..7 are dropped, duplicates collapsed, order fixed ascending.
func NewActiveDays(days ...int) ActiveDays {
	seen := make(map[int]bool, len(days))
	out := make(ActiveDays, 0, len(days))
	for _, d := range days {
		if d < 1 || d > 7 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// ParseActiveDays decodes the stored JSON form ("[1,2,3]"). A malformed
// string yields the full week rather than an error so that a corrupt row
// keeps showing up instead of silently disappearing.
func ParseActiveDays(s string) ActiveDays {
	var raw []int
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return EveryDay()
	}
	return NewActiveDays(raw...)
}

// Serialize encodes the set to its stored JSON form.
func (a ActiveDays) Serialize() string {
	norm := NewActiveDays(a...)
	b, err := json.Marshal([]int(norm))
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Contains reports whether the ISO weekday d is in the set.
func (a ActiveDays) Contains(d int) bool {
	for _, v := range a {
		if v == d {
			return true
		}
	}
	return false
}

// ContainsWeekday reports whether the set includes the given time.Weekday.
func (a ActiveDays) ContainsWeekday(wd time.Weekday) bool {
	return a.Contains(ISOWeekday(wd))
}

// Equal reports whether two sets contain the same days.
func (a ActiveDays) Equal(b ActiveDays) bool {
	x, y := NewActiveDays(a...), NewActiveDays(b...)
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// ISOWeekday converts Go's weekday numbering (Sunday=0) to ISO numbering
// (Monday=1..Sunday=7).
func ISOWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}
