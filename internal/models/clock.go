package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock parses an HH:MM string into minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time format: %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time out of range: %q", s)
	}
	return hour*60 + minute, nil
}

// ValidClock reports whether s is a well-formed HH:MM time.
func ValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// FormatClock renders minutes from midnight as zero-padded HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DisplayClock converts a stored HH:MM time to a 12-hour display string,
// e.g. "08:30" -> "8:30 AM". Invalid input is passed through unchanged.
func DisplayClock(s string) string {
	total, err := ParseClock(s)
	if err != nil {
		return s
	}
	hour, minute := total/60, total%60
	suffix := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		hour -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}
