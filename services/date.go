package services

import (
	"fmt"
	"time"
)

// ParseDate parses a date string in typical formats (YYYY-MM-DD)
// It enforces strict checks but centralizes the logic for future format additions
func ParseDate(dateStr string) (time.Time, error) {
	// Primary format: ISO 8601 (standard for HTML5 date inputs)
	layout := "2006-01-02"

	parsedTime, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}

	return parsedTime, nil
}

// ParseClock validates an HH:MM clock string as used for occurrence times
func ParseClock(clockStr string) (string, error) {
	if _, err := time.Parse("15:04", clockStr); err != nil {
		return "", fmt.Errorf("invalid time format: expected HH:MM")
	}
	return clockStr, nil
}
