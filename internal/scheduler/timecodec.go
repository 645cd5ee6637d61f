package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay bounds every availability window.
const MinutesPerDay = 24 * 60

// ParseClock converts an "HH:MM" string into minutes after midnight. Only the syntax is
// checked here; range checks happen when windows are normalised.
func ParseClock(text string) (int, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q, use HH:MM format", ErrInvalidTimeFormat, text)
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q, use HH:MM format", ErrInvalidTimeFormat, text)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q, use HH:MM format", ErrInvalidTimeFormat, text)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes after midnight as zero-padded "HH:MM".
// Negative input is clamped to midnight.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
