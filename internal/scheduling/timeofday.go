package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Times of day cross the storage boundary as "HH:MM" strings and are
// handled inside the engine as minutes since midnight.

var ErrInvalidClock = errors.New("invalid time of day, use HH:MM")

// ParseClock converts "HH:MM" (or "HH:MM:SS", as Postgres time columns
// render) to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidClock
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, ErrInvalidClock
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidClock
	}
	return hours*60 + minutes, nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
