package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is also the end-of-day sentinel rendered as "24:00"
const MinutesPerDay = 1440

// ErrInvalidFormat is returned for times outside their domain
var ErrInvalidFormat = errors.New("invalid time format")

// ToMinutes converts "H:MM" or "HH:MM" to minutes from midnight (0-1439)
func ToMinutes(hhmm string) (int, error) {
	hoursStr, minutesStr, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok || len(hoursStr) < 1 || len(hoursStr) > 2 || len(minutesStr) != 2 {
		return 0, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidFormat, hhmm)
	}

	hours, err := strconv.Atoi(hoursStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidFormat, hhmm)
	}
	minutes, err := strconv.Atoi(minutesStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidFormat, hhmm)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidFormat, hhmm)
	}

	return hours*60 + minutes, nil
}

// ToClock converts minutes from midnight to "HH:MM".
// 1440 is accepted as the end-of-day marker and rendered as "24:00".
func ToClock(min int) (string, error) {
	if min < 0 || min > MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes, must be 0-%d", ErrInvalidFormat, min, MinutesPerDay)
	}
	if min == MinutesPerDay {
		return "24:00", nil
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60), nil
}

// MustClock is ToClock for values already known to be in range
func MustClock(min int) string {
	s, err := ToClock(min)
	if err != nil {
		panic(err)
	}
	return s
}

// Overlaps reports whether two half-open intervals intersect.
// Touching intervals (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
