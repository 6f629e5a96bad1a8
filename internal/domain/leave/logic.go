package leave

import (
	"time"
)

// CalculateDays returns the inclusive day count between start and end.
func CalculateDays(start, end time.Time) (int, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validType(v string) bool {
	for _, t := range Types {
		if t == v {
			return true
		}
	}
	return false
}
