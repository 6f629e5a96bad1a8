package attendance

import (
	"strings"
	"time"
)

// NormalizeClock accepts "HH:MM" or "HH:MM:SS" and returns "HH:MM:SS".
// Empty input means no time recorded.
func NormalizeClock(v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*v)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			out := t.Format("15:04:05")
			return &out, nil
		}
	}
	return nil, ErrInvalidTime
}

func validStatus(v string) bool {
	for _, s := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func normalize(rec Record) (Record, error) {
	if !validStatus(rec.Status) {
		return Record{}, ErrInvalidStatus
	}
	var err error
	if rec.CheckIn, err = NormalizeClock(rec.CheckIn); err != nil {
		return Record{}, err
	}
	if rec.CheckOut, err = NormalizeClock(rec.CheckOut); err != nil {
		return Record{}, err
	}
	y, m, d := rec.Date.Date()
	rec.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return rec, nil
}
