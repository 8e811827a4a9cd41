package window

import (
	"fmt"
	"time"
)

// DateLayout is the day format used in filenames and record fields.
const DateLayout = "2006-01-02"

// NowUTC returns the current time. Split for testability.
var NowUTC = func() time.Time { return time.Now().UTC() }

// Days resolves the run window: n consecutive UTC calendar days, ascending.
// With no explicit start the window ends near today (start = now - n days);
// an explicit start always takes day #1. offset shifts the whole window and
// may be negative.
func Days(n int, start time.Time, hasStart bool, offset int) ([]time.Time, error) {
	if n < 1 {
		return nil, fmt.Errorf("days must be >= 1, got %d", n)
	}
	var first time.Time
	if hasStart {
		first = midnight(start.UTC())
	} else {
		first = midnight(NowUTC().AddDate(0, 0, -n))
	}
	first = first.AddDate(0, 0, offset)

	out := make([]time.Time, n)
	for i := range out {
		out[i] = first.AddDate(0, 0, i)
	}
	return out, nil
}

// ParseDate parses a YYYY-MM-DD flag value.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start date %q: %w", s, err)
	}
	return d.UTC(), nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
