package sink

import "time"

// Record is one generated row; concrete types live in internal/model.
type Record any

// Sink durably persists all records for one (dataset, day) as a single
// logical unit: after Write returns nil a reader sees the whole day, after
// an error it sees none of it.
type Sink interface {
	Write(dataset string, day time.Time, records []Record) error
}

// DayKey formats a day the way it appears in filenames, keys and topics.
func DayKey(day time.Time) string { return day.UTC().Format("2006-01-02") }
