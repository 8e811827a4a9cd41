package sink

import "time"

// MultiSink fans a day's batch out to multiple sinks sequentially.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(ss ...Sink) *MultiSink {
	return &MultiSink{sinks: ss}
}

func (m *MultiSink) Write(dataset string, day time.Time, records []Record) error {
	for _, s := range m.sinks {
		if err := s.Write(dataset, day, records); err != nil {
			return err
		}
	}
	return nil
}
