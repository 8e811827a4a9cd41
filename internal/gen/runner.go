package gen

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"dwgen/internal/anomaly"
	"dwgen/internal/metrics"
	"dwgen/internal/rng"
	"dwgen/internal/sink"
)

// Record is one generated row handed to the sink.
type Record = sink.Record

// Logical dataset names, also used as sink directory/topic suffixes.
const (
	DatasetCatalog   = "catalog"
	DatasetFxRates   = "fx_rates"
	DatasetOpDB      = "opdb"
	DatasetWebEvents = "web_events"
)

// AllDatasets in generation order.
var AllDatasets = []string{DatasetCatalog, DatasetFxRates, DatasetOpDB, DatasetWebEvents}

// Runner drives one generation run: for each day of the window, the four
// streams draw from the shared RNG context in a fixed order (catalog, fx,
// opdb, web events) and hand their batch to the sink before the next day
// starts. Reordering the streams, or disabling one, changes every
// downstream draw; reproducibility holds per (seed, parameters, dataset
// selection).
type Runner struct {
	RNG       *rng.Context
	Policies  anomaly.Policies
	Sink      sink.Sink
	Metrics   *metrics.Registry // optional
	Log       zerolog.Logger
	SKUs      []string
	Customers []string
	Datasets  map[string]bool // nil means all
	KeepGoing bool            // log sink failures and move on instead of aborting
}

type DatasetStats struct {
	Days    int `json:"days"`
	Records int `json:"records"`
}

type Summary struct {
	Datasets map[string]DatasetStats `json:"datasets"`
}

func (r *Runner) Run(days []time.Time) (Summary, error) {
	st := NewRunState()
	sum := Summary{Datasets: make(map[string]DatasetStats)}

	for _, day := range days {
		if r.enabled(DatasetCatalog) {
			rows, skipped := Catalog(r.RNG, r.Policies, r.SKUs, day)
			if skipped {
				if r.Metrics != nil {
					r.Metrics.DaysSkipped.Inc()
				}
				r.Log.Debug().Str("day", sink.DayKey(day)).Msg("catalog day skipped")
			} else if err := r.write(&sum, DatasetCatalog, day, rows); err != nil {
				return sum, err
			}
		}

		if r.enabled(DatasetFxRates) {
			rec := Fx(r.RNG, st, day)
			if err := r.write(&sum, DatasetFxRates, day, []Record{rec}); err != nil {
				return sum, err
			}
		}

		if r.enabled(DatasetOpDB) {
			rows, versions := OpDB(r.RNG, r.Policies, r.Customers, r.SKUs, st, day)
			if r.Metrics != nil {
				r.Metrics.CustomerVersions.Add(float64(versions))
			}
			if err := r.write(&sum, DatasetOpDB, day, rows); err != nil {
				return sum, err
			}
		}

		if r.enabled(DatasetWebEvents) {
			rows, dups, lates := WebEvents(r.RNG, r.Policies, r.Customers, r.SKUs, day)
			if r.Metrics != nil {
				r.Metrics.DuplicatesInjected.Add(float64(dups))
				r.Metrics.LateInjected.Add(float64(lates))
			}
			if err := r.write(&sum, DatasetWebEvents, day, rows); err != nil {
				return sum, err
			}
		}

		r.Log.Info().Str("day", sink.DayKey(day)).Msg("day generated")
	}
	return sum, nil
}

func (r *Runner) enabled(dataset string) bool {
	return r.Datasets == nil || r.Datasets[dataset]
}

// write hands a day's batch to the sink. The day's in-memory state is
// already final when this runs, so a failed write leaves the run state
// intact and the next day can still be attempted under KeepGoing.
func (r *Runner) write(sum *Summary, dataset string, day time.Time, records []Record) error {
	if err := r.Sink.Write(dataset, day, records); err != nil {
		if !r.KeepGoing {
			return fmt.Errorf("write %s %s: %w", dataset, sink.DayKey(day), err)
		}
		r.Log.Error().Err(err).Str("dataset", dataset).Str("day", sink.DayKey(day)).Msg("sink write failed, continuing")
		return nil
	}
	s := sum.Datasets[dataset]
	s.Days++
	s.Records += len(records)
	sum.Datasets[dataset] = s
	if r.Metrics != nil {
		r.Metrics.Records.WithLabelValues(dataset).Add(float64(len(records)))
	}
	return nil
}
