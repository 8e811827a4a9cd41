package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	Records            *prometheus.CounterVec
	DuplicatesInjected prometheus.Counter
	LateInjected       prometheus.Counter
	DaysSkipped        prometheus.Counter
	CustomerVersions   prometheus.Counter
	RunDurationSec     prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	records := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dwgen_records_total"}, []string{"dataset"})
	dups := prometheus.NewCounter(prometheus.CounterOpts{Name: "dwgen_duplicates_injected_total"})
	lates := prometheus.NewCounter(prometheus.CounterOpts{Name: "dwgen_late_injected_total"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "dwgen_days_skipped_total"})
	versions := prometheus.NewCounter(prometheus.CounterOpts{Name: "dwgen_customer_versions_total"})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{Name: "dwgen_run_duration_seconds"})

	r.MustRegister(records, dups, lates, skipped, versions, duration)
	return &Registry{
		reg:                r,
		Records:            records,
		DuplicatesInjected: dups,
		LateInjected:       lates,
		DaysSkipped:        skipped,
		CustomerVersions:   versions,
		RunDurationSec:     duration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
