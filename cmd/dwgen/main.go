package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"dwgen/internal/anomaly"
	"dwgen/internal/gen"
	"dwgen/internal/manifest"
	"dwgen/internal/metrics"
	"dwgen/internal/model"
	"dwgen/internal/rng"
	"dwgen/internal/sink"
	"dwgen/internal/window"
)

// Config holds CLI flags for dwgen.
type Config struct {
	Seed        int64
	Days        int
	StartDate   string
	StartOffset int

	Probs    anomaly.Policies
	Datasets string // comma-separated subset of catalog,fx_rates,opdb,web_events; empty = all

	OutDir         string
	Sinks          string // comma-separated: file|kafka|kafka-tx|kv
	KafkaBootstrap string
	TopicPrefix    string
	TxID           string
	KVBackend      string // pebble|badger
	KVDir          string

	ManifestSink  string // file|kafka|both
	ManifestTopic string

	MetricsAddr string
	KeepGoing   bool
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	cfg := readFlags()
	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("dwgen failed")
	}
}

func readFlags() Config {
	var cfg Config
	flag.Int64Var(&cfg.Seed, "seed", 42, "random seed; the same seed reproduces the same data")
	flag.IntVar(&cfg.Days, "days", 7, "how many days to generate (>=1)")
	flag.StringVar(&cfg.StartDate, "start-date", "", "optional ISO date (YYYY-MM-DD); if set, day #1 is this date")
	flag.IntVar(&cfg.StartOffset, "start-offset", 0, "shift the window into the past/future by N days (applied after start-date)")
	flag.Float64Var(&cfg.Probs.SkipProb, "skip-prob", 0.15, "probability to skip a catalog day (0..1)")
	flag.Float64Var(&cfg.Probs.DupProb, "dup-prob", 0.03, "probability to duplicate a web event (0..1)")
	flag.Float64Var(&cfg.Probs.LateProb, "late-prob", 0.10, "probability to emit a 36h-late copy of a web event (0..1)")
	flag.Float64Var(&cfg.Probs.NewProb, "new-prob", 0.15, "daily probability a customer gets its first version (0..1)")
	flag.Float64Var(&cfg.Probs.UpdateProb, "update-prob", 0.02, "daily probability an existing customer gets a new version (0..1)")
	flag.StringVar(&cfg.Datasets, "datasets", "", "datasets to generate, comma-separated; empty = all")
	flag.StringVar(&cfg.OutDir, "out", "./data", "output directory for the file sink and manifest")
	flag.StringVar(&cfg.Sinks, "sink", "file", "sinks, comma-separated: file|kafka|kafka-tx|kv")
	flag.StringVar(&cfg.KafkaBootstrap, "kafka-bootstrap", "", "kafka bootstrap servers, e.g. localhost:9092")
	flag.StringVar(&cfg.TopicPrefix, "topic-prefix", "dw", "kafka topic prefix; records go to <prefix>.<dataset>")
	flag.StringVar(&cfg.TxID, "tx-id", "", "transactional id for the kafka-tx sink")
	flag.StringVar(&cfg.KVBackend, "kv-backend", "pebble", "kv sink backend: pebble|badger")
	flag.StringVar(&cfg.KVDir, "kv-dir", "./data/kv", "kv sink data directory")
	flag.StringVar(&cfg.ManifestSink, "manifest-sink", "file", "manifest sink: file|kafka|both")
	flag.StringVar(&cfg.ManifestTopic, "manifest-topic", "dw.manifest", "kafka topic for the run manifest (compacted)")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve /metrics and /healthz on this address while running")
	flag.BoolVar(&cfg.KeepGoing, "keep-going", false, "log sink failures and continue instead of aborting")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	if err := cfg.Probs.Validate(); err != nil {
		return err
	}

	var start time.Time
	hasStart := cfg.StartDate != ""
	if hasStart {
		var err error
		start, err = window.ParseDate(cfg.StartDate)
		if err != nil {
			return err
		}
	}
	days, err := window.Days(cfg.Days, start, hasStart, cfg.StartOffset)
	if err != nil {
		return err
	}

	datasets, err := parseDatasets(cfg.Datasets)
	if err != nil {
		return err
	}

	out, closers, err := buildSinks(cfg)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	mreg := metrics.NewRegistry()
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", mreg.Handler())
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
			})
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	log.Info().
		Int64("seed", cfg.Seed).
		Int("days", cfg.Days).
		Str("first_day", sink.DayKey(days[0])).
		Str("last_day", sink.DayKey(days[len(days)-1])).
		Msg("starting generation run")

	runner := &gen.Runner{
		RNG:       rng.New(cfg.Seed),
		Policies:  cfg.Probs,
		Sink:      out,
		Metrics:   mreg,
		Log:       log.Logger,
		SKUs:      model.SKUPool(model.DefaultSKUCount),
		Customers: model.CustomerPool(model.DefaultCustomerCount),
		Datasets:  datasets,
		KeepGoing: cfg.KeepGoing,
	}

	began := time.Now()
	sum, err := runner.Run(days)
	if err != nil {
		return err
	}
	mreg.RunDurationSec.Set(time.Since(began).Seconds())

	pub, err := buildManifestPublisher(cfg)
	if err != nil {
		return err
	}
	m := manifest.Manifest{
		Seed:        cfg.Seed,
		Days:        cfg.Days,
		StartDate:   sink.DayKey(days[0]),
		StartOffset: cfg.StartOffset,
		Probs:       cfg.Probs,
		Datasets:    sum.Datasets,
	}
	if err := pub.PublishLatest(m); err != nil {
		return fmt.Errorf("publish manifest: %w", err)
	}

	for name, st := range sum.Datasets {
		log.Info().Str("dataset", name).Int("days", st.Days).Int("records", st.Records).Msg("dataset written")
	}
	log.Info().Dur("took", time.Since(began)).Msg("run complete")
	return nil
}

func parseDatasets(s string) (map[string]bool, error) {
	if s == "" {
		return nil, nil
	}
	known := make(map[string]bool, len(gen.AllDatasets))
	for _, d := range gen.AllDatasets {
		known[d] = true
	}
	out := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !known[name] {
			return nil, fmt.Errorf("unknown dataset %q (known: %s)", name, strings.Join(gen.AllDatasets, ", "))
		}
		out[name] = true
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no datasets selected")
	}
	return out, nil
}

func buildSinks(cfg Config) (sink.Sink, []func(), error) {
	var sinks []sink.Sink
	var closers []func()
	for _, kind := range strings.Split(cfg.Sinks, ",") {
		kind = strings.TrimSpace(kind)
		switch kind {
		case "", "file":
			sinks = append(sinks, sink.NewFileSink(cfg.OutDir))
		case "kafka":
			if cfg.KafkaBootstrap == "" {
				return nil, nil, fmt.Errorf("kafka sink requires -kafka-bootstrap")
			}
			sinks = append(sinks, sink.NewKafkaSink(cfg.KafkaBootstrap, cfg.TopicPrefix))
		case "kafka-tx":
			if cfg.KafkaBootstrap == "" || cfg.TxID == "" {
				return nil, nil, fmt.Errorf("kafka-tx sink requires -kafka-bootstrap and -tx-id")
			}
			s, err := sink.NewTxKafkaSink(cfg.KafkaBootstrap, cfg.TopicPrefix, cfg.TxID)
			if err != nil {
				return nil, nil, fmt.Errorf("init kafka-tx sink: %w", err)
			}
			sinks = append(sinks, s)
			closers = append(closers, s.Close)
		case "kv":
			s, err := sink.NewKVSink(cfg.KVBackend, cfg.KVDir)
			if err != nil {
				return nil, nil, fmt.Errorf("init kv sink: %w", err)
			}
			sinks = append(sinks, s)
			closers = append(closers, func() { _ = s.Close() })
		default:
			return nil, nil, fmt.Errorf("unknown sink %q", kind)
		}
	}
	if len(sinks) == 1 {
		return sinks[0], closers, nil
	}
	return sink.NewMultiSink(sinks...), closers, nil
}

func buildManifestPublisher(cfg Config) (manifest.Publisher, error) {
	fs := manifest.NewFilesystemManifest(cfg.OutDir)
	switch cfg.ManifestSink {
	case "", "file":
		return fs, nil
	case "kafka":
		if cfg.KafkaBootstrap == "" {
			return nil, fmt.Errorf("kafka manifest sink requires -kafka-bootstrap")
		}
		return manifest.NewKafkaManifest(cfg.KafkaBootstrap, cfg.ManifestTopic, "dwgen-manifest-latest"), nil
	case "both":
		if cfg.KafkaBootstrap == "" {
			return nil, fmt.Errorf("kafka manifest sink requires -kafka-bootstrap")
		}
		k := manifest.NewKafkaManifest(cfg.KafkaBootstrap, cfg.ManifestTopic, "dwgen-manifest-latest")
		return manifest.MultiPublisher(fs, k), nil
	default:
		return nil, fmt.Errorf("unknown manifest sink %q", cfg.ManifestSink)
	}
}
