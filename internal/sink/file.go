package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileSink writes one JSONL file per (dataset, day) under
// baseDir/<dataset>/<dataset>_YYYY-MM-DD.jsonl. The file is staged as a
// temp file and renamed into place, so a reader never observes a partial
// day.
type FileSink struct {
	baseDir string
}

func NewFileSink(baseDir string) *FileSink {
	return &FileSink{baseDir: baseDir}
}

func (s *FileSink) Write(dataset string, day time.Time, records []Record) error {
	dir := filepath.Join(s.baseDir, dataset)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+dataset+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			tmp.Close()
			return fmt.Errorf("encode: %w", err)
		}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	final := filepath.Join(dir, fmt.Sprintf("%s_%s.jsonl", dataset, DayKey(day)))
	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
