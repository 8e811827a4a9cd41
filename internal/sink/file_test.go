package sink

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type row struct {
	SKU  string  `json:"sku"`
	Cost float64 `json:"cost"`
}

func TestFileSink_WriteReadBack(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(dir)
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	recs := []Record{
		row{SKU: "SKU-0001", Cost: 10.5},
		row{SKU: "SKU-0002", Cost: 99.99},
	}
	if err := s.Write("catalog", day, recs); err != nil {
		t.Fatalf("write: %v", err)
	}

	fpath := filepath.Join(dir, "catalog", "catalog_2024-01-02.jsonl")
	f, err := os.Open(fpath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var got []row
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r row
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		got = append(got, r)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 lines, got %d", len(got))
	}
	if got[0].SKU != "SKU-0001" || got[1].Cost != 99.99 {
		t.Fatalf("mismatch: %+v", got)
	}
}

func TestFileSink_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(dir)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := s.Write("fx_rates", day, []Record{row{SKU: "x"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "fx_rates"))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 file, got %d", len(entries))
	}
}

func TestFileSink_OverwritesSameDay(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(dir)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := s.Write("opdb", day, []Record{row{SKU: "a"}, row{SKU: "b"}}); err != nil {
		t.Fatalf("write1: %v", err)
	}
	if err := s.Write("opdb", day, []Record{row{SKU: "c"}}); err != nil {
		t.Fatalf("write2: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "opdb", "opdb_2024-03-01.jsonl"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Count(string(data), "\n")
	if lines != 1 {
		t.Fatalf("want 1 line after rewrite, got %d", lines)
	}
}
