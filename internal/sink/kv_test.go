package sink

import (
	"strings"
	"testing"
	"time"
)

func TestKVSink_Backends(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for _, backend := range []string{"pebble", "badger"} {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			s, err := NewKVSink(backend, t.TempDir())
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer s.Close()

			recs := []Record{row{SKU: "SKU-0001"}, row{SKU: "SKU-0002"}}
			if err := s.Write("catalog", day, recs); err != nil {
				t.Fatalf("write: %v", err)
			}

			var keys []string
			if err := s.db.rangeAll(func(k, v []byte) error {
				keys = append(keys, string(k))
				return nil
			}); err != nil {
				t.Fatalf("range: %v", err)
			}
			if len(keys) != 2 {
				t.Fatalf("want 2 keys, got %d", len(keys))
			}
			for _, k := range keys {
				if !strings.HasPrefix(k, "catalog/2024-01-02/") {
					t.Fatalf("bad key: %s", k)
				}
			}
		})
	}
}

func TestKVSink_UnknownBackend(t *testing.T) {
	if _, err := NewKVSink("etcd", t.TempDir()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
