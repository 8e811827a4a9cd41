package sink

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cockroachdb/pebble"
	badger "github.com/dgraph-io/badger/v4"
)

// KVSink stores records under dataset/YYYY-MM-DD/NNNNNN keys. Each day is
// committed as one batch, so readers see all of a day's keys or none.
type KVSink struct {
	db kvdb
}

type kvPair struct {
	key []byte
	val []byte
}

// kvdb abstracts the batch-capable key-value backends.
type kvdb interface {
	setBatch(pairs []kvPair) error
	rangeAll(fn func(key, val []byte) error) error
	Close() error
}

// NewKVSink opens a KV sink. backend is "pebble" or "badger".
func NewKVSink(backend string, dir string) (*KVSink, error) {
	switch backend {
	case "pebble":
		db, err := openPebbleKV(dir)
		if err != nil {
			return nil, err
		}
		return &KVSink{db: db}, nil
	case "badger":
		db, err := openBadgerKV(dir)
		if err != nil {
			return nil, err
		}
		return &KVSink{db: db}, nil
	default:
		return nil, fmt.Errorf("unknown kv backend %q", backend)
	}
}

func (s *KVSink) Write(dataset string, day time.Time, records []Record) error {
	pairs := make([]kvPair, 0, len(records))
	for i, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		k := fmt.Sprintf("%s/%s/%06d", dataset, DayKey(day), i)
		pairs = append(pairs, kvPair{key: []byte(k), val: b})
	}
	if err := s.db.setBatch(pairs); err != nil {
		return fmt.Errorf("kv batch: %w", err)
	}
	return nil
}

func (s *KVSink) Close() error { return s.db.Close() }

// pebbleKV commits each day's pairs in one synced Pebble batch.
type pebbleKV struct {
	db *pebble.DB
}

func openPebbleKV(dir string) (*pebbleKV, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &pebbleKV{db: d}, nil
}

func (p *pebbleKV) setBatch(pairs []kvPair) error {
	wb := p.db.NewBatch()
	defer wb.Close()
	for _, kv := range pairs {
		if err := wb.Set(kv.key, kv.val, nil); err != nil {
			return err
		}
	}
	return wb.Commit(pebble.Sync)
}

func (p *pebbleKV) rangeAll(fn func(key, val []byte) error) error {
	it, err := p.db.NewIter(nil)
	if err != nil {
		return err
	}
	defer it.Close()
	for it.First(); it.Valid(); it.Next() {
		k := append([]byte(nil), it.Key()...)
		v := append([]byte(nil), it.Value()...)
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (p *pebbleKV) Close() error { return p.db.Close() }

// badgerKV commits each day's pairs in one Badger transaction.
type badgerKV struct {
	db *badger.DB
}

func openBadgerKV(dir string) (*badgerKV, error) {
	opts := badger.DefaultOptions(filepath.Clean(dir))
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger open: %w", err)
	}
	return &badgerKV{db: db}, nil
}

func (b *badgerKV) setBatch(pairs []kvPair) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, kv := range pairs {
			if err := txn.Set(kv.key, kv.val); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerKV) rangeAll(fn func(key, val []byte) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			k := item.KeyCopy(nil)
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerKV) Close() error { return b.db.Close() }
