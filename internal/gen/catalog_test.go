package gen

import (
	"reflect"
	"testing"
	"time"

	"dwgen/internal/anomaly"
	"dwgen/internal/model"
	"dwgen/internal/rng"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCatalog_ThreeDaysNoSkips(t *testing.T) {
	r := rng.New(42)
	pol := anomaly.Policies{SkipProb: 0}
	skus := model.SKUPool(model.DefaultSKUCount)
	days := []time.Time{day(2024, 1, 1), day(2024, 1, 2), day(2024, 1, 3)}

	for _, d := range days {
		rows, skipped := Catalog(r, pol, skus, d)
		if skipped {
			t.Fatalf("day %s skipped with skip-prob 0", d)
		}
		if len(rows) != len(skus) {
			t.Fatalf("day %s: want %d rows, got %d", d, len(skus), len(rows))
		}
		seen := make(map[string]bool, len(rows))
		for _, rec := range rows {
			row := rec.(model.CatalogRow)
			if row.SnapshotDate != d.Format("2006-01-02") {
				t.Fatalf("snapshot date %s != day %s", row.SnapshotDate, d)
			}
			if seen[row.SKU] {
				t.Fatalf("duplicate SKU %s in one snapshot", row.SKU)
			}
			seen[row.SKU] = true
			if row.Title != "Product "+row.SKU {
				t.Fatalf("title not derived from SKU: %q", row.Title)
			}
			if row.UnitCost < 1.0 || row.UnitCost >= 120.0 {
				t.Fatalf("unit cost out of range: %v", row.UnitCost)
			}
		}
	}
}

func TestCatalog_SkipAlways(t *testing.T) {
	r := rng.New(42)
	pol := anomaly.Policies{SkipProb: 1}
	skus := model.SKUPool(10)
	for i := 0; i < 20; i++ {
		rows, skipped := Catalog(r, pol, skus, day(2024, 1, 1+i))
		if !skipped {
			t.Fatalf("day %d not skipped with skip-prob 1", i)
		}
		if rows != nil {
			t.Fatalf("skipped day produced rows")
		}
	}
}

func TestCatalog_Deterministic(t *testing.T) {
	skus := model.SKUPool(model.DefaultSKUCount)
	pol := anomaly.Policies{SkipProb: 0.15}
	gen := func() []Record {
		r := rng.New(42)
		var all []Record
		for i := 0; i < 10; i++ {
			rows, _ := Catalog(r, pol, skus, day(2024, 1, 1+i))
			all = append(all, rows...)
		}
		return all
	}
	if !reflect.DeepEqual(gen(), gen()) {
		t.Fatalf("same seed produced different catalogs")
	}
}

func TestCatalog_CostRoundedToCents(t *testing.T) {
	r := rng.New(7)
	rows, _ := Catalog(r, anomaly.Policies{}, model.SKUPool(100), day(2024, 5, 5))
	for _, rec := range rows {
		row := rec.(model.CatalogRow)
		cents := row.UnitCost * 100
		if diff := cents - float64(int64(cents+0.5)); diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("unit cost not rounded to 2 decimals: %v", row.UnitCost)
		}
	}
}
