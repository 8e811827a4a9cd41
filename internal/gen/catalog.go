package gen

import (
	"time"

	"dwgen/internal/anomaly"
	"dwgen/internal/model"
	"dwgen/internal/rng"
	"dwgen/internal/window"
)

// Catalog emits one row per SKU in the fixed pool for the given day, or
// nothing when the skip draw fires. A skipped day produces no sink write
// at all, never an empty file. The skip draw is taken before any row
// generation so skipping consumes exactly one draw.
func Catalog(r *rng.Context, pol anomaly.Policies, skus []string, day time.Time) (rows []Record, skipped bool) {
	if pol.SkipDay(r) {
		return nil, true
	}
	date := day.Format(window.DateLayout)
	rows = make([]Record, 0, len(skus))
	for _, sku := range skus {
		rows = append(rows, model.CatalogRow{
			SKU:          sku,
			Title:        "Product " + sku,
			Category:     r.Choice(model.Categories),
			UnitCost:     round2(r.Uniform(1.0, 120.0)),
			ActiveFlag:   r.Bool(0.75),
			SnapshotDate: date,
		})
	}
	return rows, false
}
