package gen

import (
	"time"

	"github.com/google/uuid"

	"dwgen/internal/anomaly"
	"dwgen/internal/model"
	"dwgen/internal/rng"
)

// WebEvents generates one day of click-stream events with duplicate and
// late-arrival injection. Both policies are checked against the same base
// event, so a single logical event can show up three times: original,
// exact duplicate, and a copy with the timestamp shifted back 36h under
// the same event id. Returns the batch plus the injected-copy counts.
func WebEvents(r *rng.Context, pol anomaly.Policies, customers, skus []string, day time.Time) (rows []Record, dups, lates int) {
	numEvents := r.IntBetween(400, 700)
	rows = make([]Record, 0, numEvents)
	for n := 0; n < numEvents; n++ {
		// uuid reads 16 bytes from the shared RNG stream; the context's
		// Read never fails.
		id, _ := uuid.NewRandomFromReader(r)
		ts := timeWithinDay(r, day)
		ev := model.WebEvent{
			EventID:    id.String(),
			TS:         ts.Format(time.RFC3339),
			CustomerID: r.Choice(customers),
			Event:      r.WeightedChoice(model.EventTypes, model.EventTypeWeights),
			SKU:        r.Choice(skus),
			Device:     r.Choice(model.Devices),
		}
		rows = append(rows, ev)

		if pol.Duplicate(r) {
			rows = append(rows, ev)
			dups++
		}
		if pol.LateArrival(r) {
			late := ev
			late.TS = ts.Add(-anomaly.LateDelay).Format(time.RFC3339)
			rows = append(rows, late)
			lates++
		}
	}
	return rows, dups, lates
}
