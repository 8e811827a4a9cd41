package gen

import (
	"time"

	"github.com/shopspring/decimal"

	"dwgen/internal/anomaly"
	"dwgen/internal/model"
	"dwgen/internal/rng"
)

// OpDB generates one day of the operational dump: an SCD2 pass over the
// whole customer pool, then a batch of orders with their items. Returns
// the mixed record batch and the number of customer versions emitted.
//
// Order ids come from st.NextOrderID and never reset across days. Orders
// may reference customers that have no emitted version yet: the warehouse
// under test has to tolerate that, mirroring async ingestion.
func OpDB(r *rng.Context, pol anomaly.Policies, customers, skus []string, st *RunState, day time.Time) (rows []Record, versions int) {
	// Customer versions. At most one per customer per day: an entity gets
	// either its first version (new draw) or an update (update draw).
	for _, cid := range customers {
		created, exists := st.CreatedAt[cid]
		switch {
		case !exists && pol.NewVersion(r):
			st.CreatedAt[cid] = day
			rows = append(rows, customerVersion(r, cid, day, day))
			versions++
		case exists && pol.UpdateVersion(r):
			rows = append(rows, customerVersion(r, cid, created, day))
			versions++
		}
	}

	// Orders and their items. Each item list immediately follows its order
	// row, and the order's total is the exact decimal sum of qty*price.
	numOrders := r.IntBetween(40, 80)
	for n := 0; n < numOrders; n++ {
		orderID := st.NextOrderID
		st.NextOrderID++

		cid := r.Choice(customers)
		ts := timeWithinDay(r, day)
		status := r.WeightedChoice(model.OrderStatuses, model.OrderStatusWeights)
		currency := r.Choice(model.Currencies)

		total := decimal.Zero
		numItems := r.IntBetween(1, 5)
		items := make([]Record, 0, numItems)
		for i := 0; i < numItems; i++ {
			sku := r.Choice(skus)
			qty := r.IntBetween(1, 4)
			price := decimal.NewFromFloat(r.Uniform(5, 250)).Round(2)
			total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
			pf, _ := price.Float64()
			items = append(items, model.OrderItemRecord{
				Table:     model.TableOrderItems,
				OrderID:   orderID,
				SKU:       sku,
				Quantity:  qty,
				UnitPrice: pf,
			})
		}
		tf, _ := total.Round(2).Float64()

		rows = append(rows, model.OrderRecord{
			Table:          model.TableOrders,
			OrderID:        orderID,
			CustomerID:     cid,
			OrderTimestamp: ts.Unix(),
			Status:         status,
			Currency:       currency,
			TotalAmount:    tf,
		})
		rows = append(rows, items...)
	}
	return rows, versions
}

func customerVersion(r *rng.Context, cid string, created, opTS time.Time) model.CustomerRecord {
	return model.CustomerRecord{
		Table:      model.TableCustomers,
		CustomerID: cid,
		CreatedAt:  created.Format(time.RFC3339),
		Status:     r.Choice(model.CustomerStatuses),
		Country:    r.Choice(model.Countries),
		OpTS:       opTS.Format(time.RFC3339),
	}
}

// timeWithinDay draws hour, minute, second in that order; the draw order is
// part of the reproducibility contract.
func timeWithinDay(r *rng.Context, day time.Time) time.Time {
	h := r.IntBetween(0, 23)
	m := r.IntBetween(0, 59)
	s := r.IntBetween(0, 59)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, time.UTC)
}
