package model

import "fmt"

// Domain vocabulary the stream generators draw from.
var (
	Categories = []string{"electronics", "books", "sports", "beauty", "toys", "fashion", "home"}
	Countries  = []string{"KZ", "US", "GB", "DE", "AE", "CY", "NL", "SE", "SG", "AU"}

	OrderStatuses      = []string{"new", "paid", "shipped", "cancelled"}
	OrderStatusWeights = []float64{0.6, 0.25, 0.1, 0.05}

	CustomerStatuses = []string{"active", "blocked"}
	Currencies       = []string{"USD", "EUR"}

	EventTypes       = []string{"page_view", "add_to_cart", "checkout_start", "purchase"}
	EventTypeWeights = []float64{0.6, 0.25, 0.1, 0.05}

	Devices = []string{"mobile", "desktop", "tablet"}
)

// Default pool sizes.
const (
	DefaultSKUCount      = 100
	DefaultCustomerCount = 200
)

// SKUPool allocates the fixed SKU identifier space: SKU-0001..SKU-nnnn.
// The pool is stable across all days of a run.
func SKUPool(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("SKU-%04d", i+1)
	}
	return out
}

// CustomerPool allocates the fixed customer identifier space: C1000, C1001, ...
// Membership never changes during a run; only customer versions do.
func CustomerPool(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("C%d", 1000+i)
	}
	return out
}

// Table discriminators for operational dump records.
const (
	TableCustomers  = "customers"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
)

// CatalogRow is one SKU's attributes as of a snapshot day.
type CatalogRow struct {
	SKU          string  `json:"sku"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	UnitCost     float64 `json:"unit_cost"`
	ActiveFlag   bool    `json:"active_flag"`
	SnapshotDate string  `json:"snapshot_date"`
}

// FxRate is one day's EUR->USD reference rate.
type FxRate struct {
	Date   string  `json:"date"`
	EurUsd float64 `json:"eur_usd"`
}

// CustomerRecord is one SCD2 version of a customer. CreatedAt is assigned
// by the first version and reused verbatim by every later version; OpTS is
// the effective timestamp of this version.
type CustomerRecord struct {
	Table      string `json:"table"`
	CustomerID string `json:"customer_id"`
	CreatedAt  string `json:"created_at"`
	Status     string `json:"status"`
	Country    string `json:"country"`
	OpTS       string `json:"op_ts"`
}

// OrderRecord carries epoch-second timestamps for easy TIMESTAMP conversion
// on the warehouse side.
type OrderRecord struct {
	Table          string  `json:"table"`
	OrderID        int64   `json:"order_id"`
	CustomerID     string  `json:"customer_id"`
	OrderTimestamp int64   `json:"order_timestamp"`
	Status         string  `json:"status"`
	Currency       string  `json:"currency"`
	TotalAmount    float64 `json:"total_amount"`
}

type OrderItemRecord struct {
	Table     string  `json:"table"`
	OrderID   int64   `json:"order_id"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// WebEvent is one click-stream event. Duplicates keep the same EventID;
// late copies keep it too, with the timestamp shifted back.
type WebEvent struct {
	EventID    string `json:"event_id"`
	TS         string `json:"ts"`
	CustomerID string `json:"customer_id"`
	Event      string `json:"event"`
	SKU        string `json:"sku"`
	Device     string `json:"device"`
}
