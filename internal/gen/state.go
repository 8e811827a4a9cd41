package gen

import "time"

// RunState is the mutable state carried forward across days: the SCD2
// created_at map, the monotonic order-id counter and the FX rate walk.
// It is threaded through the day loop explicitly; generators never keep
// state of their own.
type RunState struct {
	CreatedAt   map[string]time.Time
	NextOrderID int64
	FxRate      float64
}

const (
	firstOrderID   = 100001
	startingFxRate = 1.08
)

func NewRunState() *RunState {
	return &RunState{
		CreatedAt:   make(map[string]time.Time),
		NextOrderID: firstOrderID,
		FxRate:      startingFxRate,
	}
}
