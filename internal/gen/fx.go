package gen

import (
	"time"

	"dwgen/internal/model"
	"dwgen/internal/rng"
	"dwgen/internal/window"
)

// fxMaxDailyDelta bounds the rate walk so the series stays a controlled
// drift around the starting value rather than an unbounded walk.
const fxMaxDailyDelta = 0.001

// Fx advances the carried EUR->USD rate by a bounded signed delta and emits
// the day's rate. This stream has no anomaly injection: it models a
// reference series that must be continuous, so every day is emitted exactly
// once.
func Fx(r *rng.Context, st *RunState, day time.Time) Record {
	st.FxRate += r.Uniform(-fxMaxDailyDelta, fxMaxDailyDelta)
	return model.FxRate{
		Date:   day.Format(window.DateLayout),
		EurUsd: round4(st.FxRate),
	}
}
