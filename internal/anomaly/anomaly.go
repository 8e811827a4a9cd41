package anomaly

import (
	"fmt"
	"time"

	"dwgen/internal/rng"
)

// LateDelay is how far back a late copy's timestamp is shifted.
const LateDelay = 36 * time.Hour

// Policies holds the per-stream injection probabilities. Each policy is an
// independent Bernoulli draw against the shared RNG context; duplicate and
// late may both fire for the same base record, so a single logical event
// can appear as original + duplicate + late copy.
type Policies struct {
	SkipProb   float64 `json:"skipProb"`
	DupProb    float64 `json:"dupProb"`
	LateProb   float64 `json:"lateProb"`
	NewProb    float64 `json:"newProb"`
	UpdateProb float64 `json:"updateProb"`
}

// Validate rejects any probability outside [0,1]. Called once at startup;
// the draw helpers assume validated inputs.
func (p Policies) Validate() error {
	for _, pr := range []struct {
		name string
		v    float64
	}{
		{"skip-prob", p.SkipProb},
		{"dup-prob", p.DupProb},
		{"late-prob", p.LateProb},
		{"new-prob", p.NewProb},
		{"update-prob", p.UpdateProb},
	} {
		if pr.v < 0 || pr.v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", pr.name, pr.v)
		}
	}
	return nil
}

// SkipDay reports whether a whole snapshot day is omitted from output.
func (p Policies) SkipDay(r *rng.Context) bool { return r.Bool(p.SkipProb) }

// Duplicate reports whether an identical copy of a record is re-emitted.
func (p Policies) Duplicate(r *rng.Context) bool { return r.Bool(p.DupProb) }

// LateArrival reports whether a copy shifted back by LateDelay is emitted.
func (p Policies) LateArrival(r *rng.Context) bool { return r.Bool(p.LateProb) }

// NewVersion reports whether an entity without a version gets its first one.
func (p Policies) NewVersion(r *rng.Context) bool { return r.Bool(p.NewProb) }

// UpdateVersion reports whether an existing entity gets a fresh version.
func (p Policies) UpdateVersion(r *rng.Context) bool { return r.Bool(p.UpdateProb) }
