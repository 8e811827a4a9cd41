package anomaly

import (
	"testing"

	"dwgen/internal/rng"
)

func TestValidateAcceptsBounds(t *testing.T) {
	p := Policies{SkipProb: 0, DupProb: 1, LateProb: 0.5, NewProb: 0.15, UpdateProb: 0.02}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []Policies{
		{SkipProb: -0.1},
		{DupProb: 1.1},
		{LateProb: -1},
		{NewProb: 2},
		{UpdateProb: -0.001},
	}
	for i, p := range cases {
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, p)
		}
	}
}

func TestDrawExtremes(t *testing.T) {
	r := rng.New(42)
	always := Policies{SkipProb: 1, DupProb: 1, LateProb: 1, NewProb: 1, UpdateProb: 1}
	never := Policies{}
	for i := 0; i < 100; i++ {
		if !always.SkipDay(r) || !always.Duplicate(r) || !always.LateArrival(r) ||
			!always.NewVersion(r) || !always.UpdateVersion(r) {
			t.Fatalf("p=1 draw returned false")
		}
		if never.SkipDay(r) || never.Duplicate(r) || never.LateArrival(r) ||
			never.NewVersion(r) || never.UpdateVersion(r) {
			t.Fatalf("p=0 draw returned true")
		}
	}
}
