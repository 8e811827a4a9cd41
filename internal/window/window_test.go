package window

import (
	"testing"
	"time"
)

func TestDaysRejectsNonPositive(t *testing.T) {
	if _, err := Days(0, time.Time{}, false, 0); err == nil {
		t.Fatalf("expected error for days=0")
	}
	if _, err := Days(-3, time.Time{}, false, 0); err == nil {
		t.Fatalf("expected error for days=-3")
	}
}

func TestDaysExplicitStart(t *testing.T) {
	start, _ := ParseDate("2024-01-01")
	days, err := Days(3, start, true, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if len(days) != len(want) {
		t.Fatalf("want %d days, got %d", len(want), len(days))
	}
	for i, d := range days {
		if d.Format(DateLayout) != want[i] {
			t.Fatalf("day %d: want %s, got %s", i, want[i], d.Format(DateLayout))
		}
	}
}

func TestDaysOffsetShiftsWindow(t *testing.T) {
	start, _ := ParseDate("2024-01-10")
	days, err := Days(2, start, true, -7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := days[0].Format(DateLayout); got != "2024-01-03" {
		t.Fatalf("offset not applied: got %s", got)
	}
	if got := days[1].Format(DateLayout); got != "2024-01-04" {
		t.Fatalf("offset not applied to day 2: got %s", got)
	}
}

func TestDaysConsecutiveNoGaps(t *testing.T) {
	start, _ := ParseDate("2024-02-27") // crosses a leap-year boundary
	days, err := Days(5, start, true, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) != 24*time.Hour {
			t.Fatalf("gap between %s and %s", days[i-1], days[i])
		}
	}
	if got := days[2].Format(DateLayout); got != "2024-02-29" {
		t.Fatalf("leap day missing, got %s", got)
	}
}

func TestDaysDefaultEndsNearNow(t *testing.T) {
	fixed := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)
	old := NowUTC
	NowUTC = func() time.Time { return fixed }
	defer func() { NowUTC = old }()

	days, err := Days(7, time.Time{}, false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := days[0].Format(DateLayout); got != "2024-06-08" {
		t.Fatalf("default start: got %s", got)
	}
	if got := days[6].Format(DateLayout); got != "2024-06-14" {
		t.Fatalf("default end: got %s", got)
	}
}
