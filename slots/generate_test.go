package slots

import (
	"testing"
	"time"

	"tablebook/models"
)

func TestWeeklyCandidatesCount(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// 10:00 AM to 1:00 PM at 30-minute steps: 6 per day, 7 days
	got, err := WeeklyCandidates("r1", start, "10:00 AM", "1:00 PM", 30, 4, 2)
	if err != nil {
		t.Fatalf("WeeklyCandidates: %v", err)
	}
	if len(got) != 7*6 {
		t.Fatalf("candidate count = %d, want %d", len(got), 7*6)
	}

	first := got[0]
	if first.Date != "2025-06-02" || first.Time != "10:00 AM" {
		t.Errorf("first candidate = %s %s, want 2025-06-02 10:00 AM", first.Date, first.Time)
	}
	if first.Status != models.SlotOpen || !first.Available {
		t.Errorf("candidate status = %s/%v, want open/true", first.Status, first.Available)
	}
	if first.TotalTables != 4 || first.TableCapacity != 2 {
		t.Errorf("candidate tables = %d x %d, want 4 x 2", first.TotalTables, first.TableCapacity)
	}

	// step strictly before close: nothing at 1:00 PM itself
	last := got[5]
	if last.Time != "12:30 PM" {
		t.Errorf("last step of day = %s, want 12:30 PM", last.Time)
	}

	// 7 distinct consecutive days
	days := map[string]int{}
	for _, c := range got {
		days[c.Date]++
	}
	if len(days) != 7 {
		t.Errorf("distinct days = %d, want 7", len(days))
	}
	if days["2025-06-08"] != 6 {
		t.Errorf("slots on final day = %d, want 6", days["2025-06-08"])
	}
}

func TestWeeklyCandidatesCloseBeforeOpen(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	got, err := WeeklyCandidates("r1", start, "5:00 PM", "9:00 AM", 30, 1, 4)
	if err != nil {
		t.Fatalf("WeeklyCandidates: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("candidate count = %d, want 0 when close <= open", len(got))
	}

	got, err = WeeklyCandidates("r1", start, "9:00 AM", "9:00 AM", 30, 1, 4)
	if err != nil {
		t.Fatalf("WeeklyCandidates equal times: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("candidate count = %d, want 0 when close == open", len(got))
	}
}

func TestWeeklyCandidatesIgnoresTimeOfDay(t *testing.T) {
	// two starts on the same calendar day, one near midnight in a distant
	// zone, must produce identical dates
	loc := time.FixedZone("TEST", -11*3600)
	a := time.Date(2025, 6, 2, 23, 59, 0, 0, loc)
	b := time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC)

	slotsA, err := WeeklyCandidates("r1", a, "9:00 AM", "10:00 AM", 60, 1, 2)
	if err != nil {
		t.Fatalf("WeeklyCandidates: %v", err)
	}
	slotsB, err := WeeklyCandidates("r1", b, "9:00 AM", "10:00 AM", 60, 1, 2)
	if err != nil {
		t.Fatalf("WeeklyCandidates: %v", err)
	}
	if len(slotsA) != len(slotsB) {
		t.Fatalf("counts differ: %d vs %d", len(slotsA), len(slotsB))
	}
	for i := range slotsA {
		if slotsA[i].Date != slotsB[i].Date {
			t.Errorf("day %d: dates differ %s vs %s", i, slotsA[i].Date, slotsB[i].Date)
		}
	}
}

func TestWeeklyCandidatesInvalidInput(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	if _, err := WeeklyCandidates("r1", start, "9:00 AM", "5:00 PM", 0, 1, 4); err == nil {
		t.Error("expected error for zero interval")
	}
	if _, err := WeeklyCandidates("r1", start, "nine", "5:00 PM", 30, 1, 4); err == nil {
		t.Error("expected error for malformed openTime")
	}
}

func TestWeeklyCandidatesNoInternalDuplicates(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	got, err := WeeklyCandidates("r1", start, "9:00 AM", "9:00 PM", 15, 2, 4)
	if err != nil {
		t.Fatalf("WeeklyCandidates: %v", err)
	}
	seen := map[string]bool{}
	for _, c := range got {
		key := c.Date + "|" + c.Time
		if seen[key] {
			t.Fatalf("duplicate candidate %s", key)
		}
		seen[key] = true
	}
}
