package bookings

import (
	"strconv"
	"sync"
	"testing"

	"tablebook/models"
)

func testSlot(tables, capacity int) models.Slot {
	return models.Slot{
		SlotID:        "s1",
		RestaurantID:  "r1",
		Date:          "2025-06-02",
		Time:          "06:30 PM",
		TotalTables:   tables,
		TableCapacity: capacity,
		Status:        models.SlotOpen,
		Available:     true,
	}
}

func testBookings(peoples ...int) []models.Booking {
	out := make([]models.Booking, 0, len(peoples))
	for _, p := range peoples {
		out = append(out, models.Booking{
			RestaurantID: "r1",
			Date:         "2025-06-02",
			Time:         "06:30 PM",
			People:       p,
		})
	}
	return out
}

func TestEvaluateCapacityAdmits(t *testing.T) {
	slot := testSlot(1, 3) // capacity 3

	admit, newTotal := EvaluateCapacity(slot, testBookings(2), 1)
	if !admit {
		t.Error("expected admission at exact capacity")
	}
	if newTotal != 3 {
		t.Errorf("newTotal = %d, want 3", newTotal)
	}
}

func TestEvaluateCapacityRejectsOverCapacity(t *testing.T) {
	slot := testSlot(1, 3)

	admit, newTotal := EvaluateCapacity(slot, testBookings(2, 1), 1)
	if admit {
		t.Error("expected rejection on a full slot")
	}
	if newTotal != 4 {
		t.Errorf("newTotal = %d, want 4", newTotal)
	}
}

func TestEvaluateCapacityEmptySlot(t *testing.T) {
	slot := testSlot(2, 4) // capacity 8

	admit, newTotal := EvaluateCapacity(slot, nil, 8)
	if !admit {
		t.Error("expected admission filling an empty slot exactly")
	}
	if newTotal != 8 {
		t.Errorf("newTotal = %d, want 8", newTotal)
	}

	admit, _ = EvaluateCapacity(slot, nil, 9)
	if admit {
		t.Error("expected rejection above capacity on an empty slot")
	}
}

func TestNextSlotStatusFlipsWhenFull(t *testing.T) {
	slot := testSlot(2, 3) // capacity 6

	if got := NextSlotStatus(slot.Status, 5, slot.Capacity()); got != models.SlotOpen {
		t.Errorf("status at 5/6 seats = %q, want open", got)
	}
	if got := NextSlotStatus(slot.Status, 6, slot.Capacity()); got != models.SlotBooked {
		t.Errorf("status at 6/6 seats = %q, want booked", got)
	}
	if got := NextSlotStatus(slot.Status, 7, slot.Capacity()); got != models.SlotBooked {
		t.Errorf("status at 7/6 seats = %q, want booked", got)
	}
}

// A filled slot keeps its booked status when bookings are deleted and
// seats free up again; only an explicit owner update re-opens it.
func TestNextSlotStatusNeverReverts(t *testing.T) {
	slot := testSlot(1, 3)

	status := NextSlotStatus(slot.Status, slot.Capacity(), slot.Capacity())
	if status != models.SlotBooked {
		t.Fatalf("status after filling = %q, want booked", status)
	}

	for _, remaining := range []int{2, 1, 0} {
		status = NextSlotStatus(status, remaining, slot.Capacity())
		if status != models.SlotBooked {
			t.Errorf("status at %d remaining seats = %q, want booked", remaining, status)
		}
	}
}

// Admission under the slot lock must never overshoot: many goroutines
// racing for the same slot admit at most capacity seats in total.
func TestConcurrentAdmissionDoesNotOvershoot(t *testing.T) {
	slot := testSlot(1, 3) // capacity 3, each request wants 3

	locks := newSlotLocks()
	key := SlotKey(slot.RestaurantID, slot.Date, slot.Time)

	var existing []models.Booking
	admitted := 0

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock(key)
			defer locks.Unlock(key)

			admit, _ := EvaluateCapacity(slot, existing, 3)
			if admit {
				existing = append(existing, models.Booking{People: 3})
				admitted++
			}
		}()
	}
	wg.Wait()

	if admitted != 1 {
		t.Errorf("admitted = %d bookings of 3 seats against capacity 3, want 1", admitted)
	}

	total := 0
	for _, b := range existing {
		total += b.People
	}
	if total > slot.Capacity() {
		t.Errorf("booked %d seats, capacity %d overshot", total, slot.Capacity())
	}
}

// The lock map must not grow with the key space: clients choose the
// (restaurant, date, time) triple freely, so entries have to go away
// once the last holder releases them.
func TestSlotLocksEvictReleasedKeys(t *testing.T) {
	locks := newSlotLocks()

	for i := 0; i < 10000; i++ {
		key := SlotKey("r1", "2025-06-02", strconv.Itoa(i))
		locks.Lock(key)
		locks.Unlock(key)
	}

	locks.mu.Lock()
	n := len(locks.locks)
	locks.mu.Unlock()
	if n != 0 {
		t.Errorf("lock map holds %d entries after release, want 0", n)
	}
}

func TestSlotLocksKeepContendedKeys(t *testing.T) {
	locks := newSlotLocks()
	key := SlotKey("r1", "2025-06-02", "06:30 PM")

	locks.Lock(key)

	locks.mu.Lock()
	_, held := locks.locks[key]
	locks.mu.Unlock()
	if !held {
		t.Error("held key missing from lock map")
	}

	locks.Unlock(key)

	locks.mu.Lock()
	_, held = locks.locks[key]
	locks.mu.Unlock()
	if held {
		t.Error("released key still in lock map")
	}
}

func TestSlotLocksIndependentKeys(t *testing.T) {
	locks := newSlotLocks()

	locks.Lock(SlotKey("r1", "2025-06-02", "06:30 PM"))
	done := make(chan struct{})
	go func() {
		// a different slot must not be blocked
		locks.Lock(SlotKey("r2", "2025-06-02", "06:30 PM"))
		locks.Unlock(SlotKey("r2", "2025-06-02", "06:30 PM"))
		close(done)
	}()
	<-done
	locks.Unlock(SlotKey("r1", "2025-06-02", "06:30 PM"))
}
