package bookings

import "tablebook/models"

// EvaluateCapacity decides whether a booking for people seats fits the
// slot given the bookings already recorded against it. newTotal is the
// headcount the slot would carry if admitted. The caller is responsible
// for flipping the slot to booked when newTotal reaches capacity.
func EvaluateCapacity(slot models.Slot, existing []models.Booking, people int) (admit bool, newTotal int) {
	newTotal = people
	for _, b := range existing {
		newTotal += b.People
	}
	return newTotal <= slot.Capacity(), newTotal
}

// NextSlotStatus returns the status a slot should carry once its booked
// headcount is total. A slot flips to booked when it fills and keeps its
// current status otherwise, so a booked slot never reverts to open when
// seats free up. Re-opening is an explicit owner action via slot update.
func NextSlotStatus(current string, total, capacity int) string {
	if total >= capacity {
		return models.SlotBooked
	}
	return current
}
