package models

import "time"

type Restaurant struct {
	RestaurantID string    `json:"restaurantId" bson:"restaurantId"`
	Name         string    `json:"name" bson:"name"`
	Address      string    `json:"address" bson:"address"`
	Contact      string    `json:"contact" bson:"contact"`
	Image        string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

type Owner struct {
	OwnerID      string    `json:"ownerId" bson:"ownerId"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Password     string    `json:"-" bson:"password"`
	RestaurantID string    `json:"restaurantId" bson:"restaurantId"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

const (
	SlotOpen   = "open"
	SlotBooked = "booked"
)

// Slot is one bookable time window at one restaurant on one calendar day.
// Time is the canonical "HH:MM AM/PM" string; it is the join key bookings
// are matched on. Status is authoritative; Available is a legacy flag kept
// for owner-side overrides.
type Slot struct {
	SlotID        string    `json:"slotId" bson:"slotId"`
	RestaurantID  string    `json:"restaurantId" bson:"restaurantId"`
	Date          string    `json:"date" bson:"date"` // YYYY-MM-DD
	Time          string    `json:"time" bson:"time"` // HH:MM AM/PM
	TotalTables   int       `json:"totalTables" bson:"totalTables"`
	TableCapacity int       `json:"tableCapacity" bson:"tableCapacity"`
	Status        string    `json:"status" bson:"status"`
	Available     bool      `json:"available" bson:"available"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Capacity is the seat ceiling for the slot.
func (s Slot) Capacity() int {
	return s.TotalTables * s.TableCapacity
}

// Booking references its slot by (restaurantId, date, time), not by slot
// id. Time is always stored canonicalized so the match holds.
type Booking struct {
	BookingID    string    `json:"bookingId" bson:"bookingId"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	Date         string    `json:"date" bson:"date"`
	Time         string    `json:"time" bson:"time"`
	People       int       `json:"people" bson:"people"`
	Message      string    `json:"message,omitempty" bson:"message,omitempty"`
	RestaurantID string    `json:"restaurantId" bson:"restaurantId"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
