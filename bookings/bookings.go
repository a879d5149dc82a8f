package bookings

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"time"

	"tablebook/db"
	"tablebook/models"
	"tablebook/mq"
	"tablebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Handler carries the booking handlers' collaborators. The hub and mailer
// are injected at startup rather than reached through package globals.
type Handler struct {
	Hub    *Hub
	Mailer *Mailer
	locks  *slotLocks
}

func NewHandler(hub *Hub, mailer *Mailer) *Handler {
	return &Handler{
		Hub:    hub,
		Mailer: mailer,
		locks:  newSlotLocks(),
	}
}

// CreateBooking handles POST /api/bookings. The requested time is
// canonicalized before the slot lookup and stored canonicalized on the
// booking, since the time string is the only join key between the two.
// Admission runs under the slot key's lock so concurrent requests cannot
// jointly overshoot capacity.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		Date         string `json:"date"`
		Time         string `json:"time"`
		People       int    `json:"people"`
		Message      string `json:"message"`
		RestaurantID string `json:"restaurantId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if body.Name == "" || body.Email == "" || body.Phone == "" || body.Date == "" ||
		body.Time == "" || body.People <= 0 || body.RestaurantID == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	formattedTime := utils.To12Hour(body.Time)

	key := SlotKey(body.RestaurantID, body.Date, formattedTime)
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := db.SlotCollection.FindOne(ctx, bson.M{
		"restaurantId": body.RestaurantID,
		"date":         body.Date,
		"time":         formattedTime,
	}).Decode(&slot)
	if err != nil {
		http.Error(w, "Slot not found", http.StatusNotFound)
		return
	}

	cur, err := db.BookingsCollection.Find(ctx, bson.M{
		"restaurantId": body.RestaurantID,
		"date":         body.Date,
		"time":         formattedTime,
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)
	var existing []models.Booking
	if err := cur.All(ctx, &existing); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	admit, newTotal := EvaluateCapacity(slot, existing, body.People)
	if !admit {
		http.Error(w, "Not enough capacity in this slot", http.StatusBadRequest)
		return
	}

	booking := models.Booking{
		BookingID:    "b" + utils.GenerateRandomDigitString(12),
		Name:         body.Name,
		Email:        body.Email,
		Phone:        body.Phone,
		Date:         body.Date,
		Time:         formattedTime,
		People:       body.People,
		Message:      body.Message,
		RestaurantID: body.RestaurantID,
		CreatedAt:    time.Now(),
	}
	if _, err := db.BookingsCollection.InsertOne(ctx, booking); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if next := NextSlotStatus(slot.Status, newTotal, slot.Capacity()); next != slot.Status {
		_, err := db.SlotCollection.UpdateOne(ctx,
			bson.M{"slotId": slot.SlotID},
			bson.M{"$set": bson.M{"status": next}},
		)
		if err != nil {
			log.Printf("Slot status update failed for %s: %v", slot.SlotID, err)
		}
	}

	h.Hub.Broadcast(booking.RestaurantID, "new-booking", booking)
	go mq.Emit(context.Background(), "booking-created", mq.Index{
		EntityType:   "booking",
		Method:       "POST",
		EntityId:     booking.BookingID,
		RestaurantId: booking.RestaurantID,
	})

	// confirmation is best effort; the booking stands even if this fails
	go func(b models.Booking) {
		if err := h.Mailer.SendBookingEmail(b.Email, b); err != nil {
			log.Printf("Confirmation email failed for %s: %v", b.BookingID, err)
		}
	}(booking)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Table booked successfully",
		"booking": booking,
	})
}

// GetBookingsForOwner handles GET /api/bookings/owner, paginated and
// scoped to the restaurant in the bearer token. Secondary sort on time
// keeps same-day bookings in service order.
func (h *Handler) GetBookingsForOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	restaurantID := utils.GetRestaurantIDFromRequest(r)
	if restaurantID == "" {
		http.Error(w, "Invalid owner", http.StatusUnauthorized)
		return
	}
	opts := utils.ParseQueryOptions(r, "date")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"restaurantId": restaurantID}

	total, err := db.BookingsCollection.CountDocuments(ctx, filter)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sort := bson.D{{Key: opts.SortField, Value: opts.SortOrder}}
	if opts.SortField != "time" {
		sort = append(sort, bson.E{Key: "time", Value: opts.SortOrder})
	}

	cur, err := db.BookingsCollection.Find(ctx, filter, options.Find().
		SetSort(sort).
		SetSkip(int64(opts.Skip())).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var list []models.Booking
	if err := cur.All(ctx, &list); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Booking{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Bookings for your restaurant",
		"data":    list,
		"pagination": utils.M{
			"page":       opts.Page,
			"limit":      opts.Limit,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(opts.Limit))),
		},
	})
}

// DeleteBooking handles DELETE /api/bookings/:id. The owning slot's
// status is left untouched: booked slots stay booked even when seats
// free up, and re-opening is an explicit owner action via slot update.
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	restaurantID := utils.GetRestaurantIDFromRequest(r)
	if restaurantID == "" {
		http.Error(w, "Invalid owner", http.StatusUnauthorized)
		return
	}
	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{
		"bookingId":    bookingID,
		"restaurantId": restaurantID,
	}).Decode(&booking)
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	if _, err := db.BookingsCollection.DeleteOne(ctx, bson.M{"bookingId": bookingID}); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	log.Printf("Booking %s deleted by owner %s", booking.BookingID, utils.GetOwnerIDFromRequest(r))

	h.Hub.Broadcast(booking.RestaurantID, "booking-deleted", booking.BookingID)
	go mq.Emit(context.Background(), "booking-deleted", mq.Index{
		EntityType:   "booking",
		Method:       "DELETE",
		EntityId:     booking.BookingID,
		RestaurantId: booking.RestaurantID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":   true,
		"message":   "Booking deleted successfully",
		"bookingId": booking.BookingID,
	})
}
