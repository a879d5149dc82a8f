package slots

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tablebook/db"
	"tablebook/models"
	"tablebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateSlot handles POST /api/slots for the authenticated owner's
// restaurant. The time is canonicalized before the duplicate check so the
// stored string always matches what bookings are joined on.
func CreateSlot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	restaurantID := utils.GetRestaurantIDFromRequest(r)
	if restaurantID == "" {
		http.Error(w, "Invalid owner", http.StatusUnauthorized)
		return
	}

	var body struct {
		Date          string `json:"date"`
		Time          string `json:"time"`
		TotalTables   int    `json:"totalTables"`
		TableCapacity int    `json:"tableCapacity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if body.Date == "" || body.Time == "" || body.TotalTables <= 0 || body.TableCapacity <= 0 {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	slotTime := utils.To12Hour(body.Time)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// advisory pre-check; the unique index is the real guard
	err := db.SlotCollection.FindOne(ctx, bson.M{
		"restaurantId": restaurantID,
		"date":         body.Date,
		"time":         slotTime,
	}).Err()
	if err == nil {
		http.Error(w, "Slot already exists", http.StatusConflict)
		return
	} else if err != mongo.ErrNoDocuments {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	slot := models.Slot{
		SlotID:        "s" + utils.GenerateRandomDigitString(12),
		RestaurantID:  restaurantID,
		Date:          body.Date,
		Time:          slotTime,
		TotalTables:   body.TotalTables,
		TableCapacity: body.TableCapacity,
		Status:        models.SlotOpen,
		Available:     true,
		CreatedAt:     time.Now(),
	}
	if _, err := db.SlotCollection.InsertOne(ctx, slot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			http.Error(w, "Slot already exists", http.StatusConflict)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Slot created successfully",
		"slot":    slot,
	})
}

// GetAllSlots handles GET /api/slots/all?restaurantId=...&page=&limit=&sortField=&sortDirection=
func GetAllSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	restaurantID := r.URL.Query().Get("restaurantId")
	if restaurantID == "" {
		http.Error(w, "Missing restaurantId", http.StatusBadRequest)
		return
	}
	opts := utils.ParseQueryOptions(r, "date")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"restaurantId": restaurantID}

	total, err := db.SlotCollection.CountDocuments(ctx, filter)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	cur, err := db.SlotCollection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: opts.SortField, Value: opts.SortOrder}}).
		SetSkip(int64(opts.Skip())).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var list []models.Slot
	if err := cur.All(ctx, &list); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Slot{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"data":    list,
		"total":   total,
	})
}

// availableSlots filters to slots whose summed booked headcount is
// strictly below capacity. Bookings join on the canonical time string.
func availableSlots(all []models.Slot, bookings []models.Booking) []models.Slot {
	booked := make(map[string]int)
	for _, b := range bookings {
		booked[b.Time] += b.People
	}

	out := []models.Slot{}
	for _, s := range all {
		if booked[s.Time] < s.Capacity() {
			out = append(out, s)
		}
	}
	return out
}

// GetAvailableSlots handles GET /api/slots/available?restaurantId=...&date=YYYY-MM-DD
func GetAvailableSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	restaurantID := r.URL.Query().Get("restaurantId")
	date := r.URL.Query().Get("date")
	if restaurantID == "" || date == "" {
		http.Error(w, "Missing restaurantId or date", http.StatusBadRequest)
		return
	}

	day := utils.ParseDate(date)
	if day == nil {
		if t, err := time.Parse(time.RFC3339, date); err == nil {
			day = &t
		} else {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}
	}
	normalized := day.Format("2006-01-02")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	slotCur, err := db.SlotCollection.Find(ctx, bson.M{"restaurantId": restaurantID, "date": normalized})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer slotCur.Close(ctx)
	var all []models.Slot
	if err := slotCur.All(ctx, &all); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	bookCur, err := db.BookingsCollection.Find(ctx, bson.M{"restaurantId": restaurantID, "date": normalized})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer bookCur.Close(ctx)
	var bookings []models.Booking
	if err := bookCur.All(ctx, &bookings); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	available := availableSlots(all, bookings)

	message := "Slot available"
	if len(available) == 0 {
		message = "Slot not available"
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"data":    available,
		"total":   len(available),
		"message": message,
	})
}

// UpdateSlot handles PUT /api/slots/:id, scoped to the owner's restaurant.
// Only the time and the legacy available flag are mutable.
func UpdateSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	restaurantID := utils.GetRestaurantIDFromRequest(r)
	if restaurantID == "" {
		http.Error(w, "Invalid owner", http.StatusUnauthorized)
		return
	}
	slotID := ps.ByName("id")

	var body struct {
		Time      string `json:"time"`
		Available *bool  `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	set := bson.M{}
	if body.Time != "" {
		set["time"] = utils.To12Hour(body.Time)
	}
	if body.Available != nil {
		set["available"] = *body.Available
	}
	if len(set) == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.SlotCollection.FindOneAndUpdate(ctx,
		bson.M{"slotId": slotID, "restaurantId": restaurantID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Slot
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "Slot not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Slot updated",
		"slot":    updated,
	})
}

// DeleteSlot handles DELETE /api/slots/:id, scoped to the owner's restaurant.
func DeleteSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	restaurantID := utils.GetRestaurantIDFromRequest(r)
	if restaurantID == "" {
		http.Error(w, "Invalid owner", http.StatusUnauthorized)
		return
	}
	slotID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.SlotCollection.DeleteOne(ctx, bson.M{"slotId": slotID, "restaurantId": restaurantID})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Slot not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Slot deleted",
	})
}
