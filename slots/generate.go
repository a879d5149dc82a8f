package slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tablebook/db"
	"tablebook/models"
	"tablebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weeklyDays = 7

// WeeklyCandidates produces the candidate slots for one week of service.
// For each of the 7 calendar days starting at start's date, it steps from
// openTime up to strictly before closeTime in interval-minute increments
// and emits one slot per step at the canonical time string. A day where
// close <= open contributes no candidates. Only start's date component is
// used, so the caller's clock and zone cannot shift which days come out.
func WeeklyCandidates(restaurantID string, start time.Time, openTime, closeTime string, intervalMinutes, totalTables, tableCapacity int) ([]models.Slot, error) {
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("intervalMinutes must be positive")
	}

	y, m, d := start.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var out []models.Slot
	for i := 0; i < weeklyDays; i++ {
		current := day.AddDate(0, 0, i)

		dayOpen, err := utils.ParseClock(current, openTime)
		if err != nil {
			return nil, fmt.Errorf("openTime: %w", err)
		}
		dayClose, err := utils.ParseClock(current, closeTime)
		if err != nil {
			return nil, fmt.Errorf("closeTime: %w", err)
		}

		for t := dayOpen; t.Before(dayClose); t = t.Add(time.Duration(intervalMinutes) * time.Minute) {
			out = append(out, models.Slot{
				SlotID:        "s" + utils.GenerateRandomDigitString(12),
				RestaurantID:  restaurantID,
				Date:          current.Format("2006-01-02"),
				Time:          utils.FormatClock(t),
				TotalTables:   totalTables,
				TableCapacity: tableCapacity,
				Status:        models.SlotOpen,
				Available:     true,
				CreatedAt:     time.Now(),
			})
		}
	}
	return out, nil
}

// GenerateWeeklySlots handles POST /api/slots/weekly. Candidates that
// already exist in the store for (restaurant, day, time) are skipped; the
// survivors are inserted in one batch and the created count reported.
func GenerateWeeklySlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	restaurantID := utils.GetRestaurantIDFromRequest(r)
	if restaurantID == "" {
		http.Error(w, "Invalid owner", http.StatusUnauthorized)
		return
	}

	var body struct {
		StartDate       string `json:"startDate"`
		OpenTime        string `json:"openTime"`
		CloseTime       string `json:"closeTime"`
		IntervalMinutes int    `json:"intervalMinutes"`
		TotalTables     int    `json:"totalTables"`
		TableCapacity   int    `json:"tableCapacity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if body.StartDate == "" || body.OpenTime == "" || body.CloseTime == "" ||
		body.IntervalMinutes <= 0 || body.TotalTables <= 0 || body.TableCapacity <= 0 {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	start := utils.ParseDate(body.StartDate)
	if start == nil {
		if t, err := time.Parse(time.RFC3339, body.StartDate); err == nil {
			start = &t
		} else {
			http.Error(w, "Invalid startDate", http.StatusBadRequest)
			return
		}
	}

	candidates, err := WeeklyCandidates(restaurantID, *start,
		body.OpenTime, body.CloseTime, body.IntervalMinutes, body.TotalTables, body.TableCapacity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// existing (date, time) pairs for the window
	dates := make([]string, 0, weeklyDays)
	seen := map[string]bool{}
	for _, c := range candidates {
		if !seen[c.Date] {
			seen[c.Date] = true
			dates = append(dates, c.Date)
		}
	}

	existing := map[string]bool{}
	if len(dates) > 0 {
		cur, err := db.SlotCollection.Find(ctx, bson.M{
			"restaurantId": restaurantID,
			"date":         bson.M{"$in": dates},
		})
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var s models.Slot
			if err := cur.Decode(&s); err != nil {
				continue
			}
			existing[s.Date+"|"+s.Time] = true
		}
	}

	var create []interface{}
	for _, c := range candidates {
		if !existing[c.Date+"|"+c.Time] {
			create = append(create, c)
		}
	}

	created := 0
	if len(create) > 0 {
		// unordered so one index collision does not abort the batch
		res, err := db.SlotCollection.InsertMany(ctx, create, options.InsertMany().SetOrdered(false))
		if res != nil {
			created = len(res.InsertedIDs)
		}
		if err != nil && created == 0 {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success":      true,
		"message":      fmt.Sprintf("%d slots created successfully.", created),
		"slotsCreated": created,
	})
}
