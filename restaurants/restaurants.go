package restaurants

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tablebook/db"
	"tablebook/models"
	"tablebook/rdx"
	"tablebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	cacheKey = "restaurants"
	cacheTTL = 10 * time.Minute
)

// GetRestaurants lists all restaurants, newest first. The serialized
// response is cached in Redis; registration invalidates the key.
func GetRestaurants(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Try cache
	if cached, _ := rdx.RdxGet(cacheKey); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	cur, err := db.RestaurantsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch restaurants")
		return
	}
	defer cur.Close(ctx)

	var list []models.Restaurant
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode restaurants")
		return
	}
	if list == nil {
		list = []models.Restaurant{}
	}

	payload, err := json.Marshal(utils.M{"success": true, "data": list})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode restaurants")
		return
	}
	if err := rdx.SetWithExpiry(cacheKey, string(payload), cacheTTL); err != nil {
		log.Printf("Cache write failed for %s: %v", cacheKey, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}
