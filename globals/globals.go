package globals

import (
	"context"
	"os"
)

var (
	JwtSecret = []byte(getenv("JWT_SECRET", "your_secret_key"))
)

// Context keys
type ContextKey string

const OwnerIDKey ContextKey = "ownerId"
const RestaurantIDKey ContextKey = "restaurantId"

var Ctx = context.Background()

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
