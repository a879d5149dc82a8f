package middleware

import (
	"context"
	"net/http"

	"tablebook/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	OwnerID      string `json:"ownerId"`
	RestaurantID string `json:"restaurantId"`
	jwt.RegisteredClaims
}

// Authenticate requires a valid owner bearer token and stores the owner's
// id and restaurant id in the request context. Owner-scoped handlers read
// the restaurant id from context only, never from the client payload.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
			return globals.JwtSecret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), globals.OwnerIDKey, claims.OwnerID)
		ctx = context.WithValue(ctx, globals.RestaurantIDKey, claims.RestaurantID)
		next(w, r.WithContext(ctx), ps)
	}
}
