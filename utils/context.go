package utils

import (
	"net/http"

	"tablebook/globals"
)

func GetOwnerIDFromRequest(r *http.Request) string {
	id, ok := r.Context().Value(globals.OwnerIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

func GetRestaurantIDFromRequest(r *http.Request) string {
	id, ok := r.Context().Value(globals.RestaurantIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
