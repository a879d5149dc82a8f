package mq

import (
	"context"
	"encoding/json"
	"log"

	"tablebook/rdx"
)

// Index represents a booking-related message for out-of-process consumers.
type Index struct {
	EntityType   string `json:"entity_type"`
	Method       string `json:"method"`
	EntityId     string `json:"entity_id"`
	RestaurantId string `json:"restaurant_id"`
}

const channel = "booking-events"

// Emit publishes domain events to Redis. Subscribers outside this process
// (analytics, search indexing) consume them; delivery is best effort and
// failures are only logged.
func Emit(ctx context.Context, eventName string, content Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s to Redis: %v", eventName, err)
	}
}
