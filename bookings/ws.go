package bookings

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

// HandleWS subscribes a websocket client to a restaurant's event channel.
// Joining is independent of the booking lifecycle; the client receives
// new-booking and booking-deleted events for that restaurant until it
// disconnects.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	restaurantID := ps.ByName("restaurantId")
	if restaurantID == "" {
		http.Error(w, "Missing restaurantId", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	client := &Client{
		Send: make(chan []byte, 16),
		Room: restaurantID,
	}
	h.Hub.register <- client

	// writer
	go func() {
		for msg := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
		conn.Close()
	}()

	// reader keeps the connection alive until the client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.Hub.unregister <- client
	conn.Close()
}
