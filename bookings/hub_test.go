package bookings

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send: make(chan []byte, 10),
		Room: "r1",
	}

	// register client
	hub.register <- client

	// broadcast a test event
	hub.Broadcast("r1", "new-booking", map[string]string{"bookingId": "b42"})

	select {
	case got := <-client.Send:
		var ev Event
		if err := json.Unmarshal(got, &ev); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		if ev.Event != "new-booking" {
			t.Fatalf("event = %q, want new-booking", ev.Event)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	// unregister client
	hub.unregister <- client
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), Room: "r1"}
	b := &Client{Send: make(chan []byte, 10), Room: "r2"}
	hub.register <- a
	hub.register <- b

	hub.Broadcast("r1", "booking-deleted", "b7")

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for r1 delivery")
	}

	select {
	case msg := <-b.Send:
		t.Fatalf("r2 client received %s, want nothing", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
