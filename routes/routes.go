package routes

import (
	"net/http"

	"tablebook/bookings"
	"tablebook/middleware"
	"tablebook/owners"
	"tablebook/ratelim"
	"tablebook/restaurants"
	"tablebook/slots"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/uploads/*filepath", http.Dir("static/uploads"))
}

func AddOwnerRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/owners/register", rl.Limit(owners.Register))
	router.POST("/api/owners/login", rl.Limit(owners.Login))
}

func AddRestaurantRoutes(router *httprouter.Router) {
	router.GET("/api/restaurants", restaurants.GetRestaurants)
}

func AddSlotRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/slots", rl.Limit(middleware.Authenticate(slots.CreateSlot)))
	router.POST("/api/slots/weekly", rl.Limit(middleware.Authenticate(slots.GenerateWeeklySlots)))
	router.GET("/api/slots/all", slots.GetAllSlots)             // For owners
	router.GET("/api/slots/available", slots.GetAvailableSlots) // For users
	router.PUT("/api/slots/:id", middleware.Authenticate(slots.UpdateSlot))
	router.DELETE("/api/slots/:id", middleware.Authenticate(slots.DeleteSlot))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *bookings.Handler) {
	router.POST("/api/bookings", rl.Limit(h.CreateBooking))
	router.GET("/api/bookings/owner", middleware.Authenticate(h.GetBookingsForOwner))
	router.DELETE("/api/bookings/:id", middleware.Authenticate(h.DeleteBooking))
	router.GET("/api/bookings/print/:id", middleware.Authenticate(h.PrintBooking))

	router.GET("/ws/restaurants/:restaurantId", h.HandleWS)
}
