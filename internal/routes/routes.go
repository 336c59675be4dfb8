package routes

import (
	"github.com/AymanChabbaki/safaria-sub000/internal/handlers"
	"github.com/AymanChabbaki/safaria-sub000/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/register", handlers.Register)
	r.Post("/api/auth/login", handlers.Login)
	r.Post("/api/auth/logout", handlers.Logout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/api/auth/me", handlers.Me)
		r.Put("/api/auth/profile", handlers.UpdateProfile)
		r.Put("/api/auth/password", handlers.ChangePassword)
	})

	// Public catalog routes (redis-cached, ?lang= localized)
	r.Get("/api/artisans", handlers.GetArtisans)
	r.Get("/api/artisans/{id}", handlers.GetArtisan)
	r.Get("/api/sejours", handlers.GetSejours)
	r.Get("/api/sejours/{id}", handlers.GetSejour)
	r.Get("/api/caravanes", handlers.GetCaravanes)
	r.Get("/api/caravanes/{id}", handlers.GetCaravane)

	// Reviews: list is public, create needs a session
	r.Get("/api/listings/{kind}/{id}/reviews", handlers.GetReviews)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/api/reviews", handlers.CreateReview)
	})

	// Reservations and payments
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/api/reservations", handlers.CreateReservation)
		r.Get("/api/reservations", handlers.GetReservations)
		r.Put("/api/reservations/{id}/cancel", handlers.CancelReservation)
		r.Post("/api/payments/process", handlers.ProcessPayment)
		r.Get("/api/payments/{id}/receipt", handlers.GetReceipt)
	})
	r.Post("/api/payments/verify", handlers.VerifyReceipt)

	// Admin listing management
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth, middleware.RequireAdmin)
		r.Post("/api/admin/listings/{kind}", handlers.CreateListing)
		r.Put("/api/admin/listings/{kind}/{id}", handlers.UpdateListing)
		r.Delete("/api/admin/listings/{kind}/{id}", handlers.DeleteListing)
		r.Post("/api/admin/upload", handlers.UploadImage)
		r.Put("/api/admin/unblock-ip", handlers.UnblockIP)
	})

	// WebSocket endpoint for listing change notifications
	r.Get("/ws/updates", handlers.UpdatesWebSocket)
}
