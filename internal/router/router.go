// Package router mounts the HTTP API on a chi mux.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaughan-dsouza/rentwheels/internal/handlers"
	"github.com/vaughan-dsouza/rentwheels/internal/middleware"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/telemetry"
	"github.com/vaughan-dsouza/rentwheels/internal/utils"
)

func New(h *handlers.Handler, authn middleware.Authenticator) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(telemetry.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.JSONError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Public
	r.Get("/healthz", h.Health.Check)
	r.Post("/signup", h.Auth.SignUp)
	r.Post("/login", h.Auth.Login)
	r.Get("/vehicles", h.Vehicles.List)
	r.Get("/vehicles/{id}", h.Vehicles.Get)
	r.Get("/bookings", h.Bookings.List)
	r.Get("/reviews", h.Reviews.List)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(authn))

		r.Get("/me", h.Auth.Me)
		r.Post("/logout", h.Auth.Logout)

		r.Get("/users", h.Users.List)
		r.Put("/users/{id}", h.Users.Update)
		r.Delete("/users/{id}", h.Users.Delete)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(models.PermManageVehicles, "You are not authorized to manage vehicles."))
			r.Post("/vehicles", h.Vehicles.Create)
			r.Put("/vehicles/{id}", h.Vehicles.Update)
			r.Delete("/vehicles/{id}", h.Vehicles.Delete)
		})

		r.With(middleware.RequirePermission(models.PermCreateBookings, "You are not authorized to create bookings.")).
			Post("/bookings", h.Bookings.Create)
		r.Put("/bookings/{id}", h.Bookings.Update)
		r.Delete("/bookings/{id}", h.Bookings.Cancel)

		r.With(middleware.RequirePermission(models.PermReviewVehicles, "You are not authorized to review vehicles.")).
			Post("/reviews", h.Reviews.Create)
		r.Put("/reviews/{id}", h.Reviews.Update)
		r.Delete("/reviews/{id}", h.Reviews.Delete)

		r.Get("/bookmarks", h.Bookmarks.List)
		r.With(middleware.RequirePermission(models.PermBookmarkVehicles, "You are not authorized to bookmark vehicles.")).
			Post("/bookmarks", h.Bookmarks.Create)
		r.Delete("/bookmarks/{id}", h.Bookmarks.Delete)
	})

	return r
}
