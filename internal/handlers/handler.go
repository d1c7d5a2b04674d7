package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/vaughan-dsouza/rentwheels/internal/apperrors"
	"github.com/vaughan-dsouza/rentwheels/internal/auth"
	"github.com/vaughan-dsouza/rentwheels/internal/events"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/utils"
)

type Handler struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Vehicles  *VehicleHandler
	Bookings  *BookingHandler
	Reviews   *ReviewHandler
	Bookmarks *BookmarkHandler
	Health    *HealthHandler
}

func NewHandler(store *repository.Store, authSvc *auth.Service, pub events.Publisher) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(authSvc),
		Users:     NewUserHandler(authSvc),
		Vehicles:  NewVehicleHandler(store),
		Bookings:  NewBookingHandler(store, pub),
		Reviews:   NewReviewHandler(store),
		Bookmarks: NewBookmarkHandler(store),
		Health:    NewHealthHandler(store),
	}
}

// caller returns the authenticated principal, writing 401 when there is none.
func caller(w http.ResponseWriter, r *http.Request) (*auth.Principal, bool) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, r, apperrors.Unauthorized("Unauthenticated"))
		return nil, false
	}
	return p, true
}

// page reads page/per_page query parameters (defaults 1 and 15).
func page(r *http.Request) (repository.Page, error) {
	n, err := utils.QueryInt64(r, "page")
	if err != nil {
		return repository.Page{}, err
	}
	size, err := utils.QueryInt64(r, "per_page")
	if err != nil {
		return repository.Page{}, err
	}
	if n <= 0 {
		n = 1
	}
	if size <= 0 {
		size = 15
	}
	if size > 100 {
		size = 100
	}
	return repository.Page{Limit: int(size), Offset: int((n - 1) * size)}, nil
}

// publish sends a message without failing the request; the write already committed.
func publish(ctx context.Context, pub events.Publisher, key string, v any) {
	if err := pub.PublishJSON(ctx, key, v); err != nil {
		log.Printf("publish %s: %v", key, err)
	}
}
