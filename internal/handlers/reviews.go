package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vaughan-dsouza/rentwheels/internal/apperrors"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/utils"
	"github.com/vaughan-dsouza/rentwheels/internal/validation"
)

type ReviewHandler struct {
	store *repository.Store
}

func NewReviewHandler(store *repository.Store) *ReviewHandler {
	return &ReviewHandler{store: store}
}

type reviewReq struct {
	VehicleID int64  `json:"vehicle_id" validate:"required,min=1"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

type reviewPatch struct {
	Rating  *int    `json:"rating" validate:"omitnil,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitnil,max=1000"`
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	pg, err := page(r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	vehicleID, err := utils.QueryInt64(r, "vehicle_id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	reviews, err := h.store.Reviews.List(r.Context(), vehicleID, pg)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	var body reviewReq
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}
	body.Comment = strings.TrimSpace(body.Comment)
	if err := validation.Struct(body); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	if _, err := h.store.Vehicles.Get(r.Context(), body.VehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = apperrors.Field("vehicle_id", "The selected vehicle id is invalid.")
		}
		utils.WriteError(w, r, err)
		return
	}

	rented, err := h.store.Bookings.HasRented(r.Context(), p.User.ID, body.VehicleID)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !rented {
		utils.WriteError(w, r, apperrors.Forbidden("You can only review vehicles you have rented."))
		return
	}

	rv := &models.Review{
		VehicleID: body.VehicleID,
		RenterID:  p.User.ID,
		Rating:    body.Rating,
		Comment:   body.Comment,
	}
	if err := h.store.Reviews.Create(r.Context(), rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = apperrors.Field("vehicle_id", "You have already reviewed this vehicle.")
		}
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, rv)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := utils.PathID(w, r)
	if !ok {
		return
	}

	var body reviewPatch
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}
	if err := validation.Struct(body); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	rv, err := h.load(r, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !p.Owns(rv.RenterID) {
		utils.WriteError(w, r, apperrors.Forbidden("You can only edit your own reviews."))
		return
	}

	if body.Rating != nil {
		rv.Rating = *body.Rating
	}
	if body.Comment != nil {
		rv.Comment = strings.TrimSpace(*body.Comment)
	}
	if err := h.store.Reviews.Update(r.Context(), rv); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, rv)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := utils.PathID(w, r)
	if !ok {
		return
	}

	rv, err := h.load(r, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !p.Owns(rv.RenterID) && !p.Can(models.PermModerateContent) {
		utils.WriteError(w, r, apperrors.Forbidden("You cannot delete this review."))
		return
	}

	if err := h.store.Reviews.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.Message(w, http.StatusOK, "Review deleted successfully")
}

func (h *ReviewHandler) load(r *http.Request, id int64) (*models.Review, error) {
	rv, err := h.store.Reviews.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Review not found")
	}
	return rv, err
}
