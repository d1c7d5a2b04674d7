package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vaughan-dsouza/rentwheels/internal/apperrors"
	"github.com/vaughan-dsouza/rentwheels/internal/events"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/utils"
	"github.com/vaughan-dsouza/rentwheels/internal/validation"
)

type BookingHandler struct {
	store *repository.Store
	pub   events.Publisher
	now   func() time.Time
}

func NewBookingHandler(store *repository.Store, pub events.Publisher) *BookingHandler {
	return &BookingHandler{store: store, pub: pub, now: time.Now}
}

type bookingReq struct {
	VehicleID int64  `json:"vehicle_id" validate:"required,min=1"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type bookingStatusReq struct {
	Status string `json:"status" validate:"required,oneof=confirmed rejected completed"`
}

// ---------------------- LIST ----------------------

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	pg, err := page(r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	f := repository.BookingFilter{
		Status: models.BookingStatus(r.URL.Query().Get("status")),
		Page:   pg,
	}
	if f.VehicleID, err = utils.QueryInt64(r, "vehicle_id"); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if f.RenterID, err = utils.QueryInt64(r, "renter_id"); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if f.Status != "" && !f.Status.Valid() {
		utils.WriteError(w, r, apperrors.BadRequest("invalid status"))
		return
	}

	bookings, err := h.store.Bookings.List(r.Context(), f)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, bookings)
}

// ---------------------- CREATE ----------------------

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	var body bookingReq
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}
	if err := validation.Struct(body); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	start, _ := time.Parse(time.DateOnly, body.StartDate)
	end, _ := time.Parse(time.DateOnly, body.EndDate)
	today := h.now().UTC().Truncate(24 * time.Hour)
	if start.Before(today) {
		utils.WriteError(w, r, apperrors.Field("start_date", "The start date must be a date after or equal to today."))
		return
	}
	if !end.After(start) {
		utils.WriteError(w, r, apperrors.Field("end_date", "The end date must be a date after start date."))
		return
	}

	v, err := h.store.Vehicles.Get(r.Context(), body.VehicleID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteError(w, r, apperrors.Field("vehicle_id", "The selected vehicle id is invalid."))
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !v.Available {
		utils.WriteError(w, r, apperrors.Field("vehicle_id", "The vehicle is not available for booking."))
		return
	}

	b := &models.Booking{
		VehicleID: v.ID,
		RenterID:  p.User.ID,
		StartDate: start,
		EndDate:   end,
		Status:    models.BookingPending,
	}
	b.TotalPrice = b.Days() * v.DailyRate

	err = h.store.Bookings.CreateWithNoOverlap(r.Context(), b)
	if errors.Is(err, repository.ErrOverlap) {
		utils.WriteError(w, r, apperrors.Field("start_date", "The vehicle is already booked for the selected dates."))
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	publish(r.Context(), h.pub, events.BookingCreated, events.NewBookingEvent(b, p.User.ID))
	utils.JSON(w, http.StatusCreated, b)
}

// ---------------------- UPDATE STATUS ----------------------

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := utils.PathID(w, r)
	if !ok {
		return
	}

	var body bookingStatusReq
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}
	if err := validation.Struct(body); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	b, err := h.load(r, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	v, err := h.store.Vehicles.Get(r.Context(), b.VehicleID)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !p.Owns(v.OwnerID) {
		utils.WriteError(w, r, apperrors.Forbidden("Only the vehicle owner can update this booking."))
		return
	}

	next := models.BookingStatus(body.Status)
	if !b.Status.CanTransition(next) {
		utils.WriteError(w, r, apperrors.Field("status", fmt.Sprintf("A %s booking cannot be marked %s.", b.Status, next)))
		return
	}
	if err := h.store.Bookings.UpdateStatus(r.Context(), b, next); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	publish(r.Context(), h.pub, events.KeyForStatus(next), events.NewBookingEvent(b, p.User.ID))
	utils.JSON(w, http.StatusOK, b)
}

// ---------------------- CANCEL ----------------------

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := utils.PathID(w, r)
	if !ok {
		return
	}

	b, err := h.load(r, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !p.Owns(b.RenterID) && !p.Can(models.PermModerateContent) {
		utils.WriteError(w, r, apperrors.Forbidden("You cannot cancel this booking."))
		return
	}
	if !b.Status.Active() {
		utils.WriteError(w, r, apperrors.Field("status", fmt.Sprintf("A %s booking cannot be cancelled.", b.Status)))
		return
	}

	if err := h.store.Bookings.UpdateStatus(r.Context(), b, models.BookingCancelled); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	publish(r.Context(), h.pub, events.BookingCancelled, events.NewBookingEvent(b, p.User.ID))
	utils.JSON(w, http.StatusOK, b)
}

func (h *BookingHandler) load(r *http.Request, id int64) (*models.Booking, error) {
	b, err := h.store.Bookings.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Booking not found")
	}
	return b, err
}
