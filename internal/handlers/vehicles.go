package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/vaughan-dsouza/rentwheels/internal/apperrors"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/utils"
	"github.com/vaughan-dsouza/rentwheels/internal/validation"
)

type VehicleHandler struct {
	store *repository.Store
}

func NewVehicleHandler(store *repository.Store) *VehicleHandler {
	return &VehicleHandler{store: store}
}

type vehicleReq struct {
	Make        string `json:"make" validate:"required,max=255"`
	Model       string `json:"model" validate:"required,max=255"`
	Year        int    `json:"year" validate:"required,min=1900,max=2100"`
	DailyRate   int64  `json:"daily_rate" validate:"required,min=1"`
	Location    string `json:"location" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	Available   *bool  `json:"available"`
}

type vehiclePatch struct {
	Make        *string `json:"make" validate:"omitnil,min=1,max=255"`
	Model       *string `json:"model" validate:"omitnil,min=1,max=255"`
	Year        *int    `json:"year" validate:"omitnil,min=1900,max=2100"`
	DailyRate   *int64  `json:"daily_rate" validate:"omitnil,min=1"`
	Location    *string `json:"location" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Available   *bool   `json:"available"`
}

// ---------------------- LIST ----------------------

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	pg, err := page(r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	f := repository.VehicleFilter{
		Location: strings.TrimSpace(r.URL.Query().Get("location")),
		Page:     pg,
	}
	if v := r.URL.Query().Get("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			utils.WriteError(w, r, apperrors.BadRequest("invalid available"))
			return
		}
		f.Available = &b
	}
	if f.OwnerID, err = utils.QueryInt64(r, "owner_id"); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	vehicles, err := h.store.Vehicles.List(r.Context(), f)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, vehicles)
}

// ---------------------- GET ONE ----------------------

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.PathID(w, r)
	if !ok {
		return
	}

	v, err := h.load(r, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, v)
}

// ---------------------- CREATE ----------------------

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	var body vehicleReq
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}
	body.Make = strings.TrimSpace(body.Make)
	body.Model = strings.TrimSpace(body.Model)
	body.Location = strings.TrimSpace(body.Location)
	if err := validation.Struct(body); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	v := &models.Vehicle{
		OwnerID:     p.User.ID,
		Make:        body.Make,
		Model:       body.Model,
		Year:        body.Year,
		DailyRate:   body.DailyRate,
		Location:    body.Location,
		Description: body.Description,
		Available:   body.Available == nil || *body.Available,
	}
	if err := h.store.Vehicles.Create(r.Context(), v); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, v)
}

// ---------------------- UPDATE ----------------------

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := utils.PathID(w, r)
	if !ok {
		return
	}

	var body vehiclePatch
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}
	if err := validation.Struct(body); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	v, err := h.load(r, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !p.Owns(v.OwnerID) {
		utils.WriteError(w, r, apperrors.Forbidden("You do not own this vehicle."))
		return
	}

	if body.Make != nil {
		v.Make = *body.Make
	}
	if body.Model != nil {
		v.Model = *body.Model
	}
	if body.Year != nil {
		v.Year = *body.Year
	}
	if body.DailyRate != nil {
		v.DailyRate = *body.DailyRate
	}
	if body.Location != nil {
		v.Location = *body.Location
	}
	if body.Description != nil {
		v.Description = *body.Description
	}
	if body.Available != nil {
		v.Available = *body.Available
	}

	if err := h.store.Vehicles.Update(r.Context(), v); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, v)
}

// ---------------------- DELETE ----------------------

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := utils.PathID(w, r)
	if !ok {
		return
	}

	v, err := h.load(r, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !p.Owns(v.OwnerID) {
		utils.WriteError(w, r, apperrors.Forbidden("You do not own this vehicle."))
		return
	}

	if err := h.store.Vehicles.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.Message(w, http.StatusOK, "Vehicle deleted successfully")
}

func (h *VehicleHandler) load(r *http.Request, id int64) (*models.Vehicle, error) {
	v, err := h.store.Vehicles.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Vehicle not found")
	}
	return v, err
}
