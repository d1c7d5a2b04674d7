package handlers

import (
	"errors"
	"net/http"

	"github.com/vaughan-dsouza/rentwheels/internal/apperrors"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/utils"
	"github.com/vaughan-dsouza/rentwheels/internal/validation"
)

type BookmarkHandler struct {
	store *repository.Store
}

func NewBookmarkHandler(store *repository.Store) *BookmarkHandler {
	return &BookmarkHandler{store: store}
}

type bookmarkReq struct {
	VehicleID int64 `json:"vehicle_id" validate:"required,min=1"`
}

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	bookmarks, err := h.store.Bookmarks.ListByUser(r.Context(), p.User.ID)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, bookmarks)
}

func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	var body bookmarkReq
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}
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

	b := &models.Bookmark{UserID: p.User.ID, VehicleID: body.VehicleID}
	if err := h.store.Bookmarks.Create(r.Context(), b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = apperrors.Field("vehicle_id", "This vehicle is already bookmarked.")
		}
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, b)
}

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := utils.PathID(w, r)
	if !ok {
		return
	}

	b, err := h.store.Bookmarks.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteError(w, r, apperrors.NotFound("Bookmark not found"))
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !p.Owns(b.UserID) {
		utils.WriteError(w, r, apperrors.Forbidden("You can only remove your own bookmarks."))
		return
	}

	if err := h.store.Bookmarks.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.Message(w, http.StatusOK, "Bookmark removed successfully")
}
