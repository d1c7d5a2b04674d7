package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/rentwheels/internal/auth"
	"github.com/vaughan-dsouza/rentwheels/internal/utils"
)

type UserHandler struct {
	svc *auth.Service
}

func NewUserHandler(svc *auth.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	users, err := h.svc.ListUsers(r.Context(), p)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := utils.PathID(w, r)
	if !ok {
		return
	}

	var req auth.UpdateUserInput
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	u, err := h.svc.UpdateUser(r.Context(), p, id, req)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := utils.PathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(r.Context(), p, id); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.Message(w, http.StatusOK, "User deleted successfully")
}
