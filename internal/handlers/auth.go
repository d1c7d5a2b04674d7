package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/rentwheels/internal/auth"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/utils"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type sessionResp struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// -------------- SIGN UP ----------------------

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req auth.SignupInput
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	sess, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusCreated, sessionResp{
		Message: "Signup successful",
		Token:   sess.Token,
		User:    sess.User,
	})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginInput
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	sess, err := h.svc.Login(r.Context(), req)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, sessionResp{
		Message: "Login successful",
		Token:   sess.Token,
		User:    sess.User,
	})
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	if err := h.svc.Logout(r.Context(), p); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.Message(w, http.StatusOK, "Logged out successfully")
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, p.User)
}
