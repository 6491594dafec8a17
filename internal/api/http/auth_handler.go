package http

import (
	"net/http"

	"rentify-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type registerRequest struct {
	IDToken   string `json:"id_token"`
	Username  string `json:"username"`
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IDToken == "" {
		respondError(w, http.StatusBadRequest, "id_token is required")
		return
	}
	user, err := h.authSvc.Register(r.Context(), req.IDToken, service.RegisterInput{
		Username:  req.Username,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	IDToken  string `json:"id_token"`
	FCMToken string `json:"fcm_token,omitempty"`
}

type sessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IDToken == "" {
		respondError(w, http.StatusBadRequest, "id_token is required")
		return
	}
	user, session, err := h.authSvc.Login(r.Context(), req.IDToken, req.FCMToken)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"user":          user,
		"access_token":  session.AccessToken,
		"refresh_token": session.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.authSvc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
}
