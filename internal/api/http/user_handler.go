package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentify-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
	noteSvc service.NotificationService
}

func NewUserHandler(userSvc service.UserService, noteSvc service.NotificationService) *UserHandler {
	return &UserHandler{userSvc: userSvc, noteSvc: noteSvc}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.userSvc.GetProfile(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) MyLocation(w http.ResponseWriter, r *http.Request) {
	coord, err := h.userSvc.GetLocation(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{
		"latitude":  coord.Lat,
		"longitude": coord.Lon,
	})
}

func (h *UserHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	notes, err := h.noteSvc.GetNotifications(r.Context(), UserID(r.Context()), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"notifications": notes})
}

func (h *UserHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.noteSvc.MarkAsRead(r.Context(), UserID(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
