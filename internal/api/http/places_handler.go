package http

import (
	"net/http"
	"strconv"

	"rentify-backend/internal/geocode"
)

type PlacesHandler struct {
	geocoder *geocode.Client
}

func NewPlacesHandler(geocoder *geocode.Client) *PlacesHandler {
	return &PlacesHandler{geocoder: geocoder}
}

// Suggest proxies address autocomplete so the geocoder API key never
// reaches clients.
func (h *PlacesHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	places, err := h.geocoder.Suggest(r.Context(), text, limit)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "address lookup is temporarily unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"places": places})
}
