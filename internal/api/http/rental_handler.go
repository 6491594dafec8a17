package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type createRentalRequest struct {
	ItemID string `json:"item_id"`
	// Dates are dd/mm/yyyy day strings.
	Dates          []string `json:"dates"`
	ConfirmOwnItem bool     `json:"confirm_own_item,omitempty"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "item_id is required")
		return
	}
	set, err := domain.ParseDaySet(req.Dates)
	if err != nil {
		respondError(w, http.StatusBadRequest, "dates must be dd/mm/yyyy")
		return
	}

	rental, err := h.rentalSvc.CreateRental(r.Context(), service.CreateRentalInput{
		ItemID:         req.ItemID,
		RenterID:       UserID(r.Context()),
		Days:           set,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
		ConfirmOwnItem: req.ConfirmOwnItem,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalSvc.ListMyRentals(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"rentals": rentals})
}

// BookedDates serves the union of booked days for an item. A read
// failure is a 503: the booking flow must see real availability, never
// an optimistic empty calendar.
func (h *RentalHandler) BookedDates(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	var set domain.DaySet
	var err error
	if r.URL.Query().Get("mine") == "true" {
		set, err = h.rentalSvc.BookedDatesByUser(r.Context(), itemID, UserID(r.Context()))
	} else {
		set, err = h.rentalSvc.BookedDates(r.Context(), itemID)
	}
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "availability is temporarily unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"dates": set.Strings()})
}

func (h *RentalHandler) MonthCalendar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 1 {
		respondError(w, http.StatusBadRequest, "invalid year")
		return
	}
	monthNum, err := strconv.Atoi(vars["month"])
	if err != nil || monthNum < 1 || monthNum > 12 {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}

	cells, err := h.rentalSvc.MonthCalendar(r.Context(), vars["id"], year, time.Month(monthNum))
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "availability is temporarily unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"month": monthNum,
		"cells": cellsPayload(cells),
	})
}

type cellPayload struct {
	Blank    bool   `json:"blank,omitempty"`
	Day      int    `json:"day,omitempty"`
	Date     string `json:"date,omitempty"`
	Past     bool   `json:"past,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
	Today    bool   `json:"today,omitempty"`
}

func cellsPayload(cells []domain.Cell) []cellPayload {
	out := make([]cellPayload, 0, len(cells))
	for _, c := range cells {
		if c.Kind == domain.CellBlank {
			out = append(out, cellPayload{Blank: true})
			continue
		}
		out = append(out, cellPayload{
			Day:      c.Day,
			Date:     c.Key.String(),
			Past:     c.Past,
			Disabled: c.Disabled,
			Today:    c.Today,
		})
	}
	return out
}
