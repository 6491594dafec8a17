package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/service"
)

type ItemHandler struct {
	itemSvc service.ItemService
}

func NewItemHandler(itemSvc service.ItemService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc}
}

type addItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.itemSvc.AddItem(r.Context(), UserID(r.Context()), service.AddItemInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		Category:    domain.Category(req.Category),
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// List serves both the full listing and the filtered browse. Any of the
// category, q or radius_km query parameters switches to filtering with
// the caller's stored coordinate as origin.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	query := q.Get("q")
	radiusParam := q.Get("radius_km")

	if category == "" && query == "" && radiusParam == "" {
		items, err := h.itemSvc.ListItems(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, itemsPayload(items))
		return
	}

	radiusKm := 0.0
	if radiusParam != "" {
		parsed, err := strconv.ParseFloat(radiusParam, 64)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "radius_km must be a positive number")
			return
		}
		radiusKm = parsed
	}
	cat := domain.Category(category)
	if cat == "" {
		cat = domain.CategoryAll
	}

	items, err := h.itemSvc.FilterItems(r.Context(), UserID(r.Context()), cat, query, radiusKm)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itemsPayload(items))
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemSvc.GetItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemSvc.ListMyItems(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itemsPayload(items))
}

func (h *ItemHandler) ListRented(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemSvc.ListRentedItems(r.Context(), UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, itemsPayload(items))
}

func (h *ItemHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"categories": domain.Categories()})
}

// itemsPayload keeps empty results as [] instead of null.
func itemsPayload(items []domain.Item) map[string]any {
	if items == nil {
		items = []domain.Item{}
	}
	return map[string]any{"items": items}
}
