package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentify-backend/internal/geocode"
	"rentify-backend/internal/security"
	"rentify-backend/internal/service"
	"rentify-backend/internal/storage"
)

// RouterDeps bundles everything the API surface needs.
type RouterDeps struct {
	Auth          service.AuthService
	Users         service.UserService
	Items         service.ItemService
	Rentals       service.RentalService
	Notifications service.NotificationService
	Images        service.ImageStorageService
	Geocoder      *geocode.Client
	Tokens        security.TokenManager
	Backend       storage.Backend
	// ServeLocalImages wires the loopback upload/download endpoints the
	// filesystem backend's presigned URLs point at.
	ServeLocalImages bool
}

func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(deps.Auth)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	imageHandler := NewImageHandler(deps.Images, deps.Backend)
	if deps.ServeLocalImages {
		api.HandleFunc("/images/upload", imageHandler.HandleUpload).Methods(http.MethodPut)
		api.HandleFunc("/images/download", imageHandler.HandleDownload).Methods(http.MethodGet)
	}

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(deps.Tokens))

	userHandler := NewUserHandler(deps.Users, deps.Notifications)
	authed.HandleFunc("/users/me", userHandler.Me).Methods(http.MethodGet)
	authed.HandleFunc("/users/me/location", userHandler.MyLocation).Methods(http.MethodGet)
	authed.HandleFunc("/notifications", userHandler.Notifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", userHandler.MarkNotificationRead).Methods(http.MethodPost)

	itemHandler := NewItemHandler(deps.Items)
	authed.HandleFunc("/items", itemHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/items", itemHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/items/mine", itemHandler.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/items/rented", itemHandler.ListRented).Methods(http.MethodGet)
	authed.HandleFunc("/items/{id}", itemHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/categories", itemHandler.Categories).Methods(http.MethodGet)

	rentalHandler := NewRentalHandler(deps.Rentals)
	authed.HandleFunc("/items/{id}/booked-dates", rentalHandler.BookedDates).Methods(http.MethodGet)
	authed.HandleFunc("/items/{id}/calendar/{year}/{month}", rentalHandler.MonthCalendar).Methods(http.MethodGet)
	authed.HandleFunc("/rentals", rentalHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/mine", rentalHandler.ListMine).Methods(http.MethodGet)

	authed.HandleFunc("/images/upload-url", imageHandler.CreateUploadURL).Methods(http.MethodPost)

	placesHandler := NewPlacesHandler(deps.Geocoder)
	authed.HandleFunc("/places/suggest", placesHandler.Suggest).Methods(http.MethodGet)

	return r
}
