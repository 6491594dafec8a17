package service

import (
	"context"
	"time"

	"rentify-backend/internal/domain"
)

// RegisterInput is the profile captured once at registration. The
// coordinate is whatever the client resolved for the address; it is
// never refreshed afterwards.
type RegisterInput struct {
	Username  string
	Address   string
	Latitude  string
	Longitude string
}

// Session is an issued token pair.
type Session struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	// Register verifies the provider ID token and creates the profile
	// document for the new account.
	Register(ctx context.Context, idToken string, input RegisterInput) (*domain.User, error)
	// Login verifies the provider ID token, refreshes the device push
	// token when one is supplied and issues a session pair.
	Login(ctx context.Context, idToken, fcmToken string) (*domain.User, *Session, error)
	// Refresh exchanges a valid refresh token for a new session pair.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	// GetLocation returns the user's stored coordinate,
	// domain.ErrNoCoordinate when none was captured.
	GetLocation(ctx context.Context, userID string) (domain.Coordinate, error)
}

// AddItemInput carries the add-item form fields.
type AddItemInput struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Category    domain.Category
	ImageURL    string
}

// FilterParams narrows the browse list. Category, Query and the radius
// predicate are conjunctive. CategoryAll disables the category test.
type FilterParams struct {
	Category Category
	Query    string
	Origin   domain.Coordinate
	RadiusKm float64
}

// Category aliases domain.Category for the filter surface.
type Category = domain.Category

type ItemService interface {
	AddItem(ctx context.Context, ownerID string, input AddItemInput) (*domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	ListMyItems(ctx context.Context, ownerID string) ([]domain.Item, error)
	// ListRentedItems resolves the user's rentals to the distinct items
	// they reference.
	ListRentedItems(ctx context.Context, userID string) ([]domain.Item, error)
	// FilterItems fetches the full listing set and narrows it by the
	// params, using userID's stored coordinate as the radius origin.
	FilterItems(ctx context.Context, userID string, category Category, query string, radiusKm float64) ([]domain.Item, error)
}

// CreateRentalInput is one booking request.
type CreateRentalInput struct {
	ItemID   string
	RenterID string
	Days     domain.DaySet
	// IdempotencyKey, when set, pins the rental document id so a
	// retried timed-out request lands on the same record.
	IdempotencyKey string
	// ConfirmOwnItem acknowledges the renter owns the listing.
	ConfirmOwnItem bool
}

type RentalService interface {
	// BookedDates returns the union of day sets across every rental of
	// the item.
	BookedDates(ctx context.Context, itemID string) (domain.DaySet, error)
	// BookedDatesByUser restricts the union to the user's own rentals,
	// feeding the read-only "my rented dates" calendar.
	BookedDatesByUser(ctx context.Context, itemID, userID string) (domain.DaySet, error)
	// MonthCalendar renders the item's availability for one month:
	// booked days disabled, days before today past.
	MonthCalendar(ctx context.Context, itemID string, year int, month time.Month) ([]domain.Cell, error)
	CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error)
	ListMyRentals(ctx context.Context, userID string) ([]domain.Rental, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

// PushService delivers one push notification to a device token.
type PushService interface {
	Send(ctx context.Context, token, title, body string) error
}

type EmailService interface {
	SendItemRentedNotification(ctx context.Context, ownerEmail, ownerName, renterName, itemName string, dates []string) error
	SendRentalStartReminder(ctx context.Context, renterEmail, renterName, itemName, startDate string) error
	SendReturnReminder(ctx context.Context, ownerEmail, ownerName, itemName string) error
}

type ImageStorageService interface {
	// GetUploadURL reserves an images/{uuid}.{ext} object and returns a
	// presigned PUT URL plus the public download URL the item document
	// should store.
	GetUploadURL(ctx context.Context, userID, filename, contentType string) (uploadURL, publicURL string, err error)
}
