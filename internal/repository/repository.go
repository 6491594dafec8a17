package repository

import (
	"context"
	"errors"

	"rentify-backend/internal/domain"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	// Upsert writes the profile document keyed by the auth provider uid.
	Upsert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// SetFCMToken stores the device push token, refreshed on login.
	SetFCMToken(ctx context.Context, userID, token string) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	ListAll(ctx context.Context) ([]domain.Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
	// ListByIDs fetches items by id membership. Unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]domain.Item, error)
}

type RentalRepository interface {
	// Create persists the rental only if none of its days is already
	// booked for the same item; returns domain.ErrDatesUnavailable
	// otherwise. When rental.ID is set it is used as the document id
	// (idempotent retry), else an id is generated.
	Create(ctx context.Context, rental *domain.Rental) error
	ListByItem(ctx context.Context, itemID string) ([]domain.Rental, error)
	ListByItemAndUser(ctx context.Context, itemID, userID string) ([]domain.Rental, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Rental, error)
	// ListByDay returns rentals whose dates array contains the day.
	ListByDay(ctx context.Context, day domain.DayKey) ([]domain.Rental, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}
