// Package firestore implements the repositories on top of the Cloud
// Firestore document store. Field and collection names match the
// documents the mobile clients already read and write: users/{uid},
// items/{autoId} and rentals/{autoId} with itemRef/userRef document
// references and a dates array of dd/mm/yyyy strings.
package firestore

import (
	"cloud.google.com/go/firestore"

	"rentify-backend/internal/repository"
)

const (
	usersCollection         = "users"
	itemsCollection         = "items"
	rentalsCollection       = "rentals"
	notificationsCollection = "notifications"
)

// Store bundles all Firestore-backed repositories.
type Store struct {
	UserRepository         repository.UserRepository
	ItemRepository         repository.ItemRepository
	RentalRepository       repository.RentalRepository
	NotificationRepository repository.NotificationRepository
}

func NewStore(client *firestore.Client) *Store {
	return &Store{
		UserRepository:         NewUserRepository(client),
		ItemRepository:         NewItemRepository(client),
		RentalRepository:       NewRentalRepository(client),
		NotificationRepository: NewNotificationRepository(client),
	}
}

// notFound translates a missing-document read into repository.ErrNotFound.
func notFound(snap *firestore.DocumentSnapshot, err error) error {
	if err != nil && snap != nil && !snap.Exists() {
		return repository.ErrNotFound
	}
	return err
}
