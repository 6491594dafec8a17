package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/logger"
	"rentify-backend/internal/repository"
)

type rentalDoc struct {
	ItemRef   *firestore.DocumentRef `firestore:"itemRef"`
	UserRef   *firestore.DocumentRef `firestore:"userRef"`
	Dates     []string               `firestore:"dates"`
	CreatedOn time.Time              `firestore:"createdOn,serverTimestamp"`
}

type rentalRepository struct {
	client *firestore.Client
}

func NewRentalRepository(client *firestore.Client) repository.RentalRepository {
	return &rentalRepository{client: client}
}

// Create writes the rental inside a transaction that re-reads every
// rental of the item and rejects overlapping day sets. This closes the
// check-then-act window between the availability query and the write:
// of two concurrent bookings for the same day, exactly one commits.
func (r *rentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	logger.StoreCall("Create", rentalsCollection, "item_id", rental.ItemID, "user_id", rental.UserID)

	requested, err := domain.ParseDaySet(rental.Dates)
	if err != nil {
		return err
	}
	if len(requested) == 0 {
		return domain.ErrNoDates
	}

	itemRef := r.client.Collection(itemsCollection).Doc(rental.ItemID)
	userRef := r.client.Collection(usersCollection).Doc(rental.UserID)

	var ref *firestore.DocumentRef
	if rental.ID != "" {
		ref = r.client.Collection(rentalsCollection).Doc(rental.ID)
	} else {
		ref = r.client.Collection(rentalsCollection).NewDoc()
	}

	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// An idempotent retry of an already-committed booking must not
		// double-book against its own record.
		if rental.ID != "" {
			snap, getErr := tx.Get(ref)
			committed, err := rentalReplay(snap, getErr)
			if err != nil {
				return fmt.Errorf("read rental %s: %w", rental.ID, err)
			}
			if committed {
				return nil
			}
		}

		query := r.client.Collection(rentalsCollection).Where("itemRef", "==", itemRef)
		snaps, err := tx.Documents(query).GetAll()
		if err != nil {
			return fmt.Errorf("read rentals for item %s: %w", rental.ItemID, err)
		}
		booked := domain.NewDaySet()
		for _, snap := range snaps {
			var doc rentalDoc
			if err := snap.DataTo(&doc); err != nil {
				return fmt.Errorf("decode rental %s: %w", snap.Ref.ID, err)
			}
			days, err := domain.ParseDaySet(doc.Dates)
			if err != nil {
				// Legacy records with malformed dates cannot block new
				// bookings; skip them.
				logger.Warn("Skipping rental with malformed dates", "rental_id", snap.Ref.ID, "error", err)
				continue
			}
			booked.Union(days)
		}
		if booked.Intersects(requested) {
			return domain.ErrDatesUnavailable
		}

		return tx.Create(ref, rentalDoc{
			ItemRef: itemRef,
			UserRef: userRef,
			Dates:   requested.Strings(),
		})
	})
	logger.StoreResult("Create", rentalsCollection, err)
	if err != nil {
		return err
	}
	rental.ID = ref.ID
	rental.Dates = requested.Strings()
	return nil
}

// rentalReplay classifies the idempotency pre-read. committed means the
// document already exists and the write is a replay of an earlier
// successful attempt. Only a confirmed-missing document lets the
// conflict check proceed; any other read failure aborts the
// transaction, so a transient error can never be mistaken for "not yet
// booked".
func rentalReplay(snap *firestore.DocumentSnapshot, err error) (committed bool, _ error) {
	if err == nil {
		return snap.Exists(), nil
	}
	if snap != nil && !snap.Exists() {
		return false, nil
	}
	return false, err
}

func (r *rentalRepository) ListByItem(ctx context.Context, itemID string) ([]domain.Rental, error) {
	itemRef := r.client.Collection(itemsCollection).Doc(itemID)
	it := r.client.Collection(rentalsCollection).Where("itemRef", "==", itemRef).Documents(ctx)
	return r.collect(it)
}

func (r *rentalRepository) ListByItemAndUser(ctx context.Context, itemID, userID string) ([]domain.Rental, error) {
	itemRef := r.client.Collection(itemsCollection).Doc(itemID)
	userRef := r.client.Collection(usersCollection).Doc(userID)
	it := r.client.Collection(rentalsCollection).
		Where("itemRef", "==", itemRef).
		Where("userRef", "==", userRef).
		Documents(ctx)
	return r.collect(it)
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID string) ([]domain.Rental, error) {
	userRef := r.client.Collection(usersCollection).Doc(userID)
	it := r.client.Collection(rentalsCollection).Where("userRef", "==", userRef).Documents(ctx)
	return r.collect(it)
}

func (r *rentalRepository) ListByDay(ctx context.Context, day domain.DayKey) ([]domain.Rental, error) {
	it := r.client.Collection(rentalsCollection).
		Where("dates", "array-contains", day.String()).
		Documents(ctx)
	return r.collect(it)
}

func (r *rentalRepository) collect(it *firestore.DocumentIterator) ([]domain.Rental, error) {
	defer it.Stop()
	var rentals []domain.Rental
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate rentals: %w", err)
		}
		var doc rentalDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode rental %s: %w", snap.Ref.ID, err)
		}
		rental := domain.Rental{
			ID:    snap.Ref.ID,
			Dates: doc.Dates,
		}
		if doc.ItemRef != nil {
			rental.ItemID = doc.ItemRef.ID
		}
		if doc.UserRef != nil {
			rental.UserID = doc.UserRef.ID
		}
		if !doc.CreatedOn.IsZero() {
			rental.CreatedOn = doc.CreatedOn.UTC().Format(time.RFC3339)
		}
		rentals = append(rentals, rental)
	}
	return rentals, nil
}
