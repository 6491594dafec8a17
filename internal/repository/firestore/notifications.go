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

type notificationDoc struct {
	UserID     string            `firestore:"userId"`
	Title      string            `firestore:"title"`
	Message    string            `firestore:"message"`
	IsRead     bool              `firestore:"isRead"`
	Attributes map[string]string `firestore:"attributes,omitempty"`
	CreatedOn  time.Time         `firestore:"createdOn,serverTimestamp"`
}

type notificationRepository struct {
	client *firestore.Client
}

func NewNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	logger.StoreCall("Create", notificationsCollection, "user_id", note.UserID)
	ref := r.client.Collection(notificationsCollection).NewDoc()
	_, err := ref.Create(ctx, notificationDoc{
		UserID:     note.UserID,
		Title:      note.Title,
		Message:    note.Message,
		Attributes: note.Attributes,
	})
	logger.StoreResult("Create", notificationsCollection, err)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	note.ID = ref.ID
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	query := r.client.Collection(notificationsCollection).
		Where("userId", "==", userID).
		OrderBy("createdOn", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	it := query.Documents(ctx)
	defer it.Stop()

	var notes []domain.Notification
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate notifications: %w", err)
		}
		var doc notificationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode notification %s: %w", snap.Ref.ID, err)
		}
		note := domain.Notification{
			ID:         snap.Ref.ID,
			UserID:     doc.UserID,
			Title:      doc.Title,
			Message:    doc.Message,
			IsRead:     doc.IsRead,
			Attributes: doc.Attributes,
		}
		if !doc.CreatedOn.IsZero() {
			note.CreatedOn = doc.CreatedOn.UTC().Format(time.RFC3339)
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID string) error {
	ref := r.client.Collection(notificationsCollection).Doc(id)
	snap, err := ref.Get(ctx)
	if err := notFound(snap, err); err != nil {
		return err
	}
	var doc notificationDoc
	if err := snap.DataTo(&doc); err != nil {
		return fmt.Errorf("decode notification %s: %w", id, err)
	}
	if doc.UserID != userID {
		return repository.ErrNotFound
	}
	_, err = ref.Update(ctx, []firestore.Update{{Path: "isRead", Value: true}})
	if err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return nil
}
