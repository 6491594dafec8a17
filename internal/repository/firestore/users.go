package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/logger"
	"rentify-backend/internal/repository"
)

type userDoc struct {
	Username  string    `firestore:"username"`
	Email     string    `firestore:"email"`
	Address   string    `firestore:"address"`
	Latitude  string    `firestore:"latitude"`
	Longitude string    `firestore:"longitude"`
	FCMToken  string    `firestore:"fcmToken"`
	CreatedOn time.Time `firestore:"createdOn,serverTimestamp"`
}

type userRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	logger.StoreCall("Upsert", usersCollection, "user_id", user.ID)
	doc := userDoc{
		Username:  user.Username,
		Email:     user.Email,
		Address:   user.Address,
		Latitude:  user.Latitude,
		Longitude: user.Longitude,
		FCMToken:  user.FCMToken,
	}
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Set(ctx, doc)
	logger.StoreResult("Upsert", usersCollection, err)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", user.ID, err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err := notFound(snap, err); err != nil {
		return nil, err
	}
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return docToUser(id, doc), nil
}

func (r *userRepository) SetFCMToken(ctx context.Context, userID, token string) error {
	logger.StoreCall("SetFCMToken", usersCollection, "user_id", userID)
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "fcmToken", Value: token},
	})
	logger.StoreResult("SetFCMToken", usersCollection, err)
	if err != nil {
		return fmt.Errorf("set fcm token for %s: %w", userID, err)
	}
	return nil
}

func docToUser(id string, doc userDoc) *domain.User {
	u := &domain.User{
		ID:        id,
		Username:  doc.Username,
		Email:     doc.Email,
		Address:   doc.Address,
		Latitude:  doc.Latitude,
		Longitude: doc.Longitude,
		FCMToken:  doc.FCMToken,
	}
	if !doc.CreatedOn.IsZero() {
		u.CreatedOn = doc.CreatedOn.UTC().Format(time.RFC3339)
	}
	return u
}
