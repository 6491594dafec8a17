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

type itemDoc struct {
	ItemName        string                 `firestore:"itemName"`
	ItemDescription string                 `firestore:"itemDescription"`
	PriceCents      int64                  `firestore:"priceCents"`
	Currency        string                 `firestore:"currency"`
	Category        string                 `firestore:"category"`
	UserRef         *firestore.DocumentRef `firestore:"userRef"`
	ImageURL        string                 `firestore:"imageUrl"`
	Latitude        string                 `firestore:"latitude"`
	Longitude       string                 `firestore:"longitude"`
	CreatedOn       time.Time              `firestore:"createdOn,serverTimestamp"`
}

type itemRepository struct {
	client *firestore.Client
}

func NewItemRepository(client *firestore.Client) repository.ItemRepository {
	return &itemRepository{client: client}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	logger.StoreCall("Create", itemsCollection, "owner_id", item.OwnerID)
	ref := r.client.Collection(itemsCollection).NewDoc()
	doc := itemDoc{
		ItemName:        item.Name,
		ItemDescription: item.Description,
		PriceCents:      item.PriceCents,
		Currency:        item.Currency,
		Category:        string(item.Category),
		UserRef:         r.client.Collection(usersCollection).Doc(item.OwnerID),
		ImageURL:        item.ImageURL,
		Latitude:        item.Latitude,
		Longitude:       item.Longitude,
	}
	_, err := ref.Create(ctx, doc)
	logger.StoreResult("Create", itemsCollection, err)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	item.ID = ref.ID
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	snap, err := r.client.Collection(itemsCollection).Doc(id).Get(ctx)
	if err := notFound(snap, err); err != nil {
		return nil, err
	}
	return snapToItem(snap)
}

func (r *itemRepository) ListAll(ctx context.Context) ([]domain.Item, error) {
	return r.collect(ctx, r.client.Collection(itemsCollection).Documents(ctx))
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	ownerRef := r.client.Collection(usersCollection).Doc(ownerID)
	it := r.client.Collection(itemsCollection).Where("userRef", "==", ownerRef).Documents(ctx)
	return r.collect(ctx, it)
}

func (r *itemRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = r.client.Collection(itemsCollection).Doc(id)
	}
	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("get items by ids: %w", err)
	}
	items := make([]domain.Item, 0, len(snaps))
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		item, err := snapToItem(snap)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (r *itemRepository) collect(ctx context.Context, it *firestore.DocumentIterator) ([]domain.Item, error) {
	defer it.Stop()
	var items []domain.Item
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate items: %w", err)
		}
		item, err := snapToItem(snap)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func snapToItem(snap *firestore.DocumentSnapshot) (*domain.Item, error) {
	var doc itemDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode item %s: %w", snap.Ref.ID, err)
	}
	item := &domain.Item{
		ID:          snap.Ref.ID,
		Name:        doc.ItemName,
		Description: doc.ItemDescription,
		PriceCents:  doc.PriceCents,
		Currency:    doc.Currency,
		Category:    domain.Category(doc.Category),
		ImageURL:    doc.ImageURL,
		Latitude:    doc.Latitude,
		Longitude:   doc.Longitude,
	}
	if doc.UserRef != nil {
		item.OwnerID = doc.UserRef.ID
	}
	if !doc.CreatedOn.IsZero() {
		item.CreatedOn = doc.CreatedOn.UTC().Format(time.RFC3339)
	}
	return item, nil
}
