package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/repository"
)

// DefaultRadiusKm is the browse radius applied when the client sends
// none.
const DefaultRadiusKm = 30.0

type itemService struct {
	itemRepo   repository.ItemRepository
	userRepo   repository.UserRepository
	rentalRepo repository.RentalRepository
}

func NewItemService(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	rentalRepo repository.RentalRepository,
) ItemService {
	return &itemService{
		itemRepo:   itemRepo,
		userRepo:   userRepo,
		rentalRepo: rentalRepo,
	}
}

func (s *itemService) AddItem(ctx context.Context, ownerID string, input AddItemInput) (*domain.Item, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("item name is required")
	}
	if !domain.ValidCategory(input.Category) {
		return nil, fmt.Errorf("unknown category %q", input.Category)
	}
	if input.PriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "EUR"
	}

	// The owner's coordinate is copied onto the listing at creation
	// time. Later profile moves do not relocate existing items.
	item := &domain.Item{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    currency,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Latitude:    owner.Latitude,
		Longitude:   owner.Longitude,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *itemService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.itemRepo.ListAll(ctx)
}

func (s *itemService) ListMyItems(ctx context.Context, ownerID string) ([]domain.Item, error) {
	return s.itemRepo.ListByOwner(ctx, ownerID)
}

func (s *itemService) ListRentedItems(ctx context.Context, userID string) ([]domain.Item, error) {
	rentals, err := s.rentalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(rentals))
	var ids []string
	for _, rental := range rentals {
		if rental.ItemID == "" {
			continue
		}
		if _, ok := seen[rental.ItemID]; ok {
			continue
		}
		seen[rental.ItemID] = struct{}{}
		ids = append(ids, rental.ItemID)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.itemRepo.ListByIDs(ctx, ids)
}

func (s *itemService) FilterItems(ctx context.Context, userID string, category Category, query string, radiusKm float64) ([]domain.Item, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	origin, err := user.Coordinate()
	if err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(items, FilterParams{
		Category: category,
		Query:    query,
		Origin:   origin,
		RadiusKm: radiusKm,
	}), nil
}

// Filter applies the browse predicates to the item list. All three
// tests must pass: category (unless CategoryAll), case-insensitive name
// substring, and distance from the origin within the radius inclusive.
// Items without a parseable coordinate never match the radius test.
func Filter(items []domain.Item, params FilterParams) []domain.Item {
	query := strings.ToLower(strings.TrimSpace(params.Query))
	matched := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if params.Category != "" && params.Category != domain.CategoryAll && item.Category != params.Category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		pos, err := item.Coordinate()
		if err != nil {
			// An item without a usable coordinate cannot be placed
			// inside any radius.
			continue
		}
		if !params.Origin.WithinRadiusKm(pos, params.RadiusKm) {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}
