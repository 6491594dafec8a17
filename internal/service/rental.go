package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/logger"
	"rentify-backend/internal/repository"
)

const rentedPushTitle = "Your item has been rented!"

type rentalService struct {
	rentalRepo repository.RentalRepository
	itemRepo   repository.ItemRepository
	userRepo   repository.UserRepository
	noteRepo   repository.NotificationRepository
	pushSvc    PushService
	emailSvc   EmailService
	now        func() time.Time
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	pushSvc PushService,
	emailSvc EmailService,
) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		itemRepo:   itemRepo,
		userRepo:   userRepo,
		noteRepo:   noteRepo,
		pushSvc:    pushSvc,
		emailSvc:   emailSvc,
		now:        time.Now,
	}
}

func (s *rentalService) BookedDates(ctx context.Context, itemID string) (domain.DaySet, error) {
	rentals, err := s.rentalRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return unionDays(rentals), nil
}

func (s *rentalService) BookedDatesByUser(ctx context.Context, itemID, userID string) (domain.DaySet, error) {
	rentals, err := s.rentalRepo.ListByItemAndUser(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	return unionDays(rentals), nil
}

// unionDays merges the day sets of the rentals, skipping records whose
// dates cannot be parsed so one bad document never hides the rest.
func unionDays(rentals []domain.Rental) domain.DaySet {
	booked := domain.NewDaySet()
	for _, rental := range rentals {
		days, err := rental.Days()
		if err != nil {
			logger.Warn("Skipping rental with malformed dates", "rental_id", rental.ID, "error", err)
			continue
		}
		booked.Union(days)
	}
	return booked
}

func (s *rentalService) MonthCalendar(ctx context.Context, itemID string, year int, month time.Month) ([]domain.Cell, error) {
	booked, err := s.BookedDates(ctx, itemID)
	if err != nil {
		return nil, err
	}
	today := domain.DayKeyFromTime(s.now())
	return domain.BuildMonthGrid(year, month, today, domain.GridSets{Disabled: booked}), nil
}

func (s *rentalService) CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error) {
	if len(input.Days) == 0 {
		return nil, domain.ErrNoDates
	}

	item, err := s.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == input.RenterID && !input.ConfirmOwnItem {
		return nil, domain.ErrOwnItem
	}

	rental := &domain.Rental{
		ID:     input.IdempotencyKey,
		ItemID: input.ItemID,
		UserID: input.RenterID,
		Dates:  input.Days.Strings(),
	}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, rental, item)
	return rental, nil
}

// notifyOwner runs the best-effort post-booking pipeline: push to the
// owner's device, email, and an in-app notification record. The booking
// is already committed; failures here are logged and swallowed.
func (s *rentalService) notifyOwner(ctx context.Context, rental *domain.Rental, item *domain.Item) {
	owner, err := s.userRepo.GetByID(ctx, item.OwnerID)
	if err != nil {
		logger.Warn("Booked item owner lookup failed, skipping notifications",
			"item_id", item.ID, "owner_id", item.OwnerID, "error", err)
		return
	}
	renterName := rental.UserID
	if renter, err := s.userRepo.GetByID(ctx, rental.UserID); err == nil {
		renterName = renter.Username
	}

	body := fmt.Sprintf("%s has been rented for %s", item.Name, strings.Join(rental.Dates, ", "))

	if owner.FCMToken != "" {
		if err := s.pushSvc.Send(ctx, owner.FCMToken, rentedPushTitle, body); err != nil {
			logger.Warn("Rental push notification failed", "rental_id", rental.ID, "error", err)
		}
	}

	_ = s.emailSvc.SendItemRentedNotification(ctx, owner.Email, owner.Username, renterName, item.Name, rental.Dates)

	note := &domain.Notification{
		UserID:  owner.ID,
		Title:   rentedPushTitle,
		Message: body,
		Attributes: map[string]string{
			"type":      "ITEM_RENTED",
			"rental_id": rental.ID,
			"item_id":   item.ID,
		},
	}
	_ = s.noteRepo.Create(ctx, note)
}

func (s *rentalService) ListMyRentals(ctx context.Context, userID string) ([]domain.Rental, error) {
	return s.rentalRepo.ListByUser(ctx, userID)
}
