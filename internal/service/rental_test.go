package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentify-backend/internal/domain"
)

func days(t *testing.T, dates ...string) domain.DaySet {
	t.Helper()
	set, err := domain.ParseDaySet(dates)
	require.NoError(t, err)
	return set
}

func newRentalFixture() (*MockRentalRepo, *MockItemRepo, *MockUserRepo, *MockNotificationRepo, *MockPushService, *MockEmailService, RentalService) {
	rentalRepo := new(MockRentalRepo)
	itemRepo := new(MockItemRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	pushSvc := new(MockPushService)
	emailSvc := new(MockEmailService)
	svc := NewRentalService(rentalRepo, itemRepo, userRepo, noteRepo, pushSvc, emailSvc)
	return rentalRepo, itemRepo, userRepo, noteRepo, pushSvc, emailSvc, svc
}

func TestRentalService_BookedDates(t *testing.T) {
	rentalRepo, _, _, _, _, _, svc := newRentalFixture()
	ctx := context.Background()

	rentalRepo.On("ListByItem", ctx, "item-1").Return([]domain.Rental{
		{ID: "r1", Dates: []string{"01/07/2026", "02/07/2026"}},
		{ID: "r2", Dates: []string{"02/07/2026", "05/07/2026"}},
		{ID: "r3", Dates: []string{"not-a-date"}},
	}, nil)

	booked, err := svc.BookedDates(ctx, "item-1")
	require.NoError(t, err)

	// Union of all well-formed rentals; the malformed record is skipped.
	assert.Equal(t, []string{"01/07/2026", "02/07/2026", "05/07/2026"}, booked.Strings())
}

func TestRentalService_CreateRental_NotifiesOwner(t *testing.T) {
	rentalRepo, itemRepo, userRepo, noteRepo, pushSvc, emailSvc, svc := newRentalFixture()
	ctx := context.Background()

	item := &domain.Item{ID: "item-1", OwnerID: "owner-1", Name: "Ladder"}
	itemRepo.On("GetByID", ctx, "item-1").Return(item, nil)
	rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
	userRepo.On("GetByID", ctx, "owner-1").Return(&domain.User{
		ID: "owner-1", Username: "Owner", Email: "owner@test.nl", FCMToken: "device-token",
	}, nil)
	userRepo.On("GetByID", ctx, "renter-1").Return(&domain.User{
		ID: "renter-1", Username: "Renter", Email: "renter@test.nl",
	}, nil)
	pushSvc.On("Send", ctx, "device-token", "Your item has been rented!", mock.Anything).Return(nil)
	emailSvc.On("SendItemRentedNotification", ctx, "owner@test.nl", "Owner", "Renter", "Ladder", mock.Anything).Return(nil)
	noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	rental, err := svc.CreateRental(ctx, CreateRentalInput{
		ItemID:   "item-1",
		RenterID: "renter-1",
		Days:     days(t, "10/08/2026", "11/08/2026"),
	})
	require.NoError(t, err)
	assert.Equal(t, "item-1", rental.ItemID)
	assert.Equal(t, "renter-1", rental.UserID)

	pushSvc.AssertExpectations(t)
	emailSvc.AssertExpectations(t)
	noteRepo.AssertExpectations(t)
}

func TestRentalService_CreateRental_OwnItem(t *testing.T) {
	rentalRepo, itemRepo, userRepo, noteRepo, pushSvc, emailSvc, svc := newRentalFixture()
	ctx := context.Background()

	item := &domain.Item{ID: "item-1", OwnerID: "user-1", Name: "Drill"}
	itemRepo.On("GetByID", ctx, "item-1").Return(item, nil)

	input := CreateRentalInput{
		ItemID:   "item-1",
		RenterID: "user-1",
		Days:     days(t, "10/08/2026"),
	}

	_, err := svc.CreateRental(ctx, input)
	assert.ErrorIs(t, err, domain.ErrOwnItem)
	rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// Confirmed bookings of one's own item go through.
	rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
	userRepo.On("GetByID", ctx, "user-1").Return(&domain.User{ID: "user-1", Username: "U", Email: "u@test.nl"}, nil)
	emailSvc.On("SendItemRentedNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	input.ConfirmOwnItem = true
	rental, err := svc.CreateRental(ctx, input)
	require.NoError(t, err)
	assert.NotNil(t, rental)
	// No FCM token on the profile, so no push.
	pushSvc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRentalService_CreateRental_Conflict(t *testing.T) {
	rentalRepo, itemRepo, _, noteRepo, pushSvc, _, svc := newRentalFixture()
	ctx := context.Background()

	itemRepo.On("GetByID", ctx, "item-1").Return(&domain.Item{ID: "item-1", OwnerID: "owner-1"}, nil)
	rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(domain.ErrDatesUnavailable)

	_, err := svc.CreateRental(ctx, CreateRentalInput{
		ItemID:   "item-1",
		RenterID: "renter-1",
		Days:     days(t, "10/08/2026"),
	})
	assert.ErrorIs(t, err, domain.ErrDatesUnavailable)
	pushSvc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRentalService_CreateRental_EmptyDays(t *testing.T) {
	_, itemRepo, _, _, _, _, svc := newRentalFixture()

	_, err := svc.CreateRental(context.Background(), CreateRentalInput{
		ItemID:   "item-1",
		RenterID: "renter-1",
	})
	assert.ErrorIs(t, err, domain.ErrNoDates)
	itemRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRentalService_CreateRental_PushFailureDoesNotFailBooking(t *testing.T) {
	rentalRepo, itemRepo, userRepo, noteRepo, pushSvc, emailSvc, svc := newRentalFixture()
	ctx := context.Background()

	itemRepo.On("GetByID", ctx, "item-1").Return(&domain.Item{ID: "item-1", OwnerID: "owner-1", Name: "Saw"}, nil)
	rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
	userRepo.On("GetByID", ctx, "owner-1").Return(&domain.User{
		ID: "owner-1", Username: "Owner", Email: "owner@test.nl", FCMToken: "stale-token",
	}, nil)
	userRepo.On("GetByID", ctx, "renter-1").Return(&domain.User{ID: "renter-1", Username: "Renter"}, nil)
	pushSvc.On("Send", ctx, "stale-token", mock.Anything, mock.Anything).Return(assert.AnError)
	emailSvc.On("SendItemRentedNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	rental, err := svc.CreateRental(ctx, CreateRentalInput{
		ItemID:   "item-1",
		RenterID: "renter-1",
		Days:     days(t, "10/08/2026"),
	})
	require.NoError(t, err)
	assert.NotNil(t, rental)
}

func TestRentalService_MonthCalendar(t *testing.T) {
	rentalRepo, _, _, _, _, _, svc := newRentalFixture()
	ctx := context.Background()

	rentalRepo.On("ListByItem", ctx, "item-1").Return([]domain.Rental{
		{ID: "r1", Dates: []string{"15/09/2026"}},
	}, nil)

	impl := svc.(*rentalService)
	impl.now = func() time.Time { return time.Date(2026, time.September, 10, 12, 0, 0, 0, time.UTC) }

	cells, err := svc.MonthCalendar(ctx, "item-1", 2026, time.September)
	require.NoError(t, err)

	byDay := make(map[int]domain.Cell)
	for _, cell := range cells {
		if cell.Kind == domain.CellDay {
			byDay[cell.Key.Day] = cell
		}
	}
	require.Len(t, byDay, 30)
	assert.True(t, byDay[15].Disabled)
	assert.False(t, byDay[16].Disabled)
	assert.True(t, byDay[9].Past)
	assert.True(t, byDay[10].Today)
	assert.False(t, byDay[10].Past)
}
