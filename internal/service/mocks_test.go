package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentify-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) SetFCMToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) ListAll(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByItem(ctx context.Context, itemID string) ([]domain.Rental, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByItemAndUser(ctx context.Context, itemID, userID string) ([]domain.Rental, error) {
	args := m.Called(ctx, itemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByUser(ctx context.Context, userID string) ([]domain.Rental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByDay(ctx context.Context, day domain.DayKey) ([]domain.Rental, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockPushService
type MockPushService struct {
	mock.Mock
}

func (m *MockPushService) Send(ctx context.Context, token, title, body string) error {
	args := m.Called(ctx, token, title, body)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendItemRentedNotification(ctx context.Context, ownerEmail, ownerName, renterName, itemName string, dates []string) error {
	args := m.Called(ctx, ownerEmail, ownerName, renterName, itemName, dates)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalStartReminder(ctx context.Context, renterEmail, renterName, itemName, startDate string) error {
	args := m.Called(ctx, renterEmail, renterName, itemName, startDate)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, ownerEmail, ownerName, itemName string) error {
	args := m.Called(ctx, ownerEmail, ownerName, itemName)
	return args.Error(0)
}

// MockVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}
