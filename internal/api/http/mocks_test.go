package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/service"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) BookedDates(ctx context.Context, itemID string) (domain.DaySet, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.DaySet), args.Error(1)
}
func (m *MockRentalService) BookedDatesByUser(ctx context.Context, itemID, userID string) (domain.DaySet, error) {
	args := m.Called(ctx, itemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.DaySet), args.Error(1)
}
func (m *MockRentalService) MonthCalendar(ctx context.Context, itemID string, year int, month time.Month) ([]domain.Cell, error) {
	args := m.Called(ctx, itemID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cell), args.Error(1)
}
func (m *MockRentalService) CreateRental(ctx context.Context, input service.CreateRentalInput) (*domain.Rental, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListMyRentals(ctx context.Context, userID string) ([]domain.Rental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockItemService
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) AddItem(ctx context.Context, ownerID string, input service.AddItemInput) (*domain.Item, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemService) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemService) ListMyItems(ctx context.Context, ownerID string) ([]domain.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemService) ListRentedItems(ctx context.Context, userID string) ([]domain.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemService) FilterItems(ctx context.Context, userID string, category service.Category, query string, radiusKm float64) ([]domain.Item, error) {
	args := m.Called(ctx, userID, category, query, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
