package service

import (
	"context"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) GetLocation(ctx context.Context, userID string) (domain.Coordinate, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.Coordinate{}, err
	}
	return user.Coordinate()
}
