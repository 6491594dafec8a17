package service

import (
	"context"

	"rentify-backend/internal/domain"
	"rentify-backend/internal/repository"
)

const defaultNotificationLimit = 50

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return s.noteRepo.ListByUser(ctx, userID, limit)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}
