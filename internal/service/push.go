package service

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	"rentify-backend/internal/logger"
)

type fcmPushService struct {
	client *messaging.Client
}

// NewPushService delivers pushes through Firebase Cloud Messaging.
func NewPushService(client *messaging.Client) PushService {
	return &fcmPushService{client: client}
}

func (s *fcmPushService) Send(ctx context.Context, token, title, body string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	logger.ExternalServiceCall("fcm", "Send", "title", title)
	_, err := s.client.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "Send", err)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	return nil
}
