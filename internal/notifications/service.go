package notifications

import (
	"fmt"

	"moto-auction/internal/biddingerrors"
	model "moto-auction/internal/models"
	"moto-auction/internal/repository"
)

// Inbox is a user's notification list with its unread count
type Inbox struct {
	Notifications []model.Notification `json:"notifications"`
	Unread        int                  `json:"unread"`
}

// Service is the notification surface for authenticated users
type Service struct {
	repo repository.NotificationDB
}

// NewService creates a notification Service
func NewService(repo repository.NotificationDB) *Service {
	return &Service{repo: repo}
}

// List returns the user's notifications, newest first
func (s *Service) List(userID int64) (Inbox, error) {
	if userID <= 0 {
		return Inbox{}, biddingerrors.Validationf("user id must be positive")
	}
	list, err := s.repo.ListNotifications(userID)
	if err != nil {
		return Inbox{}, fmt.Errorf("service: failed to list notifications for user %d: %w", userID, err)
	}
	if list == nil {
		list = []model.Notification{}
	}
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}
	return Inbox{Notifications: list, Unread: unread}, nil
}

// MarkRead marks one of the user's notifications read; repeating it is harmless
func (s *Service) MarkRead(userID, notificationID int64) (model.Notification, error) {
	if userID <= 0 || notificationID <= 0 {
		return model.Notification{}, biddingerrors.Validationf("user and notification ids must be positive")
	}
	n, err := s.repo.MarkNotificationRead(userID, notificationID)
	if err != nil {
		return model.Notification{}, fmt.Errorf("service: failed to mark notification %d read: %w", notificationID, err)
	}
	return n, nil
}

// MarkAllRead marks every notification of the user read and reports how many changed
func (s *Service) MarkAllRead(userID int64) (int, error) {
	if userID <= 0 {
		return 0, biddingerrors.Validationf("user id must be positive")
	}
	n, err := s.repo.MarkAllNotificationsRead(userID)
	if err != nil {
		return 0, fmt.Errorf("service: failed to mark notifications read for user %d: %w", userID, err)
	}
	return n, nil
}
