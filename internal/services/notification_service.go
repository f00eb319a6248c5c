// internal/services/notification_service.go
package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/models"
)

// Notifier records in-app notifications for other services.
type Notifier interface {
	Notify(ctx context.Context, user primitive.ObjectID, kind models.NotificationType, message string)
}

type NotificationService struct {
	notifications NotificationRepository
	now           Clock
}

type NotificationRequest struct {
	User    primitive.ObjectID      `json:"user"`
	Type    models.NotificationType `json:"type" validate:"required,notification_type"`
	Message string                  `json:"message" validate:"notblank"`
}

func NewNotificationService(notifications NotificationRepository, now Clock) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		now:           now,
	}
}

func (s *NotificationService) Create(ctx context.Context, req *NotificationRequest) (*models.Notification, error) {
	if req.User.IsZero() {
		return nil, apperrors.Validation(i18n.KeyFieldRequired, "user")
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		User:    req.User,
		Type:    req.Type,
		Message: req.Message,
	}
	notification.BeforeInsert(s.now())

	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// Notify is fire and forget from the caller's point of view: the write
// happens inline but a failure never fails the caller's request.
func (s *NotificationService) Notify(ctx context.Context, user primitive.ObjectID, kind models.NotificationType, message string) {
	_, err := s.Create(ctx, &NotificationRequest{User: user, Type: kind, Message: message})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": user.Hex(),
			"type":    kind,
		}).Warn("Failed to record notification")
	}
}

// GetNotifications returns the user's notifications, newest first.
func (s *NotificationService) GetNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	user, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	return s.notifications.ListByUser(ctx, user)
}

// MarkAsRead flips read to true. Notifications of other users are
// reported as missing.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	notificationID, err := parseID(id, "notification")
	if err != nil {
		return nil, err
	}
	user, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}

	notification, err := s.notifications.MarkRead(ctx, notificationID, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(i18n.KeyNotificationNotFound)
		}
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	user, err := parseID(userID, "user")
	if err != nil {
		return 0, err
	}
	return s.notifications.MarkAllRead(ctx, user)
}
