package notification

import (
	"context"
	"fmt"

	"bcal/models"
	"bcal/utils"

	"firebase.google.com/go/v4/messaging"
)

// UserLookup resolves a user's push token.
type UserLookup interface {
	GetUserByID(id string) (*models.User, error)
}

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyBookingConfirmed(ctx context.Context, b models.Booking) error
	NotifyBookingReminder(ctx context.Context, b models.Booking) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users UserLookup
}

// NewDefaultNotificationService wires the FCM sender.
func NewDefaultNotificationService(users UserLookup) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user service is nil")
	}
	return &DefaultNotificationService{Users: users}, nil
}

// SendPush looks up the user's FCM token and sends a push.
func (s *DefaultNotificationService) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		// Not every account registers a device; skip silently.
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}

// NotifyBookingConfirmed pushes a confirmation to the host.
func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, b models.Booking) error {
	body := fmt.Sprintf("%s with %s at %s", b.Title, b.GuestName, b.StartTime.Format("Mon 15:04"))
	return s.SendPush(ctx, b.HostID, "New booking", body, map[string]string{
		"type":       "booking_confirmed",
		"booking_id": b.ID,
	})
}

// NotifyBookingReminder pushes an upcoming-meeting reminder to the host.
func (s *DefaultNotificationService) NotifyBookingReminder(ctx context.Context, b models.Booking) error {
	body := fmt.Sprintf("%s starts at %s", b.Title, b.StartTime.Format("15:04"))
	return s.SendPush(ctx, b.HostID, "Upcoming meeting", body, map[string]string{
		"type":       "booking_reminder",
		"booking_id": b.ID,
	})
}
