package store

import (
	"context"
	"slices"

	"nuovo/internal/domain/entity"
	domainerrors "nuovo/internal/domain/errors"
	"nuovo/internal/util"
)

// Notifications returns copies of the customer's notifications, newest last.
func (s *Store) Notifications(email string) ([]entity.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return nil, err
	}

	return slices.Clone(user.Notifications), nil
}

// MarkNotificationRead flips a single notification to read.
func (s *Store) MarkNotificationRead(ctx context.Context, email, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return err
	}
	for i := range user.Notifications {
		if user.Notifications[i].ID == notificationID {
			user.Notifications[i].Status = entity.NotificationRead

			return s.flush()
		}
	}

	return domainerrors.ErrNotificationNotFound
}

// MarkAllNotificationsRead flips every notification of the customer to read.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return err
	}
	for i := range user.Notifications {
		user.Notifications[i].Status = entity.NotificationRead
	}

	return s.flush()
}

// DeleteNotification removes a single notification from the customer.
func (s *Store) DeleteNotification(ctx context.Context, email, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.customer(email)
	if err != nil {
		return err
	}
	for i := range user.Notifications {
		if user.Notifications[i].ID == notificationID {
			user.Notifications = slices.Delete(user.Notifications, i, i+1)

			return s.flush()
		}
	}

	return domainerrors.ErrNotificationNotFound
}

// nextNotificationID picks an ID unused within the user's own notification
// list. IDs are only unique per user.
func nextNotificationID(notifications []entity.Notification) string {
	taken := make([]string, 0, len(notifications))
	for _, n := range notifications {
		taken = append(taken, n.ID)
	}

	return util.GenerateID(taken)
}
