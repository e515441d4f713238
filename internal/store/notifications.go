package store

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mzansigossip/backend/internal/models"
)

// appendNotificationLocked stamps and appends a derived notification.
// Callers hold the store lock and are responsible for snapshotting the
// notifications collection together with the mutation that caused it.
func (s *Store) appendNotificationLocked(n models.Notification) {
	n.ID = uuid.NewString()
	n.CreatedAt = s.now()
	s.notifications = append(s.notifications, n)
}

// NotificationsFor returns the user's notifications, newest first.
func (s *Store) NotificationsFor(_ context.Context, userID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Notification
	for i := range s.notifications {
		if s.notifications[i].ToUserID == userID {
			out = append(out, s.notifications[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// MarkNotificationsRead flips every unread notification addressed to the
// user and reports how many changed.
func (s *Store) MarkNotificationsRead(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.notifications {
		if s.notifications[i].ToUserID == userID && !s.notifications[i].Read {
			s.notifications[i].Read = true
			changed++
		}
	}
	if changed > 0 {
		s.saveLocked(keyNotifications)
	}
	return changed, nil
}
