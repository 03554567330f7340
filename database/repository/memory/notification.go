package memoryRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	notificationRepo "lunchbox/database/repository/notification"
	"lunchbox/models"
)

// NotificationStore is an in-memory NotificationRepository.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications map[string]*models.Notification
	// Now stamps createdAt; tests replace it.
	Now func() time.Time
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{
		notifications: make(map[string]*models.Notification),
		Now:           time.Now,
	}
}

var _ notificationRepo.NotificationRepository = (*NotificationStore)(nil)

func (s *NotificationStore) put(n *models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.ID] = n
}

func visible(n *models.Notification, userID string) bool {
	return n.Recipient == nil || *n.Recipient == userID
}

func clone(n *models.Notification) models.Notification {
	c := *n
	if n.Recipient != nil {
		r := *n.Recipient
		c.Recipient = &r
	}
	return c
}

func (s *NotificationStore) Create(ctx context.Context, recipient string, kind models.NotificationKind, tag models.NotificationTag, message string) (*models.Notification, error) {
	n, err := models.NewNotification(&recipient, kind, tag, message, s.Now())
	if err != nil {
		return nil, err
	}
	s.put(n)
	out := clone(n)
	return &out, nil
}

func (s *NotificationStore) CreateMany(ctx context.Context, recipients []string, kind models.NotificationKind, tag models.NotificationTag, message string) (int, error) {
	if err := models.ValidateNotificationInput(kind, message); err != nil {
		return 0, err
	}
	created := 0
	for _, r := range recipients {
		if _, err := s.Create(ctx, r, kind, tag, message); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *NotificationStore) CreateBroadcast(ctx context.Context, kind models.NotificationKind, tag models.NotificationTag, message string) (*models.Notification, error) {
	n, err := models.NewNotification(nil, kind, tag, message, s.Now())
	if err != nil {
		return nil, err
	}
	s.put(n)
	out := clone(n)
	return &out, nil
}

func (s *NotificationStore) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := clone(n)
	return &out, nil
}

func (s *NotificationStore) ListFor(ctx context.Context, userID string, opts models.ListOptions) ([]models.Notification, error) {
	opts = notificationRepo.NormalizeListOptions(opts)

	s.mu.RLock()
	matched := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if !visible(n, userID) || (opts.UnreadOnly && n.Read) {
			continue
		}
		matched = append(matched, clone(n))
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if opts.Skip >= len(matched) {
		return []models.Notification{}, nil
	}
	matched = matched[opts.Skip:]
	if len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id, callerID string) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if !visible(n, callerID) {
		return nil, models.ErrForbidden
	}
	n.Read = true
	out := clone(n)
	return &out, nil
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for _, n := range s.notifications {
		if visible(n, userID) && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

func (s *NotificationStore) CountUnread(ctx context.Context, userID string) (models.NotificationCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts models.NotificationCounts
	for _, n := range s.notifications {
		if !visible(n, userID) {
			continue
		}
		counts.Total++
		if !n.Read {
			counts.Unread++
		}
	}
	return counts, nil
}

func (s *NotificationStore) PurgeOlderThan(ctx context.Context, days int, now time.Time) (int64, error) {
	if days <= 0 {
		return 0, models.NewValidationError("days", "retention must be positive")
	}
	cutoff := now.AddDate(0, 0, -days)

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, n := range s.notifications {
		if n.CreatedAt.Before(cutoff) {
			delete(s.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *NotificationStore) ExistsReminderSentToday(ctx context.Context, kind models.NotificationKind, now time.Time) (bool, error) {
	start, end := models.DayBounds(now)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notifications {
		if n.Kind != kind || n.Tag != models.TagScheduledReminder || n.Recipient != nil {
			continue
		}
		if !n.CreatedAt.Before(start) && n.CreatedAt.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

// All returns a snapshot of every stored record.
func (s *NotificationStore) All() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, clone(n))
	}
	return out
}
