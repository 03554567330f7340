package memoryRepo

import (
	"context"
	"sync"
	"time"

	reminderRepo "lunchbox/database/repository/reminder"
	"lunchbox/models"
)

// MarkerStore is an in-memory MarkerClaimer with the same uniqueness
// guarantee as the Mongo index.
type MarkerStore struct {
	mu      sync.Mutex
	markers map[string]models.ReminderMarker
}

func NewMarkerStore() *MarkerStore {
	return &MarkerStore{markers: make(map[string]models.ReminderMarker)}
}

var _ reminderRepo.MarkerClaimer = (*MarkerStore)(nil)

func markerKey(kind models.ReminderKind, date string) string {
	return string(kind) + "|" + date
}

func (s *MarkerStore) Claim(ctx context.Context, kind models.ReminderKind, date string, firedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := markerKey(kind, date)
	if _, exists := s.markers[key]; exists {
		return models.ErrAlreadyClaimed
	}
	s.markers[key] = models.ReminderMarker{Kind: kind, Date: date, FiredAt: firedAt}
	return nil
}

func (s *MarkerStore) Release(ctx context.Context, kind models.ReminderKind, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, markerKey(kind, date))
	return nil
}

// Has reports whether (kind, date) is claimed.
func (s *MarkerStore) Has(kind models.ReminderKind, date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.markers[markerKey(kind, date)]
	return ok
}
