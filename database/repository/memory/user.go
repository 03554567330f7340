package memoryRepo

import (
	"context"
	"sort"
	"sync"

	userRepo "lunchbox/database/repository/user"
	"lunchbox/models"
)

// UserStore is an in-memory UserRepository.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserStore(users ...models.User) *UserStore {
	s := &UserStore{users: make(map[string]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

var _ userRepo.UserRepository = (*UserStore)(nil)

// Put inserts or replaces a user.
func (s *UserStore) Put(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByRoles(ctx context.Context, roles ...string) ([]models.User, error) {
	want := make(map[string]bool, len(roles))
	for _, r := range roles {
		want[r] = true
	}
	return s.filter(func(u models.User) bool { return want[u.Role] }), nil
}

func (s *UserStore) GetAll(ctx context.Context) ([]models.User, error) {
	return s.filter(func(models.User) bool { return true }), nil
}

func (s *UserStore) filter(keep func(models.User) bool) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, u := range s.users {
		if keep(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *UserStore) UpdatePreferences(ctx context.Context, id string, prefs models.NotificationPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.NotificationPreferences = prefs
	s.users[id] = u
	return nil
}
