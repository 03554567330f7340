package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	memoryRepo "lunchbox/database/repository/memory"
	"lunchbox/models"
	"lunchbox/services/channels"

	"go.uber.org/zap"
)

var errSendFailed = errors.New("send failed")

type fakePush struct {
	mu     sync.Mutex
	sent   []string
	failOn map[string]bool
}

func (f *fakePush) SendPush(ctx context.Context, token string, msg channels.PushMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[token] {
		return errSendFailed
	}
	f.sent = append(f.sent, token)
	return nil
}

func (f *fakePush) tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type fakeEmail struct {
	mu       sync.Mutex
	sent     []string
	subjects []string
	failOn   map[string]bool
	block    bool
}

func (f *fakeEmail) SendEmail(ctx context.Context, to, subject, html string) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[to] {
		return errSendFailed
	}
	f.sent = append(f.sent, to)
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeEmail) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type fixture struct {
	store      *memoryRepo.NotificationStore
	users      *memoryRepo.UserStore
	push       *fakePush
	email      *fakeEmail
	dispatcher *Dispatcher
}

func newFixture(users ...models.User) *fixture {
	store := memoryRepo.NewNotificationStore()
	store.Now = func() time.Time { return time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC) }
	f := &fixture{
		store: store,
		users: memoryRepo.NewUserStore(users...),
		push:  &fakePush{failOn: map[string]bool{}},
		email: &fakeEmail{failOn: map[string]bool{}},
	}
	f.dispatcher = &Dispatcher{
		Notifications: f.store,
		Users:         f.users,
		Push:          f.push,
		Email:         f.email,
		Logger:        zap.NewNop(),
		SendTimeout:   time.Second,
		Concurrency:   4,
	}
	return f
}

func withPrefs(u models.User, method models.DeliveryMethod, freq models.Frequency) models.User {
	p := models.DefaultPreferences()
	p.DeliveryMethod = method
	p.Frequency = freq
	u.NotificationPreferences = p
	return u
}

// failingCreateMany stores the first recipient and then fails.
type failingCreateMany struct {
	*memoryRepo.NotificationStore
}

func (s failingCreateMany) CreateMany(ctx context.Context, recipients []string, kind models.NotificationKind, tag models.NotificationTag, message string) (int, error) {
	if len(recipients) == 0 {
		return 0, nil
	}
	if _, err := s.Create(ctx, recipients[0], kind, tag, message); err != nil {
		return 0, err
	}
	return 1, models.ErrStore
}
