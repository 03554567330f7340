package memoryRepo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"lunchbox/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNotificationStore_ListForOrderingAndPaging(t *testing.T) {
	s := NewNotificationStore()
	ctx := context.Background()
	base := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		s.Now = clockAt(base.Add(time.Duration(i) * time.Minute))
		_, err := s.Create(ctx, "u1", models.KindOrderConfirmed, models.TagAdHoc, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}
	s.Now = clockAt(base.Add(time.Hour))
	_, err := s.Create(ctx, "u2", models.KindOrderConfirmed, models.TagAdHoc, "not yours")
	require.NoError(t, err)

	items, err := s.ListFor(ctx, "u1", models.ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "msg 4", items[0].Message)
	assert.Equal(t, "msg 0", items[4].Message)

	page, err := s.ListFor(ctx, "u1", models.ListOptions{Limit: 2, Skip: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "msg 3", page[0].Message)

	empty, err := s.ListFor(ctx, "u1", models.ListOptions{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNotificationStore_ReturnsCopies(t *testing.T) {
	s := NewNotificationStore()
	n, err := s.Create(context.Background(), "u1", models.KindOrderConfirmed, models.TagAdHoc, "hi")
	require.NoError(t, err)

	*n.Recipient = "someone-else"
	n.Read = true

	stored, err := s.GetByID(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.RecipientID())
	assert.False(t, stored.Read)
}

func TestNotificationStore_CreateRejectsBadInput(t *testing.T) {
	s := NewNotificationStore()
	ctx := context.Background()

	_, err := s.Create(ctx, "u1", "bogus", models.TagAdHoc, "hi")
	assert.ErrorIs(t, err, models.ErrInvalidKind)

	_, err = s.CreateBroadcast(ctx, models.KindMenuUpdated, models.TagAdHoc, "")
	assert.ErrorIs(t, err, models.ErrValidation)

	created, err := s.CreateMany(ctx, []string{"u1", "u2"}, "bogus", models.TagAdHoc, "hi")
	assert.ErrorIs(t, err, models.ErrInvalidKind)
	assert.Zero(t, created)
	assert.Empty(t, s.All())
}

func TestNotificationStore_ExistsReminderSentToday(t *testing.T) {
	s := NewNotificationStore()
	ctx := context.Background()
	day := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)

	s.Now = clockAt(day.AddDate(0, 0, -1))
	_, err := s.CreateBroadcast(ctx, models.KindOrderReminder, models.TagScheduledReminder, "yesterday")
	require.NoError(t, err)
	s.Now = clockAt(day)
	_, err = s.Create(ctx, "u1", models.KindOrderReminder, models.TagScheduledReminder, "addressed")
	require.NoError(t, err)

	sent, err := s.ExistsReminderSentToday(ctx, models.KindOrderReminder, day)
	require.NoError(t, err)
	assert.False(t, sent)

	_, err = s.CreateBroadcast(ctx, models.KindOrderReminder, models.TagScheduledReminder, "today")
	require.NoError(t, err)
	sent, err = s.ExistsReminderSentToday(ctx, models.KindOrderReminder, day)
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestNotificationStore_PurgeOlderThan(t *testing.T) {
	s := NewNotificationStore()
	_, err := s.PurgeOlderThan(context.Background(), 0, time.Now())
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestMarkerStore_ConcurrentClaimsSingleWinner(t *testing.T) {
	m := NewMarkerStore()
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Claim(ctx, models.ReminderOrder, "2025-03-04", now); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, models.ErrAlreadyClaimed)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	require.NoError(t, m.Claim(ctx, models.ReminderMenuUpdate, "2025-03-04", now))
	require.NoError(t, m.Release(ctx, models.ReminderOrder, "2025-03-04"))
	assert.False(t, m.Has(models.ReminderOrder, "2025-03-04"))
	assert.NoError(t, m.Claim(ctx, models.ReminderOrder, "2025-03-04", now))
}

func TestUserStore(t *testing.T) {
	s := NewUserStore(
		models.User{ID: "b", Role: models.RoleAdmin},
		models.User{ID: "a", Role: models.RoleUser},
		models.User{ID: "c", Role: models.RoleSuperuser},
	)
	ctx := context.Background()

	admins, err := s.GetByRoles(ctx, models.RoleAdmin, models.RoleSuperuser)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "b", admins[0].ID)
	assert.Equal(t, "c", admins[1].ID)

	_, err = s.GetByID(ctx, "zzz")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, s.UpdatePreferences(ctx, "zzz", models.DefaultPreferences()), models.ErrNotFound)

	prefs := models.DefaultPreferences()
	prefs.Frequency = models.FrequencyNone
	require.NoError(t, s.UpdatePreferences(ctx, "a", prefs))
	u, err := s.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyNone, u.NotificationPreferences.Frequency)
}
