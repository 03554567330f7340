package notification

import (
	"context"
	"testing"
	"time"

	"lunchbox/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	admin = models.Caller{UserID: "admin", Role: models.RoleAdmin}
	alice = models.Caller{UserID: "alice", Role: models.RoleUser}
	bob   = models.Caller{UserID: "bob", Role: models.RoleUser}
)

func newTestService(t *testing.T) (*DefaultNotificationService, *fixture) {
	t.Helper()
	f := newFixture(
		models.User{ID: "admin", Role: models.RoleAdmin},
		models.User{ID: "alice", Role: models.RoleUser, Email: "alice@lunch.test"},
		models.User{ID: "bob", Role: models.RoleUser},
	)
	svc, err := NewDefaultNotificationService(f.store, f.users, f.dispatcher, 30, zap.NewNop())
	require.NoError(t, err)
	svc.Now = f.store.Now
	return svc, f
}

func TestNewDefaultNotificationService_RequiresDependencies(t *testing.T) {
	_, err := NewDefaultNotificationService(nil, nil, nil, 30, nil)
	assert.Error(t, err)
}

func TestCreateNotification_AddressedRecordLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.CreateNotification(ctx, admin, models.CreateNotificationRequest{
		Recipient: "alice",
		Kind:      models.KindMenuUpdated,
		Message:   "New menu!",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Notification)
	n := res.Notification
	assert.Equal(t, "alice", n.RecipientID())
	assert.False(t, n.Read)
	assert.Equal(t, models.TagAdHoc, n.Tag)

	_, err = svc.MarkRead(ctx, bob, n.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	items, err := svc.ListNotifications(ctx, alice, models.ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].Read)

	updated, err := svc.MarkRead(ctx, alice, n.ID)
	require.NoError(t, err)
	assert.True(t, updated.Read)

	again, err := svc.MarkRead(ctx, alice, n.ID)
	require.NoError(t, err)
	assert.True(t, again.Read)
}

func TestCreateNotification_RequiresAdmin(t *testing.T) {
	svc, f := newTestService(t)

	_, err := svc.CreateNotification(context.Background(), alice, models.CreateNotificationRequest{
		Broadcast: true,
		Kind:      models.KindMenuUpdated,
		Message:   "Free lunch",
	})
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Empty(t, f.store.All())

	_, err = svc.CreateNotification(context.Background(), models.Caller{}, models.CreateNotificationRequest{})
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestCreateNotification_InvalidKindAlwaysRejected(t *testing.T) {
	svc, f := newTestService(t)

	reqs := []models.CreateNotificationRequest{
		{Recipient: "alice", Kind: "lunch_gossip", Message: "hi"},
		{Broadcast: true, Kind: "", Message: "hi"},
		{Kind: "ORDER_REMINDER", Message: ""},
	}
	for _, req := range reqs {
		_, err := svc.CreateNotification(context.Background(), admin, req)
		assert.ErrorIs(t, err, models.ErrInvalidKind, req.Kind)
	}
	assert.Empty(t, f.store.All())
}

func TestCreateNotification_TargetMustBeUnambiguous(t *testing.T) {
	svc, f := newTestService(t)

	for _, req := range []models.CreateNotificationRequest{
		{Kind: models.KindMenuUpdated, Message: "hi"},
		{Recipient: "alice", Broadcast: true, Kind: models.KindMenuUpdated, Message: "hi"},
		{Recipient: "alice", Recipients: []string{"bob"}, Kind: models.KindMenuUpdated, Message: "hi"},
	} {
		_, err := svc.CreateNotification(context.Background(), admin, req)
		assert.ErrorIs(t, err, models.ErrValidation)
	}
	assert.Empty(t, f.store.All())
}

func TestCreateNotification_Recipients(t *testing.T) {
	svc, f := newTestService(t)

	res, err := svc.CreateNotification(context.Background(), admin, models.CreateNotificationRequest{
		Recipients: []string{"alice", "bob"},
		Kind:       models.KindOrderModified,
		Message:    "Kitchen closes early",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Len(t, f.store.All(), 2)
}

func TestMarkRead_Rules(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	owned, err := f.store.Create(ctx, "alice", models.KindOrderConfirmed, models.TagAdHoc, "Confirmed")
	require.NoError(t, err)
	broadcast, err := f.store.CreateBroadcast(ctx, models.KindMenuUpdated, models.TagAdHoc, "Menu")
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, bob, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.MarkRead(ctx, bob, owned.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)
	stored, err := f.store.GetByID(ctx, owned.ID)
	require.NoError(t, err)
	assert.False(t, stored.Read)

	n, err := svc.MarkRead(ctx, bob, broadcast.ID)
	require.NoError(t, err)
	assert.True(t, n.Read)

	n, err = svc.MarkRead(ctx, admin, owned.ID)
	require.NoError(t, err)
	assert.True(t, n.Read)

	_, err = svc.MarkRead(ctx, alice, " ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestMarkAllReadAndCount(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	_, err := f.store.Create(ctx, "alice", models.KindOrderConfirmed, models.TagAdHoc, "one")
	require.NoError(t, err)
	_, err = f.store.Create(ctx, "alice", models.KindOrderModified, models.TagAdHoc, "two")
	require.NoError(t, err)
	_, err = f.store.Create(ctx, "bob", models.KindOrderModified, models.TagAdHoc, "bob's")
	require.NoError(t, err)
	_, err = f.store.CreateBroadcast(ctx, models.KindMenuUpdated, models.TagAdHoc, "menu")
	require.NoError(t, err)

	counts, err := svc.CountNotifications(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationCounts{Total: 3, Unread: 3}, counts)

	updated, err := svc.MarkAllRead(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	unread, err := svc.ListNotifications(ctx, alice, models.ListOptions{UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, unread)

	bobCounts, err := svc.CountNotifications(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationCounts{Total: 2, Unread: 1}, bobCounts)
}

func TestPreferences_GetDefaultsAndSet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	prefs, err := svc.GetPreferences(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), prefs)

	next := models.NotificationPreferences{
		OrderReminders: true,
		DeliveryMethod: models.DeliveryBoth,
		Frequency:      models.FrequencyImportantOnly,
	}
	saved, err := svc.SetPreferences(ctx, alice, next)
	require.NoError(t, err)
	assert.Equal(t, next, saved)

	prefs, err = svc.GetPreferences(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, next, prefs)

	bad := next
	bad.DeliveryMethod = "sms"
	_, err = svc.SetPreferences(ctx, alice, bad)
	assert.ErrorIs(t, err, models.ErrValidation)

	bad = next
	bad.Frequency = "hourly"
	_, err = svc.SetPreferences(ctx, alice, bad)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.GetPreferences(ctx, models.Caller{UserID: "ghost"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPurgeExpired(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()
	now := f.store.Now()

	f.store.Now = func() time.Time { return now.AddDate(0, 0, -45) }
	_, err := f.store.Create(ctx, "alice", models.KindOrderConfirmed, models.TagAdHoc, "old")
	require.NoError(t, err)
	f.store.Now = func() time.Time { return now.AddDate(0, 0, -2) }
	recent, err := f.store.Create(ctx, "alice", models.KindOrderConfirmed, models.TagAdHoc, "recent")
	require.NoError(t, err)

	deleted, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	all := f.store.All()
	require.Len(t, all, 1)
	assert.Equal(t, recent.ID, all[0].ID)
}
