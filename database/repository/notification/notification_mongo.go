package notificationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lunchbox/database"
	"lunchbox/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoNotificationRepo creates the repository over the "notifications" collection.
func NewMongoNotificationRepo() NotificationRepository {
	repo := &MongoNotificationRepo{
		coll: database.DB().Collection("notifications"),
		now:  time.Now,
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("notification indexes not created", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// visibleTo matches records addressed to userID and broadcasts.
func visibleTo(userID string) bson.M {
	return bson.M{"$or": []bson.M{
		{"recipient": userID},
		{"recipient": nil},
	}}
}

func (r *MongoNotificationRepo) insert(ctx context.Context, n *models.Notification) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w: %v", models.ErrStore, err)
	}
	return nil
}

func (r *MongoNotificationRepo) Create(ctx context.Context, recipient string, kind models.NotificationKind, tag models.NotificationTag, message string) (*models.Notification, error) {
	n, err := models.NewNotification(&recipient, kind, tag, message, r.now())
	if err != nil {
		return nil, err
	}
	if err := r.insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *MongoNotificationRepo) CreateBroadcast(ctx context.Context, kind models.NotificationKind, tag models.NotificationTag, message string) (*models.Notification, error) {
	n, err := models.NewNotification(nil, kind, tag, message, r.now())
	if err != nil {
		return nil, err
	}
	if err := r.insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *MongoNotificationRepo) CreateMany(ctx context.Context, recipients []string, kind models.NotificationKind, tag models.NotificationTag, message string) (int, error) {
	if len(recipients) == 0 {
		return 0, nil
	}
	now := r.now()
	docs := make([]any, 0, len(recipients))
	for i := range recipients {
		recipient := recipients[i]
		n, err := models.NewNotification(&recipient, kind, tag, message, now)
		if err != nil {
			return 0, err
		}
		docs = append(docs, n)
	}

	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	// Unordered so one bad document does not stop the rest.
	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	created := 0
	if res != nil {
		created = len(res.InsertedIDs)
	}
	if err != nil {
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) {
			created = len(docs) - len(bwe.WriteErrors)
		}
		return created, fmt.Errorf("failed to create notifications: %w: %v", models.ErrStore, err)
	}
	return created, nil
}

func (r *MongoNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var n models.Notification
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch notification %s: %w: %v", id, models.ErrStore, err)
	}
	return &n, nil
}

func (r *MongoNotificationRepo) ListFor(ctx context.Context, userID string, opts models.ListOptions) ([]models.Notification, error) {
	opts = NormalizeListOptions(opts)

	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := visibleTo(userID)
	if opts.UnreadOnly {
		filter["read"] = false
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(opts.Limit)).
		SetSkip(int64(opts.Skip))

	cursor, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w: %v", models.ErrStore, err)
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0, opts.Limit)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w: %v", models.ErrStore, err)
	}
	return notifications, nil
}

func (r *MongoNotificationRepo) MarkRead(ctx context.Context, id, callerID string) (*models.Notification, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := visibleTo(callerID)
	filter["id"] = id
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n models.Notification
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"read": true}}, opts).Decode(&n)
	if err == nil {
		return &n, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to mark notification %s read: %w: %v", id, models.ErrStore, err)
	}

	// Distinguish a missing record from one owned by someone else.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, models.ErrForbidden
}

func (r *MongoNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := visibleTo(userID)
	filter["read"] = false
	res, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w: %v", models.ErrStore, err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoNotificationRepo) CountUnread(ctx context.Context, userID string) (models.NotificationCounts, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, visibleTo(userID))
	if err != nil {
		return models.NotificationCounts{}, fmt.Errorf("failed to count notifications: %w: %v", models.ErrStore, err)
	}
	unreadFilter := visibleTo(userID)
	unreadFilter["read"] = false
	unread, err := r.coll.CountDocuments(ctx, unreadFilter)
	if err != nil {
		return models.NotificationCounts{}, fmt.Errorf("failed to count unread notifications: %w: %v", models.ErrStore, err)
	}
	return models.NotificationCounts{Total: total, Unread: unread}, nil
}

func (r *MongoNotificationRepo) PurgeOlderThan(ctx context.Context, days int, now time.Time) (int64, error) {
	if days <= 0 {
		return 0, models.NewValidationError("days", "retention must be positive")
	}
	ctx, cancel := newContext(ctx, 30*time.Second)
	defer cancel()

	cutoff := now.AddDate(0, 0, -days)
	res, err := r.coll.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to purge notifications: %w: %v", models.ErrStore, err)
	}
	return res.DeletedCount, nil
}

func (r *MongoNotificationRepo) ExistsReminderSentToday(ctx context.Context, kind models.NotificationKind, now time.Time) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	start, end := models.DayBounds(now)
	filter := bson.M{
		"kind":      kind,
		"tag":       models.TagScheduledReminder,
		"recipient": nil,
		"createdAt": bson.M{"$gte": start, "$lt": end},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check reminder for %s: %w: %v", kind, models.ErrStore, err)
	}
	return count > 0, nil
}
