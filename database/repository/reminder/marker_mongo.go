package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"lunchbox/database"
	"lunchbox/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoMarkerClaimer claims by inserting into a collection with a unique
// (kind, date) index; a duplicate key means someone else fired.
type MongoMarkerClaimer struct {
	coll *mongo.Collection
}

func NewMongoMarkerClaimer() MarkerClaimer {
	c := &MongoMarkerClaimer{coll: database.DB().Collection("reminder_markers")}
	if err := c.ensureIndexes(); err != nil {
		// Without the unique index concurrent ticks can double fire.
		zap.L().Error("reminder marker index not created", zap.Error(err))
	}
	return c
}

func (c *MongoMarkerClaimer) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (c *MongoMarkerClaimer) Claim(ctx context.Context, kind models.ReminderKind, date string, firedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.coll.InsertOne(ctx, models.ReminderMarker{Kind: kind, Date: date, FiredAt: firedAt})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrAlreadyClaimed
		}
		return fmt.Errorf("failed to claim %s for %s: %w: %v", kind, date, models.ErrStore, err)
	}
	return nil
}

func (c *MongoMarkerClaimer) Release(ctx context.Context, kind models.ReminderKind, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := c.coll.DeleteOne(ctx, bson.M{"kind": kind, "date": date}); err != nil {
		return fmt.Errorf("failed to release %s for %s: %w: %v", kind, date, models.ErrStore, err)
	}
	return nil
}
