package userRepo

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

// deliveryProjection limits user documents to the fields used for dispatch.
var deliveryProjection = bson.M{
	"id":                      1,
	"name":                    1,
	"email":                   1,
	"role":                    1,
	"fcmToken":                1,
	"notificationPreferences": 1,
}

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	repo := &MongoUserRepo{coll: database.DB().Collection("users")}

	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("user indexes not created", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	opts := options.FindOne().SetProjection(deliveryProjection)
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w: %v", id, models.ErrStore, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) GetByRoles(ctx context.Context, roles ...string) ([]models.User, error) {
	return r.find(ctx, bson.M{"role": bson.M{"$in": roles}})
}

func (r *MongoUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoUserRepo) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetProjection(deliveryProjection))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w: %v", models.ErrStore, err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w: %v", models.ErrStore, err)
	}
	return users, nil
}

func (r *MongoUserRepo) UpdatePreferences(ctx context.Context, id string, prefs models.NotificationPreferences) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"notificationPreferences": prefs,
		"updatedAt":               time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update preferences for user %s: %w: %v", id, models.ErrStore, err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
