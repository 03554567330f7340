package settingsRepo

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
)

const settingsDocID = "app"

type mongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo returns a SettingsRepository over the "settings" collection.
func NewMongoSettingsRepo() SettingsRepository {
	return &mongoSettingsRepo{coll: database.DB().Collection("settings")}
}

func (r *mongoSettingsRepo) Get(ctx context.Context) (models.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Settings
	err := r.coll.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Settings{}, nil
		}
		return models.Settings{}, fmt.Errorf("failed to load settings: %w: %v", models.ErrStore, err)
	}
	return s, nil
}

func (r *mongoSettingsRepo) Update(ctx context.Context, s models.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.UpdatedAt = time.Now()
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": settingsDocID},
		bson.M{"$set": s},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w: %v", models.ErrStore, err)
	}
	return nil
}
