package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/Abhin-Krishna-MP/CakeFarm/config"
	"github.com/Abhin-Krishna-MP/CakeFarm/models"
)

// LunchStore holds the singleton lunch settings document.
type LunchStore struct {
	settings *mongo.Collection
}

func NewLunchStore(db *mongo.Database) *LunchStore {
	return &LunchStore{settings: database.OpenCollection(db, "lunchsettings")}
}

// ReadLunchSettings returns the settings record, creating it with defaults
// ("10:00", enabled) on first read.
func (s *LunchStore) ReadLunchSettings(ctx context.Context) (*models.LunchSettings, error) {
	var settings models.LunchSettings
	err := s.settings.FindOne(ctx, bson.M{}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		now := time.Now()
		settings = models.LunchSettings{
			OrderDeadlineTime: models.DefaultOrderDeadlineTime,
			IsEnabled:         true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if _, err := s.settings.InsertOne(ctx, &settings); err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// WriteLunchSettings updates the singleton in place, creating it if absent.
func (s *LunchStore) WriteLunchSettings(ctx context.Context, deadlineTime string, isEnabled bool) (*models.LunchSettings, error) {
	now := time.Now()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings models.LunchSettings
	err := s.settings.FindOneAndUpdate(ctx,
		bson.M{},
		bson.M{
			"$set": bson.M{
				"orderDeadlineTime": deadlineTime,
				"isEnabled":         isEnabled,
				"updatedAt":         now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		opts,
	).Decode(&settings)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
