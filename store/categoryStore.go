package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/Abhin-Krishna-MP/CakeFarm/config"
	"github.com/Abhin-Krishna-MP/CakeFarm/helper"
	"github.com/Abhin-Krishna-MP/CakeFarm/models"
)

type CategoryStore struct {
	categories *mongo.Collection
}

func NewCategoryStore(db *mongo.Database) *CategoryStore {
	return &CategoryStore{categories: database.OpenCollection(db, "categories")}
}

func (s *CategoryStore) Create(ctx context.Context, category *models.Category) error {
	now := time.Now()
	category.CategoryId = helper.GenerateID()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := s.categories.InsertOne(ctx, category)
	return err
}

func (s *CategoryStore) GetById(ctx context.Context, categoryId string) (*models.Category, error) {
	var category models.Category
	err := s.categories.FindOne(ctx, bson.M{"categoryId": categoryId}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryStore) Update(ctx context.Context, categoryId string, fields bson.M) (bool, error) {
	fields["updatedAt"] = time.Now()

	result, err := s.categories.UpdateOne(ctx,
		bson.M{"categoryId": categoryId},
		bson.M{"$set": fields},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (s *CategoryStore) Delete(ctx context.Context, categoryId string) (bool, error) {
	result, err := s.categories.DeleteOne(ctx, bson.M{"categoryId": categoryId})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (s *CategoryStore) ListAll(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "categoryName", Value: 1}})

	cursor, err := s.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
