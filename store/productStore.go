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

type ProductStore struct {
	products *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{products: database.OpenCollection(db, "products")}
}

// FindProductById returns (nil, nil) when no product matches, so callers can
// distinguish a missing reference from a store failure.
func (s *ProductStore) FindProductById(ctx context.Context, productId string) (*models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"productId": productId}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.ProductId = helper.GenerateID()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := s.products.InsertOne(ctx, product)
	return err
}

func (s *ProductStore) Update(ctx context.Context, productId string, fields bson.M) (bool, error) {
	fields["updatedAt"] = time.Now()

	result, err := s.products.UpdateOne(ctx,
		bson.M{"productId": productId},
		bson.M{"$set": fields},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (s *ProductStore) Delete(ctx context.Context, productId string) (bool, error) {
	result, err := s.products.DeleteOne(ctx, bson.M{"productId": productId})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (s *ProductStore) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.list(ctx, bson.M{})
}

func (s *ProductStore) ListLunchProducts(ctx context.Context) ([]models.Product, error) {
	return s.list(ctx, bson.M{"isLunchItem": true})
}

func (s *ProductStore) ListByCategory(ctx context.Context, categoryId string) ([]models.Product, error) {
	return s.list(ctx, bson.M{"categoryId": categoryId})
}

func (s *ProductStore) list(ctx context.Context, filter bson.M) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "productName", Value: 1}})

	cursor, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
