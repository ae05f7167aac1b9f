package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/Abhin-Krishna-MP/CakeFarm/config"
	"github.com/Abhin-Krishna-MP/CakeFarm/helper"
	"github.com/Abhin-Krishna-MP/CakeFarm/models"
)

type UserStore struct {
	users *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{users: database.OpenCollection(db, "users")}
}

// FindUserById returns (nil, nil) when no user matches.
func (s *UserStore) FindUserById(ctx context.Context, userId string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"userId": userId}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.UserId = helper.GenerateID()
	if user.Role == "" {
		user.Role = "user"
	}
	if user.Avatar == "" {
		user.Avatar = "noProfile.png"
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.users.InsertOne(ctx, user)
	return err
}

func (s *UserStore) UpdateProfile(ctx context.Context, userId string, fields bson.M) (bool, error) {
	fields["updatedAt"] = time.Now()

	result, err := s.users.UpdateOne(ctx,
		bson.M{"userId": userId},
		bson.M{"$set": fields},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
