package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	CategoryId    string             `bson:"categoryId" json:"categoryId"`
	CategoryName  string             `bson:"categoryName" json:"categoryName" validate:"required,min=2,max=50"`
	Description   string             `bson:"description" json:"description"`
	CategoryImage string             `bson:"categoryImage" json:"categoryImage"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
