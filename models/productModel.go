package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductId   string             `bson:"productId" json:"productId"`
	ProductName string             `bson:"productName" json:"productName" validate:"required,min=2,max=100"`
	Image       string             `bson:"image" json:"image" validate:"required"`
	Rating      float64            `bson:"rating" json:"rating" validate:"min=0,max=5"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Vegetarian  bool               `bson:"vegetarian" json:"vegetarian"`
	Price       float64            `bson:"price" json:"price" validate:"required,min=0"`
	Stock       int                `bson:"stock" json:"stock" validate:"min=0"`
	CategoryId  string             `bson:"categoryId" json:"categoryId" validate:"required"`
	IsLunchItem bool               `bson:"isLunchItem" json:"isLunchItem"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
