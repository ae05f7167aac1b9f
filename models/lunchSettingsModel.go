package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default lunch settings, written on first read when no record exists.
const (
	DefaultOrderDeadlineTime = "10:00"
)

// LunchSettings is a singleton record: at most one document exists.
type LunchSettings struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderDeadlineTime string             `bson:"orderDeadlineTime" json:"orderDeadlineTime" validate:"required"`
	IsEnabled         bool               `bson:"isEnabled" json:"isEnabled"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
