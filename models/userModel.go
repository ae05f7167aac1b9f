package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserId         string             `bson:"userId" json:"userId"`
	Username       string             `bson:"username" json:"username" validate:"required,min=2,max=100"`
	Email          string             `bson:"email" json:"email" validate:"required,email"`
	Password       string             `bson:"password" json:"-" validate:"required,min=6"`
	Avatar         string             `bson:"avatar" json:"avatar"`
	Role           string             `bson:"role" json:"role" validate:"eq=user|eq=admin|eq="`
	RegisterNumber string             `bson:"registerNumber" json:"registerNumber"`
	Department     string             `bson:"department" json:"department"`
	Semester       string             `bson:"semester" json:"semester"`
	Division       string             `bson:"division" json:"division"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
