package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UserID      string             `bson:"user_id" json:"user_id"`
	UserName    string             `bson:"user_name,omitempty" json:"user_name,omitempty"`
	ListingType string             `bson:"listing_type" json:"listing_type"`
	ListingID   int64              `bson:"listing_id" json:"listing_id"`
	Rating      int                `bson:"rating" json:"rating"`
	Comment     string             `bson:"comment,omitempty" json:"comment,omitempty"`
}
