package services

import (
	"context"
	"log"
	"time"

	"github.com/AymanChabbaki/safaria-sub000/internal/database"
	"github.com/AymanChabbaki/safaria-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reviewsCollection = "reviews"

// EnsureReviewIndexes configures indexes for the reviews collection.
// Called on startup from main after Mongo has connected.
func EnsureReviewIndexes(ctx context.Context) error {
	col := database.MongoDB.Collection(reviewsCollection)

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "listing_type", Value: 1},
				{Key: "listing_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_listing_created"),
		},
	}

	for _, m := range indexModels {
		if _, err := col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// SaveReviewAsync persists a review without blocking the request path;
// the handler has already validated it.
func SaveReviewAsync(review models.Review) {
	go func(r models.Review) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
		if _, err := database.MongoDB.Collection(reviewsCollection).InsertOne(ctx, r); err != nil {
			log.Printf("failed to persist review for %s/%d: %v", r.ListingType, r.ListingID, err)
		}
	}(review)
}

// ListReviews returns the newest reviews for a listing, capped at limit.
func ListReviews(ctx context.Context, listingType string, listingID int64, limit int64) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := database.MongoDB.Collection(reviewsCollection).Find(ctx, bson.M{
		"listing_type": listingType,
		"listing_id":   listingID,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
