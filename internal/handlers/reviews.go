package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/AymanChabbaki/safaria-sub000/internal/middleware"
	"github.com/AymanChabbaki/safaria-sub000/internal/models"
	"github.com/AymanChabbaki/safaria-sub000/internal/services"
	"github.com/go-chi/chi/v5"
)

type CreateReviewRequest struct {
	ListingType string `json:"listing_type" validate:"required,oneof=artisan sejour caravane"`
	ListingID   int64  `json:"listing_id" validate:"required,gt=0"`
	Rating      int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment     string `json:"comment" validate:"max=2000"`
}

// CreateReview stores a review for a listing. The write is asynchronous
// so a slow Mongo never blocks the response path.
func CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "listing_type, listing_id and a rating from 1 to 5 are required")
		return
	}

	userID := middleware.UserID(r)
	userName := ""
	if user, err := findUserByID(r, userID); err == nil {
		userName = user.Name
	}

	services.SaveReviewAsync(models.Review{
		CreatedAt:   time.Now(),
		UserID:      userID,
		UserName:    userName,
		ListingType: req.ListingType,
		ListingID:   req.ListingID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	})

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"success": true,
		"message": "Review submitted",
	})
}

// GetReviews lists reviews for one listing, newest first. ?limit= caps
// the page, at most 100.
func GetReviews(w http.ResponseWriter, r *http.Request) {
	kind, ok := models.KindByName(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown listing type")
		return
	}
	listingID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.ParseInt(raw, 10, 64)
	}

	reviews, err := services.ListReviews(r.Context(), kind.Name, listingID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load reviews")
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}
