package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/AymanChabbaki/safaria-sub000/internal/database"
	"github.com/AymanChabbaki/safaria-sub000/internal/middleware"
	"github.com/AymanChabbaki/safaria-sub000/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ListingType string  `json:"listing_type" validate:"required,oneof=artisan sejour caravane"`
	ListingID   int64   `json:"listing_id" validate:"required,gt=0"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     string  `json:"end_date"`
	Guests      int     `json:"guests" validate:"required,gte=1,lte=50"`
	Amount      float64 `json:"amount"`
}

// CreateReservation books a listing for the caller. The amount is never
// trusted from the client: it is recomputed from the stored price and
// the guest count.
func CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "listing_type, listing_id, start_date and guests are required")
		return
	}
	if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
			return
		}
		start, _ := time.Parse("2006-01-02", req.StartDate)
		if end.Before(start) {
			writeError(w, http.StatusBadRequest, "end_date must not precede start_date")
			return
		}
	}

	kind, _ := models.KindByName(req.ListingType)
	var price float64
	err := database.PostgresDB.QueryRowContext(r.Context(),
		"SELECT price FROM "+kind.Table+" WHERE id = $1", req.ListingID).Scan(&price)
	if err != nil {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}

	reservation := models.Reservation{
		ID:          uuid.New().String(),
		UserID:      middleware.UserID(r),
		ListingType: req.ListingType,
		ListingID:   req.ListingID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Guests:      req.Guests,
		Amount:      price * float64(req.Guests),
		Status:      models.ReservationPending,
	}

	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	_, err = database.PostgresDB.ExecContext(r.Context(), `
		INSERT INTO reservations (id, created_at, updated_at, user_id, listing_type, listing_id,
			start_date, end_date, guests, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)
	`, reservation.ID, now, now, reservation.UserID, reservation.ListingType, reservation.ListingID,
		reservation.StartDate, reservation.EndDate, reservation.Guests, reservation.Amount, reservation.Status)
	if err != nil {
		log.Printf("ERROR: failed to create reservation: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create reservation")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"message":     "Reservation created",
		"reservation": reservation,
	})
}

// GetReservations lists the caller's reservations, newest first.
func GetReservations(w http.ResponseWriter, r *http.Request) {
	rows, err := database.PostgresDB.QueryContext(r.Context(), `
		SELECT id, created_at, updated_at, user_id, listing_type, listing_id,
			start_date::text, COALESCE(end_date::text, ''), guests, amount, status
		FROM reservations WHERE user_id = $1 ORDER BY created_at DESC
	`, middleware.UserID(r))
	if err != nil {
		log.Printf("ERROR: failed to list reservations: %v", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt, &res.UserID,
			&res.ListingType, &res.ListingID, &res.StartDate, &res.EndDate,
			&res.Guests, &res.Amount, &res.Status); err != nil {
			writeError(w, http.StatusInternalServerError, "Database error")
			return
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, reservations)
}

// CancelReservation moves a pending reservation of the caller to the
// cancelled status. Paid reservations cannot be cancelled here.
func CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := database.PostgresDB.ExecContext(r.Context(), `
		UPDATE reservations SET status = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND status = $4
	`, models.ReservationCancelled, id, middleware.UserID(r), models.ReservationPending)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to cancel reservation")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		writeError(w, http.StatusNotFound, "No pending reservation with this id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Reservation cancelled"})
}
