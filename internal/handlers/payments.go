package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/AymanChabbaki/safaria-sub000/internal/database"
	"github.com/AymanChabbaki/safaria-sub000/internal/middleware"
	"github.com/AymanChabbaki/safaria-sub000/internal/models"
	"github.com/AymanChabbaki/safaria-sub000/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

var paymentGateway *services.PaymentGateway

// InitPaymentGateway wires the simulated card processor. Must be called
// before the payment routes are served.
func InitPaymentGateway(gateway *services.PaymentGateway) {
	paymentGateway = gateway
}

type ProcessPaymentRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid4"`
	CardNumber    string `json:"card_number" validate:"required"`
	CardHolder    string `json:"card_holder" validate:"required,min=2,max=255"`
}

// ProcessPayment charges a pending reservation of the caller. A decline
// records a payment row with the declined status and answers 402; a
// success confirms the reservation in the same transaction.
func ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "reservation_id, card_number and card_holder are required")
		return
	}

	userID := middleware.UserID(r)

	var amount float64
	var status string
	err := database.PostgresDB.QueryRowContext(r.Context(),
		"SELECT amount, status FROM reservations WHERE id = $1 AND user_id = $2",
		req.ReservationID, userID).Scan(&amount, &status)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "Reservation not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if status != models.ReservationPending {
		writeError(w, http.StatusConflict, "Reservation is not awaiting payment")
		return
	}

	paymentID := uuid.New().String()
	last4, chargeErr := paymentGateway.Charge(req.CardNumber, amount)
	if chargeErr == services.ErrInvalidCard || chargeErr == services.ErrInvalidAmount {
		writeError(w, http.StatusBadRequest, chargeErr.Error())
		return
	}

	paymentStatus := models.PaymentPaid
	receiptNumber := services.ReceiptNumber(paymentID)
	if chargeErr != nil {
		paymentStatus = models.PaymentDeclined
		receiptNumber = ""
	}

	tx, err := database.PostgresDB.BeginTx(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(r.Context(), `
		INSERT INTO payments (id, created_at, reservation_id, user_id, amount,
			card_last4, card_holder, status, receipt_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
	`, paymentID, time.Now(), req.ReservationID, userID, amount,
		last4, req.CardHolder, paymentStatus, receiptNumber)
	if err != nil {
		log.Printf("ERROR: failed to record payment: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	if paymentStatus == models.PaymentPaid {
		if _, err := tx.ExecContext(r.Context(),
			"UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2",
			models.ReservationConfirmed, req.ReservationID); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to confirm reservation")
			return
		}
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if chargeErr != nil {
		writeJSON(w, http.StatusPaymentRequired, map[string]interface{}{
			"success":    false,
			"message":    "Card declined",
			"payment_id": paymentID,
			"status":     models.PaymentDeclined,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"message":        "Payment successful",
		"payment_id":     paymentID,
		"receipt_number": receiptNumber,
		"amount":         amount,
		"status":         models.PaymentPaid,
	})
}

// GetReceipt renders the PDF receipt for a paid payment. The embedded
// QR code carries an HMAC-signed payload so a scan can be verified
// against the server without trusting the paper.
func GetReceipt(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")
	userID := middleware.UserID(r)

	var payment models.Payment
	var holder, receipt sql.NullString
	var reservationType string
	var reservationListing int64
	var startDate string
	err := database.PostgresDB.QueryRowContext(r.Context(), `
		SELECT p.id, p.created_at, p.reservation_id, p.user_id, p.amount,
			COALESCE(p.card_last4, ''), p.card_holder, p.status, p.receipt_number,
			r.listing_type, r.listing_id, r.start_date::text
		FROM payments p JOIN reservations r ON r.id = p.reservation_id
		WHERE p.id = $1
	`, paymentID).Scan(&payment.ID, &payment.CreatedAt, &payment.ReservationID, &payment.UserID,
		&payment.Amount, &payment.CardLast4, &holder, &payment.Status, &receipt,
		&reservationType, &reservationListing, &startDate)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "Payment not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	payment.CardHolder = holder.String
	payment.ReceiptNumber = receipt.String

	if payment.UserID != userID && !isAdmin(r, userID) {
		writeError(w, http.StatusForbidden, "Not your receipt")
		return
	}
	if payment.Status != models.PaymentPaid {
		writeError(w, http.StatusConflict, "No receipt for a declined payment")
		return
	}

	qrPayload := paymentGateway.SignReceipt(payment.ID, payment.ReceiptNumber)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Safaria Payment Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Receipt: %s", payment.ReceiptNumber))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Card holder: %s", payment.CardHolder))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Card: **** %s", payment.CardLast4))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Amount: %.2f MAD", payment.Amount))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Booking: %s #%d, from %s", reservationType, reservationListing, startDate))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Paid on: %s", payment.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+payment.ReceiptNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// VerifyReceipt checks a scanned QR payload. Public: venue staff scan
// without logging in.
func VerifyReceipt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Payload == "" {
		writeError(w, http.StatusBadRequest, "payload is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"valid":   paymentGateway.VerifyReceipt(req.Payload),
	})
}

func isAdmin(r *http.Request, userID string) bool {
	var role string
	if err := database.PostgresDB.QueryRowContext(r.Context(),
		"SELECT role FROM users WHERE id = $1", userID).Scan(&role); err != nil {
		return false
	}
	return role == "admin"
}
