package models

import "time"

// Payment statuses.
const (
	PaymentPaid     = "paid"
	PaymentDeclined = "declined"
)

type Payment struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	CardLast4     string    `json:"card_last4,omitempty"`
	CardHolder    string    `json:"card_holder,omitempty"`
	Status        string    `json:"status"`
	ReceiptNumber string    `json:"receipt_number,omitempty"`
}
