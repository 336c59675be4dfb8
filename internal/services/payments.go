package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// The gateway is a simulation: no card data leaves the process and the
// decline rules are deterministic so the flow can be demonstrated and
// tested end to end.
var (
	ErrCardDeclined  = errors.New("card declined by issuer")
	ErrInvalidCard   = errors.New("invalid card number")
	ErrInvalidAmount = errors.New("invalid payment amount")
)

// PaymentGateway simulates a card processor and signs receipt payloads.
type PaymentGateway struct {
	secret []byte
}

func NewPaymentGateway(secret string) *PaymentGateway {
	return &PaymentGateway{secret: []byte(secret)}
}

// Charge validates the card and amount. Cards ending in 0000 always
// decline, which gives demos a reliable failure path. Returns the card
// suffix stored with the payment record.
func (g *PaymentGateway) Charge(cardNumber string, amount float64) (last4 string, err error) {
	digits := strings.ReplaceAll(strings.TrimSpace(cardNumber), " ", "")
	if len(digits) < 12 || len(digits) > 19 {
		return "", ErrInvalidCard
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", ErrInvalidCard
		}
	}
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	last4 = digits[len(digits)-4:]
	if last4 == "0000" {
		return last4, ErrCardDeclined
	}
	return last4, nil
}

// ReceiptNumber derives a short human-readable receipt reference.
func ReceiptNumber(paymentID string) string {
	cleaned := strings.ReplaceAll(paymentID, "-", "")
	if len(cleaned) > 12 {
		cleaned = cleaned[:12]
	}
	return "SAF-" + strings.ToUpper(cleaned)
}

// SignReceipt builds the QR payload embedded in receipt PDFs:
// paymentID|receiptNumber|timestamp|signature. Verification recomputes
// the HMAC over the first three fields.
func (g *PaymentGateway) SignReceipt(paymentID, receiptNumber string) string {
	data := fmt.Sprintf("%s|%s|%d", paymentID, receiptNumber, time.Now().Unix())
	return data + "|" + g.sign(data)
}

// VerifyReceipt checks a scanned QR payload's signature.
func (g *PaymentGateway) VerifyReceipt(payload string) bool {
	idx := strings.LastIndex(payload, "|")
	if idx <= 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]
	return hmac.Equal([]byte(sig), []byte(g.sign(data)))
}

func (g *PaymentGateway) sign(data string) string {
	h := hmac.New(sha256.New, g.secret)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
