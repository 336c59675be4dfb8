package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeValidCard(t *testing.T) {
	g := NewPaymentGateway("test-secret")

	last4, err := g.Charge("4242 4242 4242 4242", 1200)
	require.NoError(t, err)
	assert.Equal(t, "4242", last4)
}

func TestChargeDeclineRule(t *testing.T) {
	g := NewPaymentGateway("test-secret")

	last4, err := g.Charge("4242424242420000", 1200)
	assert.ErrorIs(t, err, ErrCardDeclined)
	assert.Equal(t, "0000", last4)
}

func TestChargeRejectsBadInput(t *testing.T) {
	g := NewPaymentGateway("test-secret")

	_, err := g.Charge("1234", 100)
	assert.ErrorIs(t, err, ErrInvalidCard)

	_, err = g.Charge("4242abcd42424242", 100)
	assert.ErrorIs(t, err, ErrInvalidCard)

	_, err = g.Charge("4242424242424242", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = g.Charge("4242424242424242", -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestReceiptNumber(t *testing.T) {
	n := ReceiptNumber("a3f9c2e1-7b4d-4e8a-9c01-123456789abc")
	assert.True(t, strings.HasPrefix(n, "SAF-"))
	assert.Equal(t, "SAF-A3F9C2E17B4D", n)
}

func TestReceiptSignatureRoundTrip(t *testing.T) {
	g := NewPaymentGateway("test-secret")

	payload := g.SignReceipt("pay-1", "SAF-ABC123")
	assert.True(t, g.VerifyReceipt(payload))

	// Any byte change breaks the signature.
	assert.False(t, g.VerifyReceipt(strings.Replace(payload, "SAF", "XAF", 1)))

	// A different secret cannot verify.
	other := NewPaymentGateway("other-secret")
	assert.False(t, other.VerifyReceipt(payload))

	assert.False(t, g.VerifyReceipt("garbage"))
	assert.False(t, g.VerifyReceipt(""))
}
