package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusFlow(t *testing.T) {
	next, ok := StatusPaid.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, next)

	next, ok = StatusConfirmed.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusAssembly, next)

	next, ok = StatusAssembly.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusShipped, next)
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusShipped, StatusDelivered, StatusCancelled} {
		_, ok := s.Next()
		assert.False(t, ok, "%s must have no successor", s)
		assert.True(t, s.Terminal())
	}

	assert.False(t, StatusPaid.Terminal())
	// Unknown states are inert as well.
	assert.True(t, Status("Unbekannt").Terminal())
	assert.False(t, Status("Unbekannt").Known())
}

func TestStatusDwell(t *testing.T) {
	assert.Equal(t, 20*time.Minute, StatusPaid.Dwell())
	assert.Equal(t, 30*time.Minute, StatusConfirmed.Dwell())
	assert.Equal(t, 28*time.Hour, StatusAssembly.Dwell())
	assert.Zero(t, StatusShipped.Dwell())
}

func TestNewOrderNumberFormat(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		n := NewOrderNumber(at)
		assert.Regexp(t, NumberPattern, n)
		assert.Contains(t, n, "BW-20260830-")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"bank_transfer", "card", "paypal"} {
		m, err := ParsePaymentMethod(s)
		assert.NoError(t, err)
		assert.Equal(t, s, m.String())
	}

	_, err := ParsePaymentMethod("cash")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestFormatGermanDate(t *testing.T) {
	assert.Equal(t, "30. August 2026", FormatGermanDate(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1. März 2027", FormatGermanDate(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)))
}
