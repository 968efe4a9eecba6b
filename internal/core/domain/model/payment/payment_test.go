package payment_test

import (
	"testing"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), "pi_test_123", 1449)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("starts pending capture", func(t *testing.T) {
		p := newTestPayment(t)

		assert.Equal(t, payment.PendingCapture, p.Status())
		assert.Equal(t, "pi_test_123", p.IntentID())
		assert.Equal(t, int64(1449), p.Amount().Pence())
	})

	t.Run("requires an intent handle", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.NewUUID(), "", 1449)

		require.Error(t, err)
	})

	t.Run("requires a positive amount", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.NewUUID(), "pi_test_123", 0)

		require.Error(t, err)
	})
}

func TestPayment_Capture(t *testing.T) {
	t.Run("capture completes a pending payment", func(t *testing.T) {
		p := newTestPayment(t)

		changed, err := p.Capture()

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, payment.Completed, p.Status())
	})

	t.Run("capturing a completed payment is a no-op", func(t *testing.T) {
		p := newTestPayment(t)
		_, _ = p.Capture()

		changed, err := p.Capture()

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, payment.Completed, p.Status())
	})

	t.Run("capturing a cancelled payment is rejected", func(t *testing.T) {
		p := newTestPayment(t)
		_, _ = p.Cancel()

		_, err := p.Capture()

		require.ErrorIs(t, err, payment.ErrPaymentAlreadyCancelled)
		assert.Equal(t, payment.Cancelled, p.Status())
	})
}

func TestPayment_Cancel(t *testing.T) {
	t.Run("cancel releases a pending payment", func(t *testing.T) {
		p := newTestPayment(t)

		changed, err := p.Cancel()

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, payment.Cancelled, p.Status())
	})

	t.Run("cancelling a terminal payment is a no-op", func(t *testing.T) {
		cancelled := newTestPayment(t)
		_, _ = cancelled.Cancel()
		changed, err := cancelled.Cancel()
		require.NoError(t, err)
		assert.False(t, changed)

		captured := newTestPayment(t)
		_, _ = captured.Capture()
		changed, err = captured.Cancel()
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, payment.Completed, captured.Status())
	})
}

func TestRestorePayment(t *testing.T) {
	t.Run("restores persisted state", func(t *testing.T) {
		orderID := kernel.NewUUID()

		p, err := payment.RestorePayment(orderID, "pi_x", payment.Completed, 500)

		require.NoError(t, err)
		assert.Equal(t, payment.Completed, p.Status())
		assert.True(t, p.OrderID().IsEqual(orderID))
	})

	t.Run("rejects undefined status", func(t *testing.T) {
		_, err := payment.RestorePayment(kernel.NewUUID(), "pi_x", payment.Status(7), 500)

		require.Error(t, err)
	})
}

func TestPayment_Validate(t *testing.T) {
	var p *payment.Payment
	assert.Equal(t, payment.ErrPaymentIsNotConstructed, p.Validate())

	bare := &payment.Payment{}
	assert.Equal(t, payment.ErrPaymentIsNotConstructed, bare.Validate())
}
