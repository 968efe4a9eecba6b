package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/delivery"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
)

// orderAt restores a single item order in the given lifecycle state.
func orderAt(t *testing.T, customerID, foodPlaceID kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), 2, mustMoney(t, 500))
	require.NoError(t, err)

	totals := order.Totals{
		Subtotal:    mustMoney(t, 1000),
		ServiceFee:  mustMoney(t, 100),
		DeliveryFee: mustMoney(t, 349),
		Total:       mustMoney(t, 1449),
	}

	ord, err := order.RestoreOrder(
		kernel.NewUUID(), customerID, foodPlaceID, kernel.NewUUID(),
		[]order.Item{item}, totals, status, time.Now().UTC())
	require.NoError(t, err)
	return ord
}

// deliveryAt restores a delivery for the order in the given state. The
// driver pointer is set for any state past assignment.
func deliveryAt(t *testing.T, orderID kernel.UUID, status delivery.Status, driverID *kernel.UUID) *delivery.Delivery {
	t.Helper()

	var assignedAt *time.Time
	if driverID != nil {
		at := time.Now().UTC()
		assignedAt = &at
	}

	dlv, err := delivery.RestoreDelivery(
		kernel.NewUUID(), orderID, kernel.NewUUID(),
		driverID, status, "4821", time.Now().UTC(), assignedAt)
	require.NoError(t, err)
	return dlv
}

func mustMoney(t *testing.T, pence int64) kernel.Money {
	t.Helper()
	value, err := kernel.NewMoney(pence)
	require.NoError(t, err)
	return value
}
