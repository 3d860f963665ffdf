package order_test

import (
	"testing"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrderID(t *testing.T, value string) kernel.OrderID {
	t.Helper()
	id, err := kernel.NewOrderID(value)
	require.NoError(t, err)
	return id
}

func mustCustomer(t *testing.T) kernel.Customer {
	t.Helper()
	customer, err := kernel.NewCustomer("Jane Doe", "+12025550123", "1 Main Street")
	require.NoError(t, err)
	return customer
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(mustOrderID(t, "ORD1"), "Phone", mustCustomer(t), "m1", time.Now().UTC())
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in created status", func(t *testing.T) {
		now := time.Now().UTC()

		o, err := order.NewOrder(mustOrderID(t, "ORD1"), "Phone", mustCustomer(t), "m1", now)

		require.NoError(t, err)
		assert.Equal(t, "ORD1", o.ID().String())
		assert.Equal(t, "Phone", o.ProductName())
		assert.Equal(t, "m1", o.MerchantName())
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, now, o.CreatedAt())
		assert.Equal(t, now, o.UpdatedAt())
		require.NoError(t, o.Validate())
	})

	t.Run("should reject empty product name", func(t *testing.T) {
		_, err := order.NewOrder(mustOrderID(t, "ORD1"), "", mustCustomer(t), "m1", time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject empty merchant name", func(t *testing.T) {
		_, err := order.NewOrder(mustOrderID(t, "ORD1"), "Phone", mustCustomer(t), "", time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero-value id and customer", func(t *testing.T) {
		var id kernel.OrderID
		var customer kernel.Customer

		_, err := order.NewOrder(id, "Phone", customer, "m1", time.Now())

		require.Error(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore a persisted order", func(t *testing.T) {
		createdAt := time.Now().UTC().Add(-time.Hour)
		updatedAt := time.Now().UTC()

		o, err := order.RestoreOrder(
			mustOrderID(t, "ORD1"), "Phone", mustCustomer(t), "m1",
			order.InTransit, createdAt, updatedAt,
		)

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, updatedAt, o.UpdatedAt())
	})

	t.Run("should reject an invalid persisted status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			mustOrderID(t, "ORD1"), "Phone", mustCustomer(t), "m1",
			order.Status(42), time.Now(), time.Now(),
		)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("nil order is invalid", func(t *testing.T) {
		var o *order.Order

		require.Error(t, o.Validate())
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should apply a legal transition and refresh updatedAt", func(t *testing.T) {
		o := newTestOrder(t)
		at := o.UpdatedAt().Add(time.Minute)

		err := o.ChangeStatus(order.PickedUp, at)

		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, o.Status())
		assert.Equal(t, at, o.UpdatedAt())
	})

	t.Run("should walk the full happy path to delivered", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ChangeStatus(order.PickedUp, time.Now()))
		require.NoError(t, o.ChangeStatus(order.InTransit, time.Now()))
		require.NoError(t, o.ChangeStatus(order.Delivered, time.Now()))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should leave the order unchanged on an illegal transition", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.PickedUp, time.Now()))
		before := o.UpdatedAt()

		err := o.ChangeStatus(order.Delivered, time.Now().Add(time.Minute))

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.PickedUp, o.Status())
		assert.Equal(t, before, o.UpdatedAt())
	})

	t.Run("terminal orders reject every further change", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.Cancelled, time.Now()))

		for _, target := range order.AllStatuses() {
			err := o.ChangeStatus(target, time.Now())
			require.Error(t, err, "cancelled -> %s must fail", target)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestOrder_IsOwnedBy(t *testing.T) {
	o := newTestOrder(t)

	assert.True(t, o.IsOwnedBy("m1"))
	assert.False(t, o.IsOwnedBy("m2"))
}

func TestNewStatusChangedEvent(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.ChangeStatus(order.PickedUp, time.Now().UTC()))

	event := order.NewStatusChangedEvent(o, "op1", order.SourceOperations)

	assert.Equal(t, "ORD1", event.OrderID)
	assert.Equal(t, "m1", event.MerchantName)
	assert.Equal(t, order.PickedUp, event.Status)
	assert.Equal(t, o.UpdatedAt(), event.OccurredAt)
	assert.Equal(t, "op1", event.UpdatedBy)
	assert.Equal(t, order.SourceOperations, event.Source)
}
