package kernel_test

import (
	"strings"
	"testing"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	t.Run("should create from valid value", func(t *testing.T) {
		id, err := kernel.NewOrderID("ORD1")

		require.NoError(t, err)
		assert.Equal(t, "ORD1", id.String())
		require.NoError(t, id.Validate())
	})

	t.Run("should reject empty value", func(t *testing.T) {
		_, err := kernel.NewOrderID("")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject value longer than 50 characters", func(t *testing.T) {
		_, err := kernel.NewOrderID(strings.Repeat("x", 51))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should accept value of exactly 50 characters", func(t *testing.T) {
		id, err := kernel.NewOrderID(strings.Repeat("x", 50))

		require.NoError(t, err)
		assert.Len(t, id.String(), 50)
	})
}

func TestOrderID_IsEqual(t *testing.T) {
	a, err := kernel.NewOrderID("ORD1")
	require.NoError(t, err)
	b, err := kernel.NewOrderID("ORD1")
	require.NoError(t, err)
	c, err := kernel.NewOrderID("ORD2")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestOrderID_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var id kernel.OrderID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrOrderIDIsNotConstructed, err)
	})
}
