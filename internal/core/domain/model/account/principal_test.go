package account_test

import (
	"testing"

	"tracking/internal/core/domain/model/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrincipal(t *testing.T) {
	p, err := account.NewPrincipal("acme", account.RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, "acme", p.Identity)
	assert.Equal(t, account.RoleMerchant, p.Role)

	_, err = account.NewPrincipal("", account.RoleMerchant)
	require.Error(t, err)

	_, err = account.NewPrincipal("acme", account.Role("admin"))
	require.Error(t, err)
}

func TestPrincipal_CanViewOrdersOf(t *testing.T) {
	ops, err := account.NewPrincipal("ops1", account.RoleOperationsTeam)
	require.NoError(t, err)
	merchant, err := account.NewPrincipal("acme", account.RoleMerchant)
	require.NoError(t, err)

	assert.True(t, ops.IsOperations())
	assert.True(t, ops.CanViewOrdersOf("acme"))
	assert.True(t, ops.CanViewOrdersOf("globex"))

	assert.False(t, merchant.IsOperations())
	assert.True(t, merchant.CanViewOrdersOf("acme"))
	assert.False(t, merchant.CanViewOrdersOf("globex"))
}
