package queries_test

import (
	"testing"

	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func TestNewGetOrderHistoryQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderHistoryQuery(mustOrderID(t, "ORD-1"), merchantPrincipal("acme"))
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetOrderHistoryQuery_Errors(t *testing.T) {
	_, err := queries.NewGetOrderHistoryQuery(kernel.OrderID{}, merchantPrincipal("acme"))
	require.Error(t, err)

	_, err = queries.NewGetOrderHistoryQuery(mustOrderID(t, "ORD-1"), account.Principal{Identity: "x"})
	require.Error(t, err)
}

func TestGetOrderHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderHistoryQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetOrderHistoryQueryIsNotConstructed)
}
