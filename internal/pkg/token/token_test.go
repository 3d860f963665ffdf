package token_test

import (
	"testing"
	"time"

	"tracking/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("requires secret", func(t *testing.T) {
		_, err := token.NewService("", time.Hour)
		require.Error(t, err)
	})

	t.Run("requires positive ttl", func(t *testing.T) {
		_, err := token.NewService("secret", 0)
		require.Error(t, err)
	})

	t.Run("creates service", func(t *testing.T) {
		svc, err := token.NewService("secret", time.Hour)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestService_IssueAndVerify(t *testing.T) {
	svc, err := token.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	t.Run("round trip preserves identity and role", func(t *testing.T) {
		signed, issueErr := svc.Issue("m1", "merchant")
		require.NoError(t, issueErr)

		claims, verifyErr := svc.Verify(signed)
		require.NoError(t, verifyErr)
		assert.Equal(t, "m1", claims.Subject)
		assert.Equal(t, "merchant", claims.Role)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, verifyErr := svc.Verify("not-a-token")
		require.ErrorIs(t, verifyErr, token.ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other, otherErr := token.NewService("other-secret", time.Hour)
		require.NoError(t, otherErr)

		signed, issueErr := other.Issue("op1", "operations_team")
		require.NoError(t, issueErr)

		_, verifyErr := svc.Verify(signed)
		require.ErrorIs(t, verifyErr, token.ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		shortLived, shortErr := token.NewService("test-secret", time.Millisecond)
		require.NoError(t, shortErr)

		signed, issueErr := shortLived.Issue("m1", "merchant")
		require.NoError(t, issueErr)

		time.Sleep(10 * time.Millisecond)

		_, verifyErr := svc.Verify(signed)
		require.ErrorIs(t, verifyErr, token.ErrInvalidToken)
	})
}
