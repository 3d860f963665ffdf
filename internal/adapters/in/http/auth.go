package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/pkg/token"

	"github.com/labstack/echo/v4"
)

// principalContextKey is where RequireUser stores the authenticated
// principal on the echo context.
const principalContextKey = "principal"

// apiKeyHeader carries the shared delivery-channel credential.
const apiKeyHeader = "X-API-Key"

// AuthMiddleware guards routes with bearer-token authentication and
// role checks.
type AuthMiddleware struct {
	tokens *token.Service
}

// NewAuthMiddleware creates middleware backed by the given token service.
func NewAuthMiddleware(tokens *token.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireUser verifies the Authorization bearer token and stores the
// caller's principal on the context. Requests without a valid token get 401.
func (m *AuthMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		rawToken, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || rawToken == "" {
			return c.JSON(http.StatusUnauthorized, errorResponse{
				Code:    http.StatusUnauthorized,
				Message: "missing bearer token",
			})
		}

		principal, err := m.principalFromToken(rawToken)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid or expired token",
			})
		}

		c.Set(principalContextKey, principal)
		return next(c)
	}
}

// RequireRole rejects authenticated callers whose role differs from the
// required one. Must run after RequireUser.
func (m *AuthMiddleware) RequireRole(role account.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := principalFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			if principal.Role != role {
				return c.JSON(http.StatusForbidden, errorResponse{
					Code:    http.StatusForbidden,
					Message: "insufficient role for this operation",
				})
			}

			return next(c)
		}
	}
}

// PrincipalFromToken builds a principal from a raw bearer token. The
// websocket endpoint uses it for its query-parameter token.
func (m *AuthMiddleware) PrincipalFromToken(rawToken string) (account.Principal, error) {
	return m.principalFromToken(rawToken)
}

func (m *AuthMiddleware) principalFromToken(rawToken string) (account.Principal, error) {
	claims, err := m.tokens.Verify(rawToken)
	if err != nil {
		return account.Principal{}, err
	}

	return account.NewPrincipal(claims.Subject, account.Role(claims.Role))
}

// principalFrom reads the principal set by RequireUser.
func principalFrom(c echo.Context) (account.Principal, bool) {
	principal, ok := c.Get(principalContextKey).(account.Principal)
	return principal, ok
}

// RequireAPIKey guards the delivery channel with a shared static credential
// in the X-API-Key header.
func RequireAPIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			supplied := c.Request().Header.Get(apiKeyHeader)
			if supplied == "" ||
				subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid API key",
				})
			}

			return next(c)
		}
	}
}
