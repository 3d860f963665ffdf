package queries

import (
	"context"
	"database/sql"
	"errors"

	"tracking/internal/core/domain/model/account"

	"gorm.io/gorm"
)

// AuthenticateUserQueryHandler verifies login credentials against the users
// table. The stored hash is compared through the account entity so the
// hashing scheme stays in one place.
type AuthenticateUserQueryHandler struct {
	db *gorm.DB
}

// NewAuthenticateUserQueryHandler creates a handler for credential checks.
// Requires a GORM database connection for query execution.
func NewAuthenticateUserQueryHandler(db *gorm.DB) AuthenticateUserQueryHandler {
	return AuthenticateUserQueryHandler{db: db}
}

// Handle executes the credential check.
// Returns ErrInvalidCredentials for an unknown username and for a wrong
// password alike.
func (h AuthenticateUserQueryHandler) Handle(
	ctx context.Context,
	query AuthenticateUserQuery,
) (AuthenticateUserQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return AuthenticateUserQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			username,
			password_hash,
			role
		FROM users
		WHERE username = ?
	`, query.Username()).Row()

	var username, passwordHash, role string
	if err := row.Scan(&username, &passwordHash, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AuthenticateUserQueryResponse{}, ErrInvalidCredentials
		}
		return AuthenticateUserQueryResponse{}, err
	}

	user, err := account.RestoreUser(username, passwordHash, account.Role(role))
	if err != nil {
		return AuthenticateUserQueryResponse{}, err
	}

	if !user.VerifyPassword(query.Password()) {
		return AuthenticateUserQueryResponse{}, ErrInvalidCredentials
	}

	return AuthenticateUserQueryResponse{
		Username: user.Username(),
		Role:     user.Role().String(),
	}, nil
}
