// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases and go straight
// to the database, bypassing the aggregates.
package queries

import (
	"errors"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var (
	ErrAuthenticateUserQueryIsNotConstructed = errors.New(
		"AuthenticateUserQuery must be created via NewAuthenticateUserQuery constructor",
	)

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so a caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthenticateUserQuery checks a username/password pair against the stored
// credential and yields the caller's identity and role on success.
type AuthenticateUserQuery struct {
	username string
	password string

	guard guard.ConstructorGuard
}

// NewAuthenticateUserQuery creates a credential check query.
func NewAuthenticateUserQuery(username, password string) (AuthenticateUserQuery, error) {
	if username == "" {
		return AuthenticateUserQuery{}, errs.NewValueIsRequiredError("username")
	}
	if password == "" {
		return AuthenticateUserQuery{}, errs.NewValueIsRequiredError("password")
	}

	return AuthenticateUserQuery{
		username: username,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q AuthenticateUserQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateUserQueryIsNotConstructed)
}

// Username returns the claimed identity.
func (q AuthenticateUserQuery) Username() string {
	return q.username
}

// Password returns the plaintext credential to verify.
func (q AuthenticateUserQuery) Password() string {
	return q.password
}

// AuthenticateUserQueryResponse is the read model of a successful login.
type AuthenticateUserQueryResponse struct {
	Username string
	Role     string
}
