// Package account contains the user identity model owned by the
// authentication boundary: usernames, bcrypt credential hashes, and the
// role enumeration the rest of the system authorizes against.
package account

import (
	"errors"

	"tracking/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const maxUsernameLength = 50

// ErrUserIsNotConstructed is returned when a User instance was not created
// through NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User is an authenticated identity: a unique username, a bcrypt credential
// hash, and a role. The core trusts the (username, role) pair once a request
// or connection has been authenticated.
type User struct {
	username     string
	passwordHash string
	role         Role

	isConstructed bool
}

// NewUser creates a user from a plaintext password, hashing it with bcrypt.
func NewUser(username, password string, role Role) (*User, error) {
	if password == "" {
		return nil, errs.NewValueIsRequiredError("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return RestoreUser(username, string(hash), role)
}

// RestoreUser reconstructs a user from persistence with an existing hash.
func RestoreUser(username, passwordHash string, role Role) (*User, error) {
	user := &User{isConstructed: true}

	if err := errors.Join(
		user.setUsername(username),
		user.setPasswordHash(passwordHash),
		user.setRole(role),
	); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate ensures the User instance was properly constructed.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// Username returns the unique identity of the user.
func (u *User) Username() string {
	return u.username
}

// PasswordHash returns the bcrypt hash of the user's credential.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role returns the user's authorization role.
func (u *User) Role() Role {
	return u.role
}

// VerifyPassword reports whether the plaintext password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func (u *User) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if len(username) > maxUsernameLength {
		return errs.NewValueIsInvalidError("username")
	}
	u.username = username
	return nil
}

func (u *User) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	u.passwordHash = passwordHash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
