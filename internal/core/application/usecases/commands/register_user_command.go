package commands

import (
	"errors"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
)

// RegisterUserCommand represents a request to create a user identity with a
// role of either operations_team or merchant.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	username string
	password string
	role     account.Role

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand creates a user registration command.
// The password stays plaintext here; hashing happens when the account
// entity is constructed inside the handler.
func NewRegisterUserCommand(username, password string, role account.Role) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUsername(username),
		cmd.setPassword(password),
		cmd.setRole(role),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// Username returns the requested unique identity.
func (c RegisterUserCommand) Username() string {
	return c.username
}

// Password returns the plaintext credential to be hashed.
func (c RegisterUserCommand) Password() string {
	return c.password
}

// Role returns the requested authorization role.
func (c RegisterUserCommand) Role() account.Role {
	return c.role
}

func (c *RegisterUserCommand) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	c.username = username
	return nil
}

func (c *RegisterUserCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	c.password = password
	return nil
}

func (c *RegisterUserCommand) setRole(role account.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
