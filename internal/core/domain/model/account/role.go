package account

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Role is the authorization role attached to a user identity.
type Role string

const (
	// RoleOperationsTeam may drive order status transitions and observes
	// every order's notifications.
	RoleOperationsTeam Role = "operations_team"

	// RoleMerchant may create orders and observes only its own orders.
	RoleMerchant Role = "merchant"
)

// ParseRole converts the wire string into a Role.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks the Role is a member of {operations_team, merchant}.
func (r Role) Validate() error {
	switch r {
	case RoleOperationsTeam, RoleMerchant:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}
