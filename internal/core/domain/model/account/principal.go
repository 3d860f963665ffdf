package account

import "tracking/internal/pkg/errs"

// Principal is an authenticated caller: an identity tagged with its role.
// Authorization decisions take the whole structure, never a bare string.
type Principal struct {
	Identity string
	Role     Role
}

// NewPrincipal creates a validated principal.
func NewPrincipal(identity string, role Role) (Principal, error) {
	if identity == "" {
		return Principal{}, errs.NewValueIsRequiredError("identity")
	}
	if err := role.Validate(); err != nil {
		return Principal{}, err
	}
	return Principal{Identity: identity, Role: role}, nil
}

// IsOperations reports whether the caller belongs to the operations team.
func (p Principal) IsOperations() bool {
	return p.Role == RoleOperationsTeam
}

// CanViewOrdersOf reports whether the caller may read orders owned by the
// given merchant. Operations sees everything; a merchant sees only orders
// whose merchant name matches its own identity.
func (p Principal) CanViewOrdersOf(merchantName string) bool {
	return p.IsOperations() || p.Identity == merchantName
}
