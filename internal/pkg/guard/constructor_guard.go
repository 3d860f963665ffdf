// Package guard provides a construction check for domain objects.
// Embedding a ConstructorGuard in a struct makes zero-value instances
// detectable, so commands and aggregates can insist on being created through
// their constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// caller passes a nil validation error. Validation of an unconstructed object
// always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated
// constructor. The zero value is "not constructed" and fails validation,
// which prevents direct struct initialization from bypassing invariants.
//
// Example:
//
//	type RegisterUserCommand struct {
//	    username string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewRegisterUserCommand(username string) (RegisterUserCommand, error) {
//	    if username == "" {
//	        return RegisterUserCommand{}, errs.NewValueIsRequiredError("username")
//	    }
//	    return RegisterUserCommand{username: username, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c RegisterUserCommand) Validate() error {
//	    return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the embedding object as
// properly constructed. Call it in every constructor of a guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
