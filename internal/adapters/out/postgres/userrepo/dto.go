// Package userrepo provides data transfer objects and mapping functions for
// user account persistence.
package userrepo

import (
	"time"

	"tracking/internal/core/domain/model/account"
)

// UserDTO represents a user account row. The username is the primary key;
// only the bcrypt hash of the password is ever stored.
type UserDTO struct {
	Username     string `gorm:"primaryKey;size:50"`
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// TableName specifies the database table name for user accounts.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user entity to its database representation.
func fromDomain(user *account.User) UserDTO {
	return UserDTO{
		Username:     user.Username(),
		PasswordHash: user.PasswordHash(),
		Role:         user.Role().String(),
	}
}

// toDomain converts a database row back into a user entity.
func toDomain(dto UserDTO) (*account.User, error) {
	return account.RestoreUser(dto.Username, dto.PasswordHash, account.Role(dto.Role))
}
