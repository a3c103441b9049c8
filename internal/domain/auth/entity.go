package auth

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidCredentials indicates a signin failure. Unknown emails and
	// wrong passwords deliberately share this error so callers cannot
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists signals a duplicate email registration.
	ErrEmailExists = errors.New("account already exists")
	// ErrUnauthorized covers a missing or unverifiable product key during a
	// privileged signup. The cause is never disclosed to the caller.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound indicates a missing user record.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole indicates the provided role is not supported.
	ErrInvalidRole = errors.New("invalid role")
	// ErrTokenInvalid means a supplied token is malformed or failed its
	// signature check.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired means the token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Role identifies the privileges assigned to a user.
type Role string

const (
	// RoleBuyer represents a standard buyer account.
	RoleBuyer Role = "BUYER"
	// RoleRealtor represents a realtor who may own listings.
	RoleRealtor Role = "REALTOR"
	// RoleAdmin represents an administrative user.
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a raw string into a Role.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleBuyer:
		return RoleBuyer, nil
	case RoleRealtor:
		return RoleRealtor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// User models the account entity persisted in storage.
type User struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
