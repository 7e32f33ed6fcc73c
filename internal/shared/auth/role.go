// Package auth defines the closed set of authorization roles and the
// capability check used by every application service.
package auth

import (
	"errors"
	"strings"
)

// Role classifies an identity for authorization decisions.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole normalizes a stored or transported role string into the enum.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// Valid reports whether the role belongs to the closed enum.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Elevated reports whether the role may operate on resources it does not own.
func (r Role) Elevated() bool {
	return r == RoleAdmin
}

// Authorize reports whether role is one of the required roles.
func Authorize(role Role, required ...Role) bool {
	for _, want := range required {
		if role == want {
			return true
		}
	}
	return false
}
