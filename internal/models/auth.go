package models

import "github.com/golang-jwt/jwt/v5"

// UserRole names a caller's privileges.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// Valid reports whether the role is known.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// JWTClaims represents the JWT payload for access tokens. The subject is the caller id.
type JWTClaims struct {
	Role UserRole `json:"role"`
	jwt.RegisteredClaims
}
