package model

import (
	"fmt"
	"strings"
	"time"
)

// Role is a named permission group carried in tokens
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleCustomer      Role = "Customer"
)

// Roles lists every role known to the system
var Roles = []Role{RoleAdministrator, RoleCustomer}

// ParseRole accepts a role name case-insensitively
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

func (r Role) String() string { return string(r) }

// Account is a login identity. The password is only ever stored as a hash.
type Account struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// HasRole reports whether the account holds role
func (a *Account) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeEmail is applied before every lookup and insert
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
