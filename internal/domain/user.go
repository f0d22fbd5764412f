package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role enumerates the access levels recognised by the CRM.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleSales   Role = "sales"
)

// ErrInvalidRole indicates a role value outside the enumerated set.
var ErrInvalidRole = errors.New("domain: invalid role")

// ParseRole validates raw input and returns a Role.
func ParseRole(rawInput string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(rawInput)) {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleManager):
		return RoleManager, nil
	case string(RoleSales):
		return RoleSales, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, rawInput)
	}
}

// String returns the wire value of the role.
func (r Role) String() string {
	return string(r)
}

// User is a CRM operator account. Users have no realtime sync; the
// collection changes only through commands.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Key implements store.Keyed.
func (u User) Key() int64 { return u.ID }

// UserDraft carries user input for creating an operator account.
type UserDraft struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,user_role"`
}
