package account

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return Role(raw), nil
	}
	return "", ErrUnknownRole
}

// IsStaff reports whether the role may manage orders, products and accounts.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func NewUser(name, email, passwordHash string, role Role) (*User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if passwordHash == "" {
		return nil, ErrPasswordRequired
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}

	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Principal is the authenticated actor behind a workflow call. It is always
// passed explicitly, never read from ambient state.
type Principal struct {
	UserID int64
	Role   Role
}
