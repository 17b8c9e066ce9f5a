package domain

import "time"

// Role is the coarse permission tier assigned to an account.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for every account: customers, agents and admins.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Activated    bool
	LastLogin    *time.Time
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
