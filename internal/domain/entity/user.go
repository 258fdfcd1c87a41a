package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin           = "admin"
	RoleContractManager = "contract_manager"
	RoleManager         = "manager"
	RoleSupplier        = "supplier"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleContractManager, RoleManager, RoleSupplier:
		return true
	}
	return false
}

// User represents an account in the system.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past the auth layer
	FullName     string
	Phone        string
	Role         string // admin, contract_manager, manager, supplier
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
