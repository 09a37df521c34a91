package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSyndic   Role = "SYNDIC"
	RoleResident Role = "RESIDENT"
	RoleRh       Role = "RH"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSyndic, RoleResident, RoleRh, RoleEmployee:
		return true
	}
	return false
}

// AllRoles lists every known role in a stable order.
var AllRoles = []Role{RoleAdmin, RoleSyndic, RoleResident, RoleRh, RoleEmployee}

// User represents a user in the domain layer
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // Hashed
	Role      Role
	Gender    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Reclamation statuses
const (
	ReclamationOpen       = "OPEN"
	ReclamationInProgress = "IN_PROGRESS"
	ReclamationResolved   = "RESOLVED"
	ReclamationRejected   = "REJECTED"
)

// Caisse transaction kinds
const (
	CaisseCredit = "CREDIT"
	CaisseDebit  = "DEBIT"
)
