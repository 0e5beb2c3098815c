package model

import "time"

// Roles assignable to counter accounts.  The role travels inside the access
// token and drives the policy table in internal/access.
const (
	RoleAdmin = "ADMIN" // full access, manages staff accounts
	RoleStaff = "STAFF" // sells tickets and parcels, cannot manage users
	RoleAgent = "AGENT" // external seller restricted to its own ticket sales
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleStaff || s == RoleAgent
}

// User represents a row in the `users` table.  Handlers serialize users
// directly, so the password hash is excluded from JSON output.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password, never returned to clients.
//  Name         – display name shown on receipts and listings.
//  Role         – one of ADMIN, STAFF, AGENT.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
