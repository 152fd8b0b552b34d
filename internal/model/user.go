package model

import "time"

// Roles stored in the users.role column. Operators schedule and conduct
// verification meetings; admins additionally manage accounts.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

// ValidRole reports whether s is one of the known role names.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleOperator
}

// User mirrors the `users` table. Accounts are never hard-deleted.
//
// Fields:
//
//	ID           – primary key (UUID string).
//	Username     – unique login name.
//	PasswordHash – bcrypt hashed password.
//	Role         – ADMIN or OPERATOR.
//	LastLoginAt  – set on each successful login (null before the first).
type User struct {
	ID           string     // users.id
	Username     string     // users.username
	PasswordHash string     // users.password_hash
	FirstName    string     // users.first_name
	LastName     string     // users.last_name
	Role         string     // users.role
	LastLoginAt  *time.Time // users.last_login_at (nullable)
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
}
