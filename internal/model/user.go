package model

// Role values stored in users.role and embedded in access tokens.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// User represents a row in the `users` table.  The password hash never
// leaves the repository and handler layers; responses are built from
// UserDTO which omits it entirely.
//
// Fields:
//  FullName     - display name.
//  Email        - unique among non-deleted users, stored lowercased.
//  PasswordHash - bcrypt hash of the credential.
//  Role         - ADMIN or CUSTOMER.
type User struct {
	Base
	FullName     string
	Email        string
	PasswordHash string
	Role         string
}

// IsAdmin reports whether the user holds the administrative role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
