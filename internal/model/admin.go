package model

// Admin represents the single privileged account stored in the
// `admins` table. One row is seeded at first boot and it is never
// deleted; the only mutation is a password change.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name (case-sensitive match).
//  PasswordHash – bcrypt hashed password.
type Admin struct {
	ID           int64  // admins.id
	Username     string // admins.username
	PasswordHash string // admins.password_hash
}
