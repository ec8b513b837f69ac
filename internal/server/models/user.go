// Package models defines server-side data models persisted in the database.
package models

import "time"

// Roles a user record can carry. Only teachers may grade.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}

// User is a credential-store record. Immutable after registration except
// via out-of-scope profile updates. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"user_id"`
	Name         string    `json:"user_name"`
	Email        string    `json:"user_email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
