package models

import (
	"fmt"
	"time"
)

// Role is the closed set of access levels known to the application.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleStaff  Role = "Staff"
	RoleViewer Role = "Viewer"
)

// Roles lists every known role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleStaff, RoleViewer}
}

// ParseRole maps a stored role string onto the closed Role set.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleStaff, RoleViewer:
		return Role(value), nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// User is an account profile resolved by the identity backend.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"full_name" json:"full_name"`
	Role         Role      `bson:"role" json:"role"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
