package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Every user carries exactly one.
const (
	RoleAdmin        = "admin"
	RoleProfessional = "professional"
	RoleStaff        = "staff"
)

type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"` // Never serialize in JSON
	FullName       string    `json:"name" db:"full_name"`
	Role           string    `json:"role" db:"role"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// UserView is the redacted shape returned by the login endpoint.
type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func (u *User) View() UserView {
	return UserView{
		ID:    u.ID,
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleProfessional, RoleStaff:
		return true
	}
	return false
}
