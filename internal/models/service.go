package models

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable catalog entry (cut, beard, eyebrows...).
// DurationMin is the default slot length; professionals may override it.
type Service struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	Name           string    `json:"name" db:"name"`
	Price          float64   `json:"price" db:"price"`
	DurationMin    int       `json:"duration" db:"duration_min"`
	Category       string    `json:"category" db:"category"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
