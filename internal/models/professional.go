package models

import (
	"time"

	"github.com/google/uuid"
)

type Professional struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	JobTitle       string    `json:"job_title" db:"job_title"`
	PhotoKey       *string   `json:"-" db:"photo_key"`
	PhotoURL       string    `json:"photo_url,omitempty" db:"-"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// WorkingHour is one enabled attendance window for a weekday.
// Starts and Ends use the wall-clock "HH:MM" format the agenda works in.
type WorkingHour struct {
	ProfessionalID uuid.UUID `json:"professional_id" db:"professional_id"`
	Weekday        int       `json:"weekday" db:"weekday"` // time.Weekday numbering, Sunday = 0
	Starts         string    `json:"starts" db:"starts"`
	Ends           string    `json:"ends" db:"ends"`
	Enabled        bool      `json:"enabled" db:"enabled"`
}

// ProfessionalService links a professional to a catalog service,
// optionally overriding the default duration.
type ProfessionalService struct {
	ProfessionalID uuid.UUID `json:"professional_id" db:"professional_id"`
	ServiceID      uuid.UUID `json:"service_id" db:"service_id"`
	DurationMin    int       `json:"duration" db:"duration_min"`
}
