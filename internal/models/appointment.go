package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a booked slot. Price and DurationMin are copied from the
// catalog at booking time so later catalog edits don't rewrite history.
type Appointment struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	CustomerID     uuid.UUID `json:"customer_id" db:"customer_id"`
	ServiceID      uuid.UUID `json:"service_id" db:"service_id"`
	ProfessionalID uuid.UUID `json:"professional_id" db:"professional_id"`
	StartsAt       time.Time `json:"date_time" db:"starts_at"`
	DurationMin    int       `json:"duration" db:"duration_min"`
	Status         string    `json:"status" db:"status"`
	Price          float64   `json:"price" db:"price"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// Joined for the agenda day view.
	CustomerName  string `json:"customer_name,omitempty" db:"-"`
	CustomerPhone string `json:"customer_phone,omitempty" db:"-"`
	ServiceName   string `json:"service_name,omitempty" db:"-"`
}

func ValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}
