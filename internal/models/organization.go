package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization statuses. Transitions are driven by billing events.
const (
	OrgStatusActive    = "active"
	OrgStatusSuspended = "suspended"
	OrgStatusTrial     = "trial"
)

type Organization struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Slug        string     `json:"slug" db:"slug"`
	Status      string     `json:"status" db:"status"`
	TrialEndsAt *time.Time `json:"trial_ends_at" db:"trial_ends_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// CanSignIn reports whether users of this organization may authenticate
// at the given instant. Trial organizations are admitted until their
// trial window closes.
func (o *Organization) CanSignIn(at time.Time) bool {
	switch o.Status {
	case OrgStatusActive:
		return true
	case OrgStatusTrial:
		return o.TrialEndsAt != nil && at.Before(*o.TrialEndsAt)
	}
	return false
}

// OrganizationView is the redacted shape returned by the login endpoint.
type OrganizationView struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (o *Organization) View() OrganizationView {
	return OrganizationView{Name: o.Name, Slug: o.Slug}
}
