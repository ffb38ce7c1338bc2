package repositories

import (
	"context"
	"time"

	"barberflow/internal/models"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, status string) error
	ListByDay(ctx context.Context, organizationID uuid.UUID, day time.Time) ([]*models.Appointment, error)
	CountOverlapping(ctx context.Context, organizationID, professionalID uuid.UUID, from, to time.Time) (int, error)
	CountByDay(ctx context.Context, organizationID uuid.UUID, day time.Time) (int, error)
	RevenueByDay(ctx context.Context, organizationID uuid.UUID, day time.Time) (float64, error)
}

type appointmentRepo struct {
	db DBTX
}

func NewAppointmentRepo(db DBTX) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	query := `
		INSERT INTO appointments (id, organization_id, customer_id, service_id, professional_id, starts_at, duration_min, status, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		appointment.ID, appointment.OrganizationID, appointment.CustomerID, appointment.ServiceID,
		appointment.ProfessionalID, appointment.StartsAt, appointment.DurationMin, appointment.Status, appointment.Price,
	)
	return err
}

func (r *appointmentRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	query := `
		SELECT id, organization_id, customer_id, service_id, professional_id, starts_at, duration_min, status, price, created_at, updated_at
		FROM appointments
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(
		&appointment.ID, &appointment.OrganizationID, &appointment.CustomerID, &appointment.ServiceID,
		&appointment.ProfessionalID, &appointment.StartsAt, &appointment.DurationMin, &appointment.Status,
		&appointment.Price, &appointment.CreatedAt, &appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, status string) error {
	query := `UPDATE appointments SET status = $1, updated_at = NOW() WHERE organization_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, status, organizationID, id)
	return err
}

// ListByDay returns the agenda for one calendar day, joined with the
// customer and service names the timeline shows.
func (r *appointmentRepo) ListByDay(ctx context.Context, organizationID uuid.UUID, day time.Time) ([]*models.Appointment, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	query := `
		SELECT a.id, a.organization_id, a.customer_id, a.service_id, a.professional_id,
		       a.starts_at, a.duration_min, a.status, a.price, a.created_at, a.updated_at,
		       c.name, c.phone, s.name
		FROM appointments a
		JOIN customers c ON c.id = a.customer_id
		JOIN services s ON s.id = a.service_id
		WHERE a.organization_id = $1 AND a.starts_at >= $2 AND a.starts_at < $3
		ORDER BY a.starts_at
	`
	rows, err := r.db.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		appointment := &models.Appointment{}
		if err := rows.Scan(
			&appointment.ID, &appointment.OrganizationID, &appointment.CustomerID, &appointment.ServiceID,
			&appointment.ProfessionalID, &appointment.StartsAt, &appointment.DurationMin, &appointment.Status,
			&appointment.Price, &appointment.CreatedAt, &appointment.UpdatedAt,
			&appointment.CustomerName, &appointment.CustomerPhone, &appointment.ServiceName,
		); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, rows.Err()
}

// CountOverlapping counts non-cancelled appointments of a professional
// intersecting [from, to).
func (r *appointmentRepo) CountOverlapping(ctx context.Context, organizationID, professionalID uuid.UUID, from, to time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE organization_id = $1 AND professional_id = $2 AND status <> 'cancelled'
		  AND starts_at < $4 AND starts_at + make_interval(mins => duration_min) > $3
	`
	err := r.db.QueryRow(ctx, query, organizationID, professionalID, from, to).Scan(&count)
	return count, err
}

func (r *appointmentRepo) CountByDay(ctx context.Context, organizationID uuid.UUID, day time.Time) (int, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	var count int
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE organization_id = $1 AND starts_at >= $2 AND starts_at < $3 AND status <> 'cancelled'
	`
	err := r.db.QueryRow(ctx, query, organizationID, from, to).Scan(&count)
	return count, err
}

func (r *appointmentRepo) RevenueByDay(ctx context.Context, organizationID uuid.UUID, day time.Time) (float64, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	var revenue float64
	query := `
		SELECT COALESCE(SUM(price), 0)
		FROM appointments
		WHERE organization_id = $1 AND starts_at >= $2 AND starts_at < $3 AND status = 'completed'
	`
	err := r.db.QueryRow(ctx, query, organizationID, from, to).Scan(&revenue)
	return revenue, err
}
