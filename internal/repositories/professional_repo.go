package repositories

import (
	"context"

	"barberflow/internal/models"

	"github.com/google/uuid"
)

type ProfessionalRepository interface {
	Create(ctx context.Context, professional *models.Professional) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Professional, error)
	Update(ctx context.Context, professional *models.Professional) error
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID) ([]*models.Professional, error)
	SetPhotoKey(ctx context.Context, organizationID, id uuid.UUID, key string) error

	GetWorkingHours(ctx context.Context, professionalID uuid.UUID) ([]*models.WorkingHour, error)
	ReplaceWorkingHours(ctx context.Context, professionalID uuid.UUID, hours []*models.WorkingHour) error

	GetServiceLink(ctx context.Context, professionalID, serviceID uuid.UUID) (*models.ProfessionalService, error)
	ListServiceLinks(ctx context.Context, professionalID uuid.UUID) ([]*models.ProfessionalService, error)
	ReplaceServiceLinks(ctx context.Context, professionalID uuid.UUID, links []*models.ProfessionalService) error
}

type professionalRepo struct {
	db DBTX
}

func NewProfessionalRepo(db DBTX) ProfessionalRepository {
	return &professionalRepo{db: db}
}

func (r *professionalRepo) Create(ctx context.Context, professional *models.Professional) error {
	query := `
		INSERT INTO professionals (id, organization_id, name, email, job_title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, professional.ID, professional.OrganizationID, professional.Name, professional.Email, professional.JobTitle)
	return err
}

func (r *professionalRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Professional, error) {
	professional := &models.Professional{}
	query := `
		SELECT id, organization_id, name, email, job_title, photo_key, created_at, updated_at
		FROM professionals
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(
		&professional.ID, &professional.OrganizationID, &professional.Name, &professional.Email,
		&professional.JobTitle, &professional.PhotoKey, &professional.CreatedAt, &professional.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return professional, nil
}

func (r *professionalRepo) Update(ctx context.Context, professional *models.Professional) error {
	query := `
		UPDATE professionals
		SET name = $1, email = $2, job_title = $3, updated_at = NOW()
		WHERE organization_id = $4 AND id = $5
	`
	_, err := r.db.Exec(ctx, query, professional.Name, professional.Email, professional.JobTitle, professional.OrganizationID, professional.ID)
	return err
}

func (r *professionalRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM professionals WHERE organization_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, organizationID, id)
	return err
}

func (r *professionalRepo) List(ctx context.Context, organizationID uuid.UUID) ([]*models.Professional, error) {
	query := `
		SELECT id, organization_id, name, email, job_title, photo_key, created_at, updated_at
		FROM professionals
		WHERE organization_id = $1
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var professionals []*models.Professional
	for rows.Next() {
		professional := &models.Professional{}
		if err := rows.Scan(
			&professional.ID, &professional.OrganizationID, &professional.Name, &professional.Email,
			&professional.JobTitle, &professional.PhotoKey, &professional.CreatedAt, &professional.UpdatedAt,
		); err != nil {
			return nil, err
		}
		professionals = append(professionals, professional)
	}
	return professionals, rows.Err()
}

func (r *professionalRepo) SetPhotoKey(ctx context.Context, organizationID, id uuid.UUID, key string) error {
	query := `UPDATE professionals SET photo_key = $1, updated_at = NOW() WHERE organization_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, key, organizationID, id)
	return err
}

func (r *professionalRepo) GetWorkingHours(ctx context.Context, professionalID uuid.UUID) ([]*models.WorkingHour, error) {
	query := `
		SELECT professional_id, weekday, starts, ends, enabled
		FROM professional_working_hours
		WHERE professional_id = $1
		ORDER BY weekday
	`
	rows, err := r.db.Query(ctx, query, professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hours []*models.WorkingHour
	for rows.Next() {
		hour := &models.WorkingHour{}
		if err := rows.Scan(&hour.ProfessionalID, &hour.Weekday, &hour.Starts, &hour.Ends, &hour.Enabled); err != nil {
			return nil, err
		}
		hours = append(hours, hour)
	}
	return hours, rows.Err()
}

// ReplaceWorkingHours swaps the whole weekly schedule in one transaction.
func (r *professionalRepo) ReplaceWorkingHours(ctx context.Context, professionalID uuid.UUID, hours []*models.WorkingHour) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM professional_working_hours WHERE professional_id = $1`, professionalID); err != nil {
		return err
	}

	for _, hour := range hours {
		_, err := tx.Exec(ctx, `
			INSERT INTO professional_working_hours (professional_id, weekday, starts, ends, enabled)
			VALUES ($1, $2, $3, $4, $5)
		`, professionalID, hour.Weekday, hour.Starts, hour.Ends, hour.Enabled)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *professionalRepo) GetServiceLink(ctx context.Context, professionalID, serviceID uuid.UUID) (*models.ProfessionalService, error) {
	link := &models.ProfessionalService{}
	query := `
		SELECT professional_id, service_id, duration_min
		FROM professional_services
		WHERE professional_id = $1 AND service_id = $2
	`
	err := r.db.QueryRow(ctx, query, professionalID, serviceID).Scan(&link.ProfessionalID, &link.ServiceID, &link.DurationMin)
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (r *professionalRepo) ListServiceLinks(ctx context.Context, professionalID uuid.UUID) ([]*models.ProfessionalService, error) {
	query := `
		SELECT professional_id, service_id, duration_min
		FROM professional_services
		WHERE professional_id = $1
	`
	rows, err := r.db.Query(ctx, query, professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.ProfessionalService
	for rows.Next() {
		link := &models.ProfessionalService{}
		if err := rows.Scan(&link.ProfessionalID, &link.ServiceID, &link.DurationMin); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (r *professionalRepo) ReplaceServiceLinks(ctx context.Context, professionalID uuid.UUID, links []*models.ProfessionalService) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM professional_services WHERE professional_id = $1`, professionalID); err != nil {
		return err
	}

	for _, link := range links {
		_, err := tx.Exec(ctx, `
			INSERT INTO professional_services (professional_id, service_id, duration_min)
			VALUES ($1, $2, $3)
		`, professionalID, link.ServiceID, link.DurationMin)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
