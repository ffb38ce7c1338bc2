package repositories

import (
	"context"

	"barberflow/internal/models"

	"github.com/google/uuid"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID) ([]*models.Service, error)
}

type serviceRepo struct {
	db DBTX
}

func NewServiceRepo(db DBTX) ServiceRepository {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) Create(ctx context.Context, service *models.Service) error {
	query := `
		INSERT INTO services (id, organization_id, name, price, duration_min, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, service.ID, service.OrganizationID, service.Name, service.Price, service.DurationMin, service.Category)
	return err
}

func (r *serviceRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Service, error) {
	service := &models.Service{}
	query := `
		SELECT id, organization_id, name, price, duration_min, category, created_at, updated_at
		FROM services
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(
		&service.ID, &service.OrganizationID, &service.Name, &service.Price,
		&service.DurationMin, &service.Category, &service.CreatedAt, &service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (r *serviceRepo) Update(ctx context.Context, service *models.Service) error {
	query := `
		UPDATE services
		SET name = $1, price = $2, duration_min = $3, category = $4, updated_at = NOW()
		WHERE organization_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, service.Name, service.Price, service.DurationMin, service.Category, service.OrganizationID, service.ID)
	return err
}

func (r *serviceRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM services WHERE organization_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, organizationID, id)
	return err
}

func (r *serviceRepo) List(ctx context.Context, organizationID uuid.UUID) ([]*models.Service, error) {
	query := `
		SELECT id, organization_id, name, price, duration_min, category, created_at, updated_at
		FROM services
		WHERE organization_id = $1
		ORDER BY category, name
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		service := &models.Service{}
		if err := rows.Scan(
			&service.ID, &service.OrganizationID, &service.Name, &service.Price,
			&service.DurationMin, &service.Category, &service.CreatedAt, &service.UpdatedAt,
		); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}
