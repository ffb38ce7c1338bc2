package repositories

import (
	"context"

	"barberflow/internal/models"

	"github.com/google/uuid"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Customer, error)
	Count(ctx context.Context, organizationID uuid.UUID) (int, error)
	IncrementVisits(ctx context.Context, organizationID, id uuid.UUID) error
}

type customerRepo struct {
	db DBTX
}

func NewCustomerRepo(db DBTX) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, organization_id, name, phone, email, notes, total_visits, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, customer.ID, customer.OrganizationID, customer.Name, customer.Phone, customer.Email, customer.Notes)
	return err
}

func (r *customerRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT id, organization_id, name, phone, email, notes, total_visits, created_at, updated_at
		FROM customers
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(
		&customer.ID, &customer.OrganizationID, &customer.Name, &customer.Phone,
		&customer.Email, &customer.Notes, &customer.TotalVisits, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, phone = $2, email = $3, notes = $4, updated_at = NOW()
		WHERE organization_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, customer.Name, customer.Phone, customer.Email, customer.Notes, customer.OrganizationID, customer.ID)
	return err
}

func (r *customerRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM customers WHERE organization_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, organizationID, id)
	return err
}

func (r *customerRepo) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Customer, error) {
	query := `
		SELECT id, organization_id, name, phone, email, notes, total_visits, created_at, updated_at
		FROM customers
		WHERE organization_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(
			&customer.ID, &customer.OrganizationID, &customer.Name, &customer.Phone,
			&customer.Email, &customer.Notes, &customer.TotalVisits, &customer.CreatedAt, &customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *customerRepo) Count(ctx context.Context, organizationID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM customers WHERE organization_id = $1`
	err := r.db.QueryRow(ctx, query, organizationID).Scan(&count)
	return count, err
}

func (r *customerRepo) IncrementVisits(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `UPDATE customers SET total_visits = total_visits + 1, updated_at = NOW() WHERE organization_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, organizationID, id)
	return err
}
