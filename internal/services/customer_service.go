package services

import (
	"context"
	"errors"

	"barberflow/internal/models"
	"barberflow/internal/repositories"

	"github.com/google/uuid"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerService interface {
	Create(ctx context.Context, organizationID uuid.UUID, req *CustomerRequest) (*models.Customer, error)
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, organizationID, id uuid.UUID, req *CustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Customer, error)
}

type CustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, organizationID uuid.UUID, req *CustomerRequest) (*models.Customer, error) {
	if req.Name == "" || req.Phone == "" {
		return nil, errors.New("name and phone are required")
	}

	customer := &models.Customer{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Notes:          req.Notes,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, organizationID, id)
}

func (s *customerService) Update(ctx context.Context, organizationID, id uuid.UUID, req *CustomerRequest) (*models.Customer, error) {
	if req.Name == "" || req.Phone == "" {
		return nil, errors.New("name and phone are required")
	}

	customer, err := s.customerRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Notes = req.Notes

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	return s.customerRepo.Delete(ctx, organizationID, id)
}

func (s *customerService) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Customer, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.customerRepo.List(ctx, organizationID, limit, offset)
}
