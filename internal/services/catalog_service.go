package services

import (
	"context"
	"errors"
	"time"

	"barberflow/internal/caching"
	"barberflow/internal/models"
	"barberflow/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogService manages the bookable service catalog. List reads go
// through the cache; every write invalidates the organization's entry.
type CatalogService interface {
	Create(ctx context.Context, organizationID uuid.UUID, req *ServiceRequest) (*models.Service, error)
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Service, error)
	Update(ctx context.Context, organizationID, id uuid.UUID, req *ServiceRequest) (*models.Service, error)
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID) ([]*models.Service, error)
}

type ServiceRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration"`
	Category    string  `json:"category"`
}

func (r *ServiceRequest) validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Price <= 0 {
		return errors.New("price must be positive")
	}
	if r.DurationMin <= 0 {
		return errors.New("duration must be positive")
	}
	return nil
}

type catalogService struct {
	serviceRepo repositories.ServiceRepository
	cacheSvc    caching.CacheService
}

func NewCatalogService(serviceRepo repositories.ServiceRepository, cacheSvc caching.CacheService) CatalogService {
	return &catalogService{serviceRepo: serviceRepo, cacheSvc: cacheSvc}
}

func (s *catalogService) Create(ctx context.Context, organizationID uuid.UUID, req *ServiceRequest) (*models.Service, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	service := &models.Service{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Price:          req.Price,
		DurationMin:    req.DurationMin,
		Category:       req.Category,
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	s.invalidate(ctx, organizationID)
	return service, nil
}

func (s *catalogService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Service, error) {
	return s.serviceRepo.GetByID(ctx, organizationID, id)
}

func (s *catalogService) Update(ctx context.Context, organizationID, id uuid.UUID, req *ServiceRequest) (*models.Service, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	service, err := s.serviceRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	service.Name = req.Name
	service.Price = req.Price
	service.DurationMin = req.DurationMin
	service.Category = req.Category

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	s.invalidate(ctx, organizationID)
	return service, nil
}

func (s *catalogService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	if err := s.serviceRepo.Delete(ctx, organizationID, id); err != nil {
		return err
	}
	s.invalidate(ctx, organizationID)
	return nil
}

func (s *catalogService) List(ctx context.Context, organizationID uuid.UUID) ([]*models.Service, error) {
	cached, err := s.cacheSvc.GetServices(ctx, organizationID)
	if err != nil {
		log.Warn().Err(err).Msg("catalog cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	services, err := s.serviceRepo.List(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetServices(ctx, organizationID, services, catalogCacheTTL); err != nil {
		log.Warn().Err(err).Msg("catalog cache write failed")
	}
	return services, nil
}

func (s *catalogService) invalidate(ctx context.Context, organizationID uuid.UUID) {
	if err := s.cacheSvc.InvalidateServices(ctx, organizationID); err != nil {
		log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
