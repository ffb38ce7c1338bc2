package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"barberflow/internal/models"
	"barberflow/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const photoURLExpiry = time.Hour

type ProfessionalService interface {
	Create(ctx context.Context, organizationID uuid.UUID, req *ProfessionalRequest) (*models.Professional, error)
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Professional, error)
	Update(ctx context.Context, organizationID, id uuid.UUID, req *ProfessionalRequest) (*models.Professional, error)
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID) ([]*models.Professional, error)

	ReplaceWorkingHours(ctx context.Context, organizationID, id uuid.UUID, hours []*models.WorkingHour) error
	GetWorkingHours(ctx context.Context, organizationID, id uuid.UUID) ([]*models.WorkingHour, error)
	ReplaceServiceLinks(ctx context.Context, organizationID, id uuid.UUID, links []*models.ProfessionalService) error
	ListServiceLinks(ctx context.Context, organizationID, id uuid.UUID) ([]*models.ProfessionalService, error)

	UploadPhoto(ctx context.Context, organizationID, id uuid.UUID, reader io.Reader, size int64, contentType string) error
}

type ProfessionalRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	JobTitle string `json:"job_title"`
}

type professionalService struct {
	professionalRepo repositories.ProfessionalRepository
	storageSvc       StorageService
}

func NewProfessionalService(professionalRepo repositories.ProfessionalRepository, storageSvc StorageService) ProfessionalService {
	return &professionalService{professionalRepo: professionalRepo, storageSvc: storageSvc}
}

func (s *professionalService) Create(ctx context.Context, organizationID uuid.UUID, req *ProfessionalRequest) (*models.Professional, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	professional := &models.Professional{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Email:          req.Email,
		JobTitle:       req.JobTitle,
	}

	if err := s.professionalRepo.Create(ctx, professional); err != nil {
		return nil, err
	}
	return professional, nil
}

func (s *professionalService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Professional, error) {
	professional, err := s.professionalRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	s.attachPhotoURL(ctx, professional)
	return professional, nil
}

func (s *professionalService) Update(ctx context.Context, organizationID, id uuid.UUID, req *ProfessionalRequest) (*models.Professional, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	professional, err := s.professionalRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	professional.Name = req.Name
	professional.Email = req.Email
	professional.JobTitle = req.JobTitle

	if err := s.professionalRepo.Update(ctx, professional); err != nil {
		return nil, err
	}
	s.attachPhotoURL(ctx, professional)
	return professional, nil
}

func (s *professionalService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	professional, err := s.professionalRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return err
	}

	if professional.PhotoKey != nil {
		if err := s.storageSvc.RemovePhoto(ctx, *professional.PhotoKey); err != nil {
			log.Warn().Err(err).Str("key", *professional.PhotoKey).Msg("failed to remove professional photo")
		}
	}

	return s.professionalRepo.Delete(ctx, organizationID, id)
}

func (s *professionalService) List(ctx context.Context, organizationID uuid.UUID) ([]*models.Professional, error) {
	professionals, err := s.professionalRepo.List(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	for _, professional := range professionals {
		s.attachPhotoURL(ctx, professional)
	}
	return professionals, nil
}

// ReplaceWorkingHours swaps a professional's full weekly schedule.
func (s *professionalService) ReplaceWorkingHours(ctx context.Context, organizationID, id uuid.UUID, hours []*models.WorkingHour) error {
	if _, err := s.professionalRepo.GetByID(ctx, organizationID, id); err != nil {
		return err
	}

	for _, hour := range hours {
		if hour.Weekday < 0 || hour.Weekday > 6 {
			return fmt.Errorf("invalid weekday %d", hour.Weekday)
		}
		starts, err := time.Parse("15:04", hour.Starts)
		if err != nil {
			return fmt.Errorf("invalid start time %q", hour.Starts)
		}
		ends, err := time.Parse("15:04", hour.Ends)
		if err != nil {
			return fmt.Errorf("invalid end time %q", hour.Ends)
		}
		if !ends.After(starts) {
			return fmt.Errorf("window %s-%s ends before it starts", hour.Starts, hour.Ends)
		}
		hour.ProfessionalID = id
	}

	return s.professionalRepo.ReplaceWorkingHours(ctx, id, hours)
}

func (s *professionalService) GetWorkingHours(ctx context.Context, organizationID, id uuid.UUID) ([]*models.WorkingHour, error) {
	if _, err := s.professionalRepo.GetByID(ctx, organizationID, id); err != nil {
		return nil, err
	}
	return s.professionalRepo.GetWorkingHours(ctx, id)
}

func (s *professionalService) ReplaceServiceLinks(ctx context.Context, organizationID, id uuid.UUID, links []*models.ProfessionalService) error {
	if _, err := s.professionalRepo.GetByID(ctx, organizationID, id); err != nil {
		return err
	}

	for _, link := range links {
		if link.ServiceID == uuid.Nil {
			return errors.New("service_id is required")
		}
		if link.DurationMin < 0 {
			return errors.New("duration cannot be negative")
		}
		link.ProfessionalID = id
	}

	return s.professionalRepo.ReplaceServiceLinks(ctx, id, links)
}

func (s *professionalService) ListServiceLinks(ctx context.Context, organizationID, id uuid.UUID) ([]*models.ProfessionalService, error) {
	if _, err := s.professionalRepo.GetByID(ctx, organizationID, id); err != nil {
		return nil, err
	}
	return s.professionalRepo.ListServiceLinks(ctx, id)
}

func (s *professionalService) UploadPhoto(ctx context.Context, organizationID, id uuid.UUID, reader io.Reader, size int64, contentType string) error {
	if _, err := s.professionalRepo.GetByID(ctx, organizationID, id); err != nil {
		return err
	}

	key := fmt.Sprintf("%s/professionals/%s", organizationID.String(), id.String())
	if err := s.storageSvc.UploadPhoto(ctx, key, reader, size, contentType); err != nil {
		return fmt.Errorf("upload photo: %w", err)
	}

	return s.professionalRepo.SetPhotoKey(ctx, organizationID, id, key)
}

func (s *professionalService) attachPhotoURL(ctx context.Context, professional *models.Professional) {
	if professional.PhotoKey == nil {
		return
	}
	url, err := s.storageSvc.PresignedURL(ctx, *professional.PhotoKey, photoURLExpiry)
	if err != nil {
		log.Warn().Err(err).Str("key", *professional.PhotoKey).Msg("failed to presign photo URL")
		return
	}
	professional.PhotoURL = url
}
