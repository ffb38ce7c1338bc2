package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barberflow/internal/models"
	"barberflow/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

var (
	// ErrServiceNotOffered means the professional is not linked to the
	// requested catalog service.
	ErrServiceNotOffered = errors.New("professional does not offer this service")
	// ErrOutsideWorkingHours means the slot falls outside every enabled
	// window of the professional's weekday schedule.
	ErrOutsideWorkingHours = errors.New("slot is outside working hours")
	// ErrSlotTaken means the slot overlaps another non-cancelled
	// appointment of the same professional.
	ErrSlotTaken = errors.New("slot overlaps an existing appointment")
	// ErrInvalidTransition rejects status changes out of a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")
)

type AppointmentService interface {
	Book(ctx context.Context, organizationID uuid.UUID, req *BookAppointmentRequest) (*models.Appointment, error)
	ListDay(ctx context.Context, organizationID uuid.UUID, day time.Time) ([]*models.Appointment, error)
	ChangeStatus(ctx context.Context, organizationID, id uuid.UUID, status string) (*models.Appointment, error)
	Summary(ctx context.Context, organizationID uuid.UUID, day time.Time) (*DashboardSummary, error)
}

type BookAppointmentRequest struct {
	CustomerID     uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	StartsAt       time.Time
}

type DashboardSummary struct {
	Date              string  `json:"date"`
	AppointmentsToday int     `json:"appointments_today"`
	RevenueToday      float64 `json:"revenue_today"`
	TotalCustomers    int     `json:"total_customers"`
}

type appointmentService struct {
	appointmentRepo  repositories.AppointmentRepository
	serviceRepo      repositories.ServiceRepository
	professionalRepo repositories.ProfessionalRepository
	customerRepo     repositories.CustomerRepository
}

func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	serviceRepo repositories.ServiceRepository,
	professionalRepo repositories.ProfessionalRepository,
	customerRepo repositories.CustomerRepository,
) AppointmentService {
	return &appointmentService{
		appointmentRepo:  appointmentRepo,
		serviceRepo:      serviceRepo,
		professionalRepo: professionalRepo,
		customerRepo:     customerRepo,
	}
}

// Book places an appointment after three checks: the professional offers
// the service, the slot fits an enabled working-hour window, and nothing
// else occupies it. Price and effective duration are frozen on the row.
func (s *appointmentService) Book(ctx context.Context, organizationID uuid.UUID, req *BookAppointmentRequest) (*models.Appointment, error) {
	if _, err := s.customerRepo.GetByID(ctx, organizationID, req.CustomerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("load customer: %w", err)
	}

	service, err := s.serviceRepo.GetByID(ctx, organizationID, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("load service: %w", err)
	}

	link, err := s.professionalRepo.GetServiceLink(ctx, req.ProfessionalID, req.ServiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotOffered
		}
		return nil, fmt.Errorf("load service link: %w", err)
	}

	duration := service.DurationMin
	if link.DurationMin > 0 {
		duration = link.DurationMin
	}
	ends := req.StartsAt.Add(time.Duration(duration) * time.Minute)

	hours, err := s.professionalRepo.GetWorkingHours(ctx, req.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("load working hours: %w", err)
	}
	if !slotWithinWorkingHours(hours, req.StartsAt, duration) {
		return nil, ErrOutsideWorkingHours
	}

	overlapping, err := s.appointmentRepo.CountOverlapping(ctx, organizationID, req.ProfessionalID, req.StartsAt, ends)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if overlapping > 0 {
		return nil, ErrSlotTaken
	}

	appointment := &models.Appointment{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		CustomerID:     req.CustomerID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		StartsAt:       req.StartsAt,
		DurationMin:    duration,
		Status:         models.AppointmentPending,
		Price:          service.Price,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return appointment, nil
}

// slotWithinWorkingHours checks that [start, start+duration) fits inside
// an enabled window of the slot's weekday. Comparison is on minutes of
// the day, matching the "HH:MM" schedule the team screen edits.
func slotWithinWorkingHours(hours []*models.WorkingHour, start time.Time, durationMin int) bool {
	startMin := start.Hour()*60 + start.Minute()
	endMin := startMin + durationMin
	weekday := int(start.Weekday())

	for _, window := range hours {
		if !window.Enabled || window.Weekday != weekday {
			continue
		}
		windowStart, err1 := parseClockMinutes(window.Starts)
		windowEnd, err2 := parseClockMinutes(window.Ends)
		if err1 != nil || err2 != nil {
			continue
		}
		if startMin >= windowStart && endMin <= windowEnd {
			return true
		}
	}
	return false
}

func parseClockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (s *appointmentService) ListDay(ctx context.Context, organizationID uuid.UUID, day time.Time) ([]*models.Appointment, error) {
	return s.appointmentRepo.ListByDay(ctx, organizationID, day)
}

// ChangeStatus applies a transition. Completed and cancelled are terminal;
// completing an appointment counts a visit for the customer.
func (s *appointmentService) ChangeStatus(ctx context.Context, organizationID, id uuid.UUID, status string) (*models.Appointment, error) {
	if !models.ValidAppointmentStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status == models.AppointmentCompleted || appointment.Status == models.AppointmentCancelled {
		return nil, ErrInvalidTransition
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, organizationID, id, status); err != nil {
		return nil, err
	}
	appointment.Status = status

	if status == models.AppointmentCompleted {
		if err := s.customerRepo.IncrementVisits(ctx, organizationID, appointment.CustomerID); err != nil {
			log.Warn().Err(err).Str("customer_id", appointment.CustomerID.String()).Msg("failed to increment customer visits")
		}
	}

	return appointment, nil
}

func (s *appointmentService) Summary(ctx context.Context, organizationID uuid.UUID, day time.Time) (*DashboardSummary, error) {
	count, err := s.appointmentRepo.CountByDay(ctx, organizationID, day)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	revenue, err := s.appointmentRepo.RevenueByDay(ctx, organizationID, day)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	customers, err := s.customerRepo.Count(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	return &DashboardSummary{
		Date:              day.Format("2006-01-02"),
		AppointmentsToday: count,
		RevenueToday:      revenue,
		TotalCustomers:    customers,
	}, nil
}
