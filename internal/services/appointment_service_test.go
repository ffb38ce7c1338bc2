package services

import (
	"context"
	"testing"
	"time"

	"barberflow/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Appointment, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, status string) error {
	args := m.Called(ctx, organizationID, id, status)
	return args.Error(0)
}

func (m *MockAppointmentRepository) ListByDay(ctx context.Context, organizationID uuid.UUID, day time.Time) ([]*models.Appointment, error) {
	args := m.Called(ctx, organizationID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) CountOverlapping(ctx context.Context, organizationID, professionalID uuid.UUID, from, to time.Time) (int, error) {
	args := m.Called(ctx, organizationID, professionalID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentRepository) CountByDay(ctx context.Context, organizationID uuid.UUID, day time.Time) (int, error) {
	args := m.Called(ctx, organizationID, day)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentRepository) RevenueByDay(ctx context.Context, organizationID uuid.UUID, day time.Time) (float64, error) {
	args := m.Called(ctx, organizationID, day)
	return args.Get(0).(float64), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, service *models.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, service *models.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockServiceRepository) List(ctx context.Context, organizationID uuid.UUID) ([]*models.Service, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}

type MockProfessionalRepository struct {
	mock.Mock
}

func (m *MockProfessionalRepository) Create(ctx context.Context, professional *models.Professional) error {
	args := m.Called(ctx, professional)
	return args.Error(0)
}

func (m *MockProfessionalRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Professional, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) Update(ctx context.Context, professional *models.Professional) error {
	args := m.Called(ctx, professional)
	return args.Error(0)
}

func (m *MockProfessionalRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockProfessionalRepository) List(ctx context.Context, organizationID uuid.UUID) ([]*models.Professional, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) SetPhotoKey(ctx context.Context, organizationID, id uuid.UUID, key string) error {
	args := m.Called(ctx, organizationID, id, key)
	return args.Error(0)
}

func (m *MockProfessionalRepository) GetWorkingHours(ctx context.Context, professionalID uuid.UUID) ([]*models.WorkingHour, error) {
	args := m.Called(ctx, professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WorkingHour), args.Error(1)
}

func (m *MockProfessionalRepository) ReplaceWorkingHours(ctx context.Context, professionalID uuid.UUID, hours []*models.WorkingHour) error {
	args := m.Called(ctx, professionalID, hours)
	return args.Error(0)
}

func (m *MockProfessionalRepository) GetServiceLink(ctx context.Context, professionalID, serviceID uuid.UUID) (*models.ProfessionalService, error) {
	args := m.Called(ctx, professionalID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfessionalService), args.Error(1)
}

func (m *MockProfessionalRepository) ListServiceLinks(ctx context.Context, professionalID uuid.UUID) ([]*models.ProfessionalService, error) {
	args := m.Called(ctx, professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProfessionalService), args.Error(1)
}

func (m *MockProfessionalRepository) ReplaceServiceLinks(ctx context.Context, professionalID uuid.UUID, links []*models.ProfessionalService) error {
	args := m.Called(ctx, professionalID, links)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Customer, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, organizationID uuid.UUID) (int, error) {
	args := m.Called(ctx, organizationID)
	return args.Int(0), args.Error(1)
}

func (m *MockCustomerRepository) IncrementVisits(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

type AppointmentServiceTestSuite struct {
	suite.Suite
	mockAppointmentRepo  *MockAppointmentRepository
	mockServiceRepo      *MockServiceRepository
	mockProfessionalRepo *MockProfessionalRepository
	mockCustomerRepo     *MockCustomerRepository
	service              AppointmentService

	orgID          uuid.UUID
	customerID     uuid.UUID
	serviceID      uuid.UUID
	professionalID uuid.UUID
	catalogEntry   *models.Service
	// Tuesday 2026-09-01, schedule covers 09:00-18:00.
	tuesdayMorning time.Time
}

func (suite *AppointmentServiceTestSuite) SetupTest() {
	suite.mockAppointmentRepo = &MockAppointmentRepository{}
	suite.mockServiceRepo = &MockServiceRepository{}
	suite.mockProfessionalRepo = &MockProfessionalRepository{}
	suite.mockCustomerRepo = &MockCustomerRepository{}
	suite.service = NewAppointmentService(
		suite.mockAppointmentRepo, suite.mockServiceRepo, suite.mockProfessionalRepo, suite.mockCustomerRepo,
	)

	suite.orgID = uuid.New()
	suite.customerID = uuid.New()
	suite.serviceID = uuid.New()
	suite.professionalID = uuid.New()
	suite.catalogEntry = &models.Service{
		ID:             suite.serviceID,
		OrganizationID: suite.orgID,
		Name:           "Corte Masculino",
		Price:          45.0,
		DurationMin:    30,
	}
	suite.tuesdayMorning = time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
}

func (suite *AppointmentServiceTestSuite) TearDownTest() {
	suite.mockAppointmentRepo.AssertExpectations(suite.T())
	suite.mockServiceRepo.AssertExpectations(suite.T())
	suite.mockProfessionalRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func TestAppointmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AppointmentServiceTestSuite))
}

func (suite *AppointmentServiceTestSuite) fullWeekSchedule() []*models.WorkingHour {
	hours := make([]*models.WorkingHour, 0, 7)
	for weekday := 0; weekday < 7; weekday++ {
		hours = append(hours, &models.WorkingHour{
			ProfessionalID: suite.professionalID,
			Weekday:        weekday,
			Starts:         "09:00",
			Ends:           "18:00",
			Enabled:        true,
		})
	}
	return hours
}

func (suite *AppointmentServiceTestSuite) bookRequest() *BookAppointmentRequest {
	return &BookAppointmentRequest{
		CustomerID:     suite.customerID,
		ServiceID:      suite.serviceID,
		ProfessionalID: suite.professionalID,
		StartsAt:       suite.tuesdayMorning,
	}
}

func (suite *AppointmentServiceTestSuite) TestBook_Success() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("GetByID", ctx, suite.orgID, suite.customerID).Return(&models.Customer{ID: suite.customerID}, nil)
	suite.mockServiceRepo.On("GetByID", ctx, suite.orgID, suite.serviceID).Return(suite.catalogEntry, nil)
	suite.mockProfessionalRepo.On("GetServiceLink", ctx, suite.professionalID, suite.serviceID).
		Return(&models.ProfessionalService{ProfessionalID: suite.professionalID, ServiceID: suite.serviceID}, nil)
	suite.mockProfessionalRepo.On("GetWorkingHours", ctx, suite.professionalID).Return(suite.fullWeekSchedule(), nil)
	suite.mockAppointmentRepo.On("CountOverlapping", ctx, suite.orgID, suite.professionalID,
		suite.tuesdayMorning, suite.tuesdayMorning.Add(30*time.Minute)).Return(0, nil)
	suite.mockAppointmentRepo.On("Create", ctx, mock.AnythingOfType("*models.Appointment")).Return(nil)

	appointment, err := suite.service.Book(ctx, suite.orgID, suite.bookRequest())
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), appointment)
	assert.Equal(suite.T(), models.AppointmentPending, appointment.Status)
	assert.Equal(suite.T(), 45.0, appointment.Price)
	assert.Equal(suite.T(), 30, appointment.DurationMin)
}

func (suite *AppointmentServiceTestSuite) TestBook_DurationOverrideFromLink() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("GetByID", ctx, suite.orgID, suite.customerID).Return(&models.Customer{ID: suite.customerID}, nil)
	suite.mockServiceRepo.On("GetByID", ctx, suite.orgID, suite.serviceID).Return(suite.catalogEntry, nil)
	suite.mockProfessionalRepo.On("GetServiceLink", ctx, suite.professionalID, suite.serviceID).
		Return(&models.ProfessionalService{ProfessionalID: suite.professionalID, ServiceID: suite.serviceID, DurationMin: 45}, nil)
	suite.mockProfessionalRepo.On("GetWorkingHours", ctx, suite.professionalID).Return(suite.fullWeekSchedule(), nil)
	suite.mockAppointmentRepo.On("CountOverlapping", ctx, suite.orgID, suite.professionalID,
		suite.tuesdayMorning, suite.tuesdayMorning.Add(45*time.Minute)).Return(0, nil)
	suite.mockAppointmentRepo.On("Create", ctx, mock.AnythingOfType("*models.Appointment")).Return(nil)

	appointment, err := suite.service.Book(ctx, suite.orgID, suite.bookRequest())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 45, appointment.DurationMin)
}

func (suite *AppointmentServiceTestSuite) TestBook_ServiceNotOffered() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("GetByID", ctx, suite.orgID, suite.customerID).Return(&models.Customer{ID: suite.customerID}, nil)
	suite.mockServiceRepo.On("GetByID", ctx, suite.orgID, suite.serviceID).Return(suite.catalogEntry, nil)
	suite.mockProfessionalRepo.On("GetServiceLink", ctx, suite.professionalID, suite.serviceID).Return(nil, pgx.ErrNoRows)

	appointment, err := suite.service.Book(ctx, suite.orgID, suite.bookRequest())
	assert.Nil(suite.T(), appointment)
	assert.ErrorIs(suite.T(), err, ErrServiceNotOffered)
}

func (suite *AppointmentServiceTestSuite) TestBook_OutsideWorkingHours() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("GetByID", ctx, suite.orgID, suite.customerID).Return(&models.Customer{ID: suite.customerID}, nil)
	suite.mockServiceRepo.On("GetByID", ctx, suite.orgID, suite.serviceID).Return(suite.catalogEntry, nil)
	suite.mockProfessionalRepo.On("GetServiceLink", ctx, suite.professionalID, suite.serviceID).
		Return(&models.ProfessionalService{ProfessionalID: suite.professionalID, ServiceID: suite.serviceID}, nil)
	suite.mockProfessionalRepo.On("GetWorkingHours", ctx, suite.professionalID).Return(suite.fullWeekSchedule(), nil)

	req := suite.bookRequest()
	req.StartsAt = time.Date(2026, 9, 1, 17, 45, 0, 0, time.Local) // ends 18:15, past closing

	appointment, err := suite.service.Book(ctx, suite.orgID, req)
	assert.Nil(suite.T(), appointment)
	assert.ErrorIs(suite.T(), err, ErrOutsideWorkingHours)
}

func (suite *AppointmentServiceTestSuite) TestBook_DisabledWeekday() {
	ctx := context.Background()
	schedule := suite.fullWeekSchedule()
	schedule[int(suite.tuesdayMorning.Weekday())].Enabled = false

	suite.mockCustomerRepo.On("GetByID", ctx, suite.orgID, suite.customerID).Return(&models.Customer{ID: suite.customerID}, nil)
	suite.mockServiceRepo.On("GetByID", ctx, suite.orgID, suite.serviceID).Return(suite.catalogEntry, nil)
	suite.mockProfessionalRepo.On("GetServiceLink", ctx, suite.professionalID, suite.serviceID).
		Return(&models.ProfessionalService{ProfessionalID: suite.professionalID, ServiceID: suite.serviceID}, nil)
	suite.mockProfessionalRepo.On("GetWorkingHours", ctx, suite.professionalID).Return(schedule, nil)

	appointment, err := suite.service.Book(ctx, suite.orgID, suite.bookRequest())
	assert.Nil(suite.T(), appointment)
	assert.ErrorIs(suite.T(), err, ErrOutsideWorkingHours)
}

func (suite *AppointmentServiceTestSuite) TestBook_SlotTaken() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("GetByID", ctx, suite.orgID, suite.customerID).Return(&models.Customer{ID: suite.customerID}, nil)
	suite.mockServiceRepo.On("GetByID", ctx, suite.orgID, suite.serviceID).Return(suite.catalogEntry, nil)
	suite.mockProfessionalRepo.On("GetServiceLink", ctx, suite.professionalID, suite.serviceID).
		Return(&models.ProfessionalService{ProfessionalID: suite.professionalID, ServiceID: suite.serviceID}, nil)
	suite.mockProfessionalRepo.On("GetWorkingHours", ctx, suite.professionalID).Return(suite.fullWeekSchedule(), nil)
	suite.mockAppointmentRepo.On("CountOverlapping", ctx, suite.orgID, suite.professionalID,
		suite.tuesdayMorning, suite.tuesdayMorning.Add(30*time.Minute)).Return(1, nil)

	appointment, err := suite.service.Book(ctx, suite.orgID, suite.bookRequest())
	assert.Nil(suite.T(), appointment)
	assert.ErrorIs(suite.T(), err, ErrSlotTaken)
}

func (suite *AppointmentServiceTestSuite) TestBook_UnknownCustomer() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("GetByID", ctx, suite.orgID, suite.customerID).Return(nil, pgx.ErrNoRows)

	appointment, err := suite.service.Book(ctx, suite.orgID, suite.bookRequest())
	assert.Nil(suite.T(), appointment)
	assert.ErrorIs(suite.T(), err, ErrCustomerNotFound)
}

func (suite *AppointmentServiceTestSuite) TestChangeStatus_CompletedCountsVisit() {
	ctx := context.Background()
	appointmentID := uuid.New()
	stored := &models.Appointment{
		ID:             appointmentID,
		OrganizationID: suite.orgID,
		CustomerID:     suite.customerID,
		Status:         models.AppointmentConfirmed,
	}
	suite.mockAppointmentRepo.On("GetByID", ctx, suite.orgID, appointmentID).Return(stored, nil)
	suite.mockAppointmentRepo.On("UpdateStatus", ctx, suite.orgID, appointmentID, models.AppointmentCompleted).Return(nil)
	suite.mockCustomerRepo.On("IncrementVisits", ctx, suite.orgID, suite.customerID).Return(nil)

	appointment, err := suite.service.ChangeStatus(ctx, suite.orgID, appointmentID, models.AppointmentCompleted)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.AppointmentCompleted, appointment.Status)
}

func (suite *AppointmentServiceTestSuite) TestChangeStatus_TerminalIsFinal() {
	ctx := context.Background()
	appointmentID := uuid.New()
	stored := &models.Appointment{
		ID:             appointmentID,
		OrganizationID: suite.orgID,
		Status:         models.AppointmentCancelled,
	}
	suite.mockAppointmentRepo.On("GetByID", ctx, suite.orgID, appointmentID).Return(stored, nil)

	appointment, err := suite.service.ChangeStatus(ctx, suite.orgID, appointmentID, models.AppointmentConfirmed)
	assert.Nil(suite.T(), appointment)
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
}

func (suite *AppointmentServiceTestSuite) TestChangeStatus_UnknownStatus() {
	ctx := context.Background()
	appointment, err := suite.service.ChangeStatus(ctx, suite.orgID, uuid.New(), "rescheduled")
	assert.Nil(suite.T(), appointment)
	assert.Error(suite.T(), err)
}

func (suite *AppointmentServiceTestSuite) TestSummary() {
	ctx := context.Background()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	suite.mockAppointmentRepo.On("CountByDay", ctx, suite.orgID, day).Return(7, nil)
	suite.mockAppointmentRepo.On("RevenueByDay", ctx, suite.orgID, day).Return(315.0, nil)
	suite.mockCustomerRepo.On("Count", ctx, suite.orgID).Return(42, nil)

	summary, err := suite.service.Summary(ctx, suite.orgID, day)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "2026-09-01", summary.Date)
	assert.Equal(suite.T(), 7, summary.AppointmentsToday)
	assert.Equal(suite.T(), 315.0, summary.RevenueToday)
	assert.Equal(suite.T(), 42, summary.TotalCustomers)
}
