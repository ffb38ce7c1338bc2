package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"barberflow/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetServices(ctx context.Context, organizationID uuid.UUID) ([]*models.Service, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}

func (m *MockCacheService) SetServices(ctx context.Context, organizationID uuid.UUID, services []*models.Service, ttl time.Duration) error {
	args := m.Called(ctx, organizationID, services, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateServices(ctx context.Context, organizationID uuid.UUID) error {
	args := m.Called(ctx, organizationID)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type CatalogServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockServiceRepository
	mockCache *MockCacheService
	service   CatalogService

	orgID uuid.UUID
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockServiceRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewCatalogService(suite.mockRepo, suite.mockCache)
	suite.orgID = uuid.New()
}

func (suite *CatalogServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (suite *CatalogServiceTestSuite) TestList_CacheHit() {
	ctx := context.Background()
	cached := []*models.Service{{ID: uuid.New(), Name: "Barba", Price: 30, DurationMin: 20}}
	suite.mockCache.On("GetServices", ctx, suite.orgID).Return(cached, nil)

	list, err := suite.service.List(ctx, suite.orgID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, list)
	suite.mockRepo.AssertNotCalled(suite.T(), "List")
}

func (suite *CatalogServiceTestSuite) TestList_CacheMissFillsCache() {
	ctx := context.Background()
	stored := []*models.Service{{ID: uuid.New(), Name: "Corte", Price: 45, DurationMin: 30}}
	suite.mockCache.On("GetServices", ctx, suite.orgID).Return(nil, nil)
	suite.mockRepo.On("List", ctx, suite.orgID).Return(stored, nil)
	suite.mockCache.On("SetServices", ctx, suite.orgID, stored, catalogCacheTTL).Return(nil)

	list, err := suite.service.List(ctx, suite.orgID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, list)
}

func (suite *CatalogServiceTestSuite) TestList_CacheDownFallsThrough() {
	ctx := context.Background()
	stored := []*models.Service{{ID: uuid.New(), Name: "Corte", Price: 45, DurationMin: 30}}
	suite.mockCache.On("GetServices", ctx, suite.orgID).Return(nil, errors.New("redis down"))
	suite.mockRepo.On("List", ctx, suite.orgID).Return(stored, nil)
	suite.mockCache.On("SetServices", ctx, suite.orgID, stored, catalogCacheTTL).Return(errors.New("redis down"))

	list, err := suite.service.List(ctx, suite.orgID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, list)
}

func (suite *CatalogServiceTestSuite) TestCreate_InvalidatesCache() {
	ctx := context.Background()
	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Service")).Return(nil)
	suite.mockCache.On("InvalidateServices", ctx, suite.orgID).Return(nil)

	service, err := suite.service.Create(ctx, suite.orgID, &ServiceRequest{Name: "Corte", Price: 45, DurationMin: 30})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.orgID, service.OrganizationID)
	assert.NotEqual(suite.T(), uuid.Nil, service.ID)
}

func (suite *CatalogServiceTestSuite) TestCreate_RejectsNonPositivePrice() {
	ctx := context.Background()

	service, err := suite.service.Create(ctx, suite.orgID, &ServiceRequest{Name: "Corte", Price: 0, DurationMin: 30})
	assert.Nil(suite.T(), service)
	assert.Error(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *CatalogServiceTestSuite) TestDelete_InvalidatesCache() {
	ctx := context.Background()
	id := uuid.New()
	suite.mockRepo.On("Delete", ctx, suite.orgID, id).Return(nil)
	suite.mockCache.On("InvalidateServices", ctx, suite.orgID).Return(nil)

	err := suite.service.Delete(ctx, suite.orgID, id)
	assert.NoError(suite.T(), err)
}
