package stats

import (
	"context"
	"errors"
	"testing"

	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/listing"
	"craftmarket_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockStatsRepository is a mock type for stats.Repository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) CountOrders(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) CountOpenDisputes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserService is a mock type for user.Service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockListingService is a mock type for listing.Service
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) CreateListing(ctx context.Context, principal common.Principal, req listing.CreateListingRequest) (*listing.Listing, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}
func (m *MockListingService) GetListingByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}
func (m *MockListingService) SearchListings(ctx context.Context, query listing.ListingSearchQuery) ([]listing.Listing, *common.Pagination, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]listing.Listing), args.Get(1).(*common.Pagination), args.Error(2)
}
func (m *MockListingService) DeleteListing(ctx context.Context, principal common.Principal, id uuid.UUID) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}
func (m *MockListingService) MarkSold(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}
func (m *MockListingService) CountListings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockListingService) AdminSearchListings(ctx context.Context, principal common.Principal, query listing.ListingSearchQuery) ([]listing.AdminListingSummary, *common.Pagination, error) {
	args := m.Called(ctx, principal, query)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]listing.AdminListingSummary), args.Get(1).(*common.Pagination), args.Error(2)
}
func (m *MockListingService) AdminToggleStatus(ctx context.Context, principal common.Principal, id uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}
func (m *MockListingService) AdminSetActive(ctx context.Context, principal common.Principal, id uuid.UUID, active bool) (*listing.Listing, error) {
	args := m.Called(ctx, principal, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}

// Test Suite Setup
type StatsServiceTestSuite struct {
	service            Service
	mockRepo           *MockStatsRepository
	mockUserService    *MockUserService
	mockListingService *MockListingService
}

func setupStatsServiceTestSuite(t *testing.T) *StatsServiceTestSuite {
	ts := &StatsServiceTestSuite{}
	ts.mockRepo = new(MockStatsRepository)
	ts.mockUserService = new(MockUserService)
	ts.mockListingService = new(MockListingService)
	ts.service = NewService(ts.mockRepo, ts.mockUserService, ts.mockListingService, zap.NewNop())
	return ts
}

// --- Test Cases ---

func TestService_GetPlatformStats_Success(t *testing.T) {
	ts := setupStatsServiceTestSuite(t)
	ctx := context.Background()
	admin := common.Principal{UserID: uuid.New(), Role: common.RoleAdmin}

	ts.mockUserService.On("CountUsers", ctx).Return(int64(120), nil)
	ts.mockListingService.On("CountListings", ctx).Return(int64(45), nil)
	ts.mockRepo.On("CountOrders", ctx).Return(int64(310), nil)
	ts.mockRepo.On("CountOpenDisputes", ctx).Return(int64(2), nil)

	result, err := ts.service.GetPlatformStats(ctx, admin)

	assert.NoError(t, err)
	assert.Equal(t, &PlatformStats{
		TotalUsers:    120,
		TotalListings: 45,
		TotalOrders:   310,
		OpenDisputes:  2,
	}, result)
	ts.mockRepo.AssertExpectations(t)
	ts.mockUserService.AssertExpectations(t)
	ts.mockListingService.AssertExpectations(t)
}

func TestService_GetPlatformStats_NonAdminForbidden(t *testing.T) {
	ts := setupStatsServiceTestSuite(t)
	buyer := common.Principal{UserID: uuid.New(), Role: common.RoleUser}

	result, err := ts.service.GetPlatformStats(context.Background(), buyer)

	assert.Nil(t, result)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "FORBIDDEN", apiErr.Code)
	ts.mockUserService.AssertNotCalled(t, "CountUsers", mock.Anything)
}

func TestService_GetPlatformStats_Unauthenticated(t *testing.T) {
	ts := setupStatsServiceTestSuite(t)

	result, err := ts.service.GetPlatformStats(context.Background(), common.Principal{})

	assert.Nil(t, result)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
}

func TestService_GetPlatformStats_CollaboratorCountFails(t *testing.T) {
	ts := setupStatsServiceTestSuite(t)
	ctx := context.Background()
	admin := common.Principal{UserID: uuid.New(), Role: common.RoleAdmin}

	ts.mockUserService.On("CountUsers", ctx).Return(int64(120), nil)
	ts.mockListingService.On("CountListings", ctx).Return(int64(45), nil)
	ts.mockRepo.On("CountOrders", ctx).Return(int64(0), errors.New("orders table unavailable"))

	result, err := ts.service.GetPlatformStats(ctx, admin)

	assert.Nil(t, result)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", apiErr.Code)
}
