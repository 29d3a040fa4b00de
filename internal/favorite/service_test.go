package favorite

import (
	"context"
	"errors"
	"testing"

	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/listing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockFavoriteRepository is a mock type for favorite.Repository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListListings(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]listing.Listing, *common.Pagination, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]listing.Listing), args.Get(1).(*common.Pagination), args.Error(2)
}

func (m *MockFavoriteRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockListingRepository is a mock type for listing.Repository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}
func (m *MockListingRepository) Search(ctx context.Context, query listing.ListingSearchQuery, statuses []listing.ListingStatus) ([]listing.Listing, *common.Pagination, error) {
	args := m.Called(ctx, query, statuses)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]listing.Listing), args.Get(1).(*common.Pagination), args.Error(2)
}
func (m *MockListingRepository) UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to listing.ListingStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockListingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Test Suite Setup
type FavoriteServiceTestSuite struct {
	service         Service
	mockRepo        *MockFavoriteRepository
	mockListingRepo *MockListingRepository
}

func setupFavoriteServiceTestSuite(t *testing.T) *FavoriteServiceTestSuite {
	ts := &FavoriteServiceTestSuite{}
	ts.mockRepo = new(MockFavoriteRepository)
	ts.mockListingRepo = new(MockListingRepository)
	ts.service = NewService(ts.mockRepo, ts.mockListingRepo, zap.NewNop())
	return ts
}

func ownPrincipal() (common.Principal, uuid.UUID) {
	id := uuid.New()
	return common.Principal{UserID: id, Email: "buyer@example.com", Role: common.RoleUser}, id
}

// --- Test Cases ---

func TestService_AddFavorite_Success(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()
	principal, userID := ownPrincipal()
	listingID := uuid.New()

	ts.mockListingRepo.On("FindByID", ctx, listingID).
		Return(&listing.Listing{Status: listing.StatusActive}, nil)
	ts.mockRepo.On("Add", ctx, userID, listingID).Return(nil)

	err := ts.service.AddFavorite(ctx, principal, userID, listingID)

	assert.NoError(t, err)
	ts.mockRepo.AssertExpectations(t)
	ts.mockListingRepo.AssertExpectations(t)
}

func TestService_AddFavorite_ListingMissing(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()
	principal, userID := ownPrincipal()
	listingID := uuid.New()

	ts.mockListingRepo.On("FindByID", ctx, listingID).
		Return(nil, common.ErrNotFound.WithDetails("Listing not found."))

	err := ts.service.AddFavorite(ctx, principal, userID, listingID)

	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	ts.mockRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_AddFavorite_OtherUsersFavoritesForbidden(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	principal, _ := ownPrincipal()

	err := ts.service.AddFavorite(context.Background(), principal, uuid.New(), uuid.New())

	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "FORBIDDEN", apiErr.Code)
	ts.mockListingRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestService_AddFavorite_Unauthenticated(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)

	err := ts.service.AddFavorite(context.Background(), common.Principal{}, uuid.New(), uuid.New())

	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
}

func TestService_RemoveFavorite_Success(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()
	principal, userID := ownPrincipal()
	listingID := uuid.New()

	ts.mockRepo.On("Remove", ctx, userID, listingID).Return(nil)

	err := ts.service.RemoveFavorite(ctx, principal, userID, listingID)

	assert.NoError(t, err)
	ts.mockRepo.AssertExpectations(t)
}

func TestService_RemoveFavorite_OtherUsersFavoritesForbidden(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	principal, _ := ownPrincipal()

	err := ts.service.RemoveFavorite(context.Background(), principal, uuid.New(), uuid.New())

	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "FORBIDDEN", apiErr.Code)
	ts.mockRepo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ListFavorites_Success(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()
	principal, userID := ownPrincipal()
	mockPagination := &common.Pagination{CurrentPage: 1, PageSize: 20, TotalItems: 2, TotalPages: 1}

	ts.mockRepo.On("ListListings", ctx, userID, 1, 20).
		Return([]listing.Listing{
			{Title: "Mug", Status: listing.StatusActive},
			{Title: "Bowl", Status: listing.StatusSold},
		}, mockPagination, nil)

	listings, pagination, err := ts.service.ListFavorites(ctx, principal, userID, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.Equal(t, mockPagination, pagination)
	ts.mockRepo.AssertExpectations(t)
}

func TestService_ListFavorites_RepoError(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()
	principal, userID := ownPrincipal()

	ts.mockRepo.On("ListListings", ctx, userID, 1, 20).
		Return(nil, nil, errors.New("repo error"))

	listings, pagination, err := ts.service.ListFavorites(ctx, principal, userID, 1, 20)

	assert.Nil(t, listings)
	assert.Nil(t, pagination)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", apiErr.Code)
}

func TestService_SweepOrphans(t *testing.T) {
	ts := setupFavoriteServiceTestSuite(t)
	ctx := context.Background()

	ts.mockRepo.On("DeleteOrphans", ctx).Return(int64(3), nil)

	swept, err := ts.service.SweepOrphans(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), swept)
	ts.mockRepo.AssertExpectations(t)
}
