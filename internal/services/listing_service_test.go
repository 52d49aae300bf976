package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"rentall/internal/models"
	"rentall/internal/repositories"
	"rentall/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockHousingRepository is a mock implementation of
// repositories.ListingRepository[*models.Housing].
type MockHousingRepository struct {
	mock.Mock
}

func (m *MockHousingRepository) GetAllActive() ([]*models.Housing, error) {
	args := m.Called()
	return args.Get(0).([]*models.Housing), args.Error(1)
}

func (m *MockHousingRepository) GetByOwner(userID string) ([]*models.Housing, error) {
	args := m.Called(userID)
	return args.Get(0).([]*models.Housing), args.Error(1)
}

func (m *MockHousingRepository) GetByID(id string) (*models.Housing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Housing), args.Error(1)
}

func (m *MockHousingRepository) Create(listing *models.Housing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockHousingRepository) Update(listing *models.Housing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockHousingRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAutoRepository is a mock implementation of
// repositories.ListingRepository[*models.Auto].
type MockAutoRepository struct {
	mock.Mock
}

func (m *MockAutoRepository) GetAllActive() ([]*models.Auto, error) {
	args := m.Called()
	return args.Get(0).([]*models.Auto), args.Error(1)
}

func (m *MockAutoRepository) GetByOwner(userID string) ([]*models.Auto, error) {
	args := m.Called(userID)
	return args.Get(0).([]*models.Auto), args.Error(1)
}

func (m *MockAutoRepository) GetByID(id string) (*models.Auto, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Auto), args.Error(1)
}

func (m *MockAutoRepository) Create(listing *models.Auto) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockAutoRepository) Update(listing *models.Auto) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockAutoRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockParcelRepository is a mock implementation of
// repositories.ListingRepository[*models.Parcel].
type MockParcelRepository struct {
	mock.Mock
}

func (m *MockParcelRepository) GetAllActive() ([]*models.Parcel, error) {
	args := m.Called()
	return args.Get(0).([]*models.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByOwner(userID string) ([]*models.Parcel, error) {
	args := m.Called(userID)
	return args.Get(0).([]*models.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByID(id string) (*models.Parcel, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Parcel), args.Error(1)
}

func (m *MockParcelRepository) Create(listing *models.Parcel) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(listing *models.Parcel) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockParcelRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockImageCleaner is a mock implementation of services.ImageCleaner.
type MockImageCleaner struct {
	mock.Mock
}

func (m *MockImageCleaner) DeleteListingImages(ctx context.Context, urls []string) {
	m.Called(ctx, urls)
}

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func validHousingPayload() map[string]interface{} {
	return map[string]interface{}{
		"listingType":   "room",
		"title":         "Sunny room near campus",
		"description":   "Furnished room, utilities included",
		"location":      "Orange County",
		"price":         1200,
		"contactPhone":  "555-0101",
		"availableFrom": "2025-09-01T00:00:00Z",
	}
}

func validAutoPayload() map[string]interface{} {
	return map[string]interface{}{
		"listingType":  "sale",
		"make":         "Toyota",
		"model":        "Camry",
		"year":         2020,
		"location":     "Los Angeles",
		"price":        18500,
		"mileage":      42000,
		"condition":    "good",
		"transmission": "automatic",
		"fuelType":     "gasoline",
		"description":  "Single owner, clean title",
		"contactPhone": "555-0102",
	}
}

func marshalPayload(t *testing.T, payload map[string]interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	return body
}

func TestListingService_Create_ForcesOwner(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, nil, "housing")

	ownerID := uuid.New().String()
	payload := validHousingPayload()
	payload["user"] = "someone-else" // must be ignored
	payload["id"] = "client-chosen"  // must be ignored

	mockRepo.On("Create", mock.AnythingOfType("*models.Housing")).Run(func(args mock.Arguments) {
		listing := args.Get(0).(*models.Housing)
		listing.ID = uuid.New().String() // store assigns the identifier
	}).Return(nil).Once()

	created, err := service.Create(ownerID, marshalPayload(t, payload))
	assert.NoError(t, err)
	assert.Equal(t, ownerID, created.UserID)
	assert.NotEqual(t, "client-chosen", created.ID)
	assert.True(t, created.IsActive)
	mockRepo.AssertExpectations(t)
}

func TestListingService_Create_ValidationError(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, nil, "housing")

	payload := validHousingPayload()
	delete(payload, "title")

	_, err := service.Create(uuid.New().String(), marshalPayload(t, payload))
	assert.Error(t, err)
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Title")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestListingService_Create_GenderRequiredForSpotInRoom(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, nil, "housing")

	payload := validHousingPayload()
	payload["listingType"] = "spot_in_room"

	_, err := service.Create(uuid.New().String(), marshalPayload(t, payload))
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Gender")

	payload["gender"] = "any"
	mockRepo.On("Create", mock.AnythingOfType("*models.Housing")).Return(nil).Once()
	created, err := service.Create(uuid.New().String(), marshalPayload(t, payload))
	assert.NoError(t, err)
	assert.Equal(t, "any", created.Gender)
	mockRepo.AssertExpectations(t)
}

func TestListingService_Create_AvailableFromRequiredOnlyForRent(t *testing.T) {
	mockRepo := new(MockAutoRepository)
	service := services.NewListingService[models.Auto, *models.Auto](mockRepo, nil, nil, "auto")

	// rent without availableFrom fails
	payload := validAutoPayload()
	payload["listingType"] = "rent"
	_, err := service.Create(uuid.New().String(), marshalPayload(t, payload))
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "AvailableFrom")

	// sale without availableFrom succeeds
	payload["listingType"] = "sale"
	mockRepo.On("Create", mock.AnythingOfType("*models.Auto")).Return(nil).Once()
	_, err = service.Create(uuid.New().String(), marshalPayload(t, payload))
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestListingService_Create_RejectsFutureModelYear(t *testing.T) {
	mockRepo := new(MockAutoRepository)
	service := services.NewListingService[models.Auto, *models.Auto](mockRepo, nil, nil, "auto")

	payload := validAutoPayload()
	payload["year"] = time.Now().Year() + 2

	_, err := service.Create(uuid.New().String(), marshalPayload(t, payload))
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Year")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestListingService_GetByID_InvalidIDBeforeStoreAccess(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, nil, "housing")

	_, err := service.GetByID("not-a-uuid")
	assert.ErrorIs(t, err, services.ErrInvalidID)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestListingService_GetByID_NotFound(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, nil, "housing")

	id := uuid.New().String()
	mockRepo.On("GetByID", id).Return(nil, fmt.Errorf("listing with ID %s: %w", id, repositories.ErrNotFound)).Once()

	_, err := service.GetByID(id)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func storedHousing(ownerID string) *models.Housing {
	return &models.Housing{
		ListingMeta: models.ListingMeta{
			ID:        uuid.New().String(),
			UserID:    ownerID,
			IsActive:  true,
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		ListingType:   "room",
		Title:         "Sunny room near campus",
		Description:   "Furnished room, utilities included",
		Location:      "Orange County",
		Price:         1200,
		Thumbnail:     "https://res.cloudinary.com/demo/image/upload/rentall/thumb.jpg",
		Images:        []string{"https://res.cloudinary.com/demo/image/upload/rentall/one.jpg"},
		ContactPhone:  "555-0101",
		AvailableFrom: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestListingService_Update_Forbidden(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, nil, "housing")

	listing := storedHousing(uuid.New().String())
	mockRepo.On("GetByID", listing.ID).Return(listing, nil).Once()

	_, err := service.Update(uuid.New().String(), listing.ID, []byte(`{"price": 1}`))
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestListingService_Update_MergePreservesIdentity(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, nil, "housing")

	ownerID := uuid.New().String()
	listing := storedHousing(ownerID)
	prevID := listing.ID
	prevCreated := listing.CreatedAt

	mockRepo.On("GetByID", prevID).Return(listing, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Housing")).Return(nil).Once()

	patch := []byte(`{"price": 1100, "user": "someone-else", "id": "other-id", "createdAt": "2001-01-01T00:00:00Z"}`)
	updated, err := service.Update(ownerID, prevID, patch)
	assert.NoError(t, err)
	assert.Equal(t, float64(1100), updated.Price)
	assert.Equal(t, "Sunny room near campus", updated.Title) // untouched fields survive the merge
	assert.Equal(t, prevID, updated.ID)
	assert.Equal(t, ownerID, updated.UserID)
	assert.Equal(t, prevCreated, updated.CreatedAt)
	mockRepo.AssertExpectations(t)
}

func TestListingService_Update_RevalidatesMergedFields(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, nil, "housing")

	ownerID := uuid.New().String()
	listing := storedHousing(ownerID)
	mockRepo.On("GetByID", listing.ID).Return(listing, nil).Once()

	_, err := service.Update(ownerID, listing.ID, []byte(`{"price": -5}`))
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Price")
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestListingService_Delete_CleansUpImagesAndPublishes(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	mockCleaner := new(MockImageCleaner)
	mockEvents := new(MockEventPublisher)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, mockCleaner, mockEvents, "housing")

	ownerID := uuid.New().String()
	listing := storedHousing(ownerID)

	mockRepo.On("GetByID", listing.ID).Return(listing, nil).Once()
	mockCleaner.On("DeleteListingImages", mock.Anything, listing.ImageURLs()).Once()
	mockRepo.On("Delete", listing.ID).Return(nil).Once()
	mockEvents.On("Publish", "listing.deleted", mock.Anything).Return(nil).Once()

	err := service.Delete(context.Background(), ownerID, listing.ID)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCleaner.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestListingService_Delete_Forbidden(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	mockCleaner := new(MockImageCleaner)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, mockCleaner, nil, "housing")

	listing := storedHousing(uuid.New().String())
	mockRepo.On("GetByID", listing.ID).Return(listing, nil).Once()

	err := service.Delete(context.Background(), uuid.New().String(), listing.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
	mockCleaner.AssertNotCalled(t, "DeleteListingImages", mock.Anything, mock.Anything)
}

func TestListingService_Delete_NotFoundOnSecondCall(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, nil, "housing")

	ownerID := uuid.New().String()
	listing := storedHousing(ownerID)

	mockRepo.On("GetByID", listing.ID).Return(listing, nil).Once()
	mockRepo.On("Delete", listing.ID).Return(nil).Once()
	assert.NoError(t, service.Delete(context.Background(), ownerID, listing.ID))

	mockRepo.On("GetByID", listing.ID).Return(nil, fmt.Errorf("listing with ID %s: %w", listing.ID, repositories.ErrNotFound)).Once()
	err := service.Delete(context.Background(), ownerID, listing.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestListingService_Delete_PublishFailureSwallowed(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, mockEvents, "housing")

	ownerID := uuid.New().String()
	listing := storedHousing(ownerID)

	mockRepo.On("GetByID", listing.ID).Return(listing, nil).Once()
	mockRepo.On("Delete", listing.ID).Return(nil).Once()
	mockEvents.On("Publish", "listing.deleted", mock.Anything).Return(fmt.Errorf("broker unavailable")).Once()

	err := service.Delete(context.Background(), ownerID, listing.ID)
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

func TestListingService_Delete_ParcelHasNoImagesToClean(t *testing.T) {
	mockRepo := new(MockParcelRepository)
	mockCleaner := new(MockImageCleaner)
	service := services.NewListingService[models.Parcel, *models.Parcel](mockRepo, mockCleaner, nil, "parcels")

	ownerID := uuid.New().String()
	parcel := &models.Parcel{
		ListingMeta: models.ListingMeta{
			ID:       uuid.New().String(),
			UserID:   ownerID,
			IsActive: true,
		},
		Direction:    "US_to_Kazakhstan",
		TravelDate:   time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		LocationFrom: "Los Angeles",
		LocationTo:   "Almaty",
		Description:  "Can take up to 5kg",
		ContactPhone: "555-0103",
	}

	mockRepo.On("GetByID", parcel.ID).Return(parcel, nil).Once()
	mockRepo.On("Delete", parcel.ID).Return(nil).Once()

	err := service.Delete(context.Background(), ownerID, parcel.ID)
	assert.NoError(t, err)
	mockCleaner.AssertNotCalled(t, "DeleteListingImages", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestListingService_ListPublic(t *testing.T) {
	mockRepo := new(MockHousingRepository)
	service := services.NewListingService[models.Housing, *models.Housing](mockRepo, nil, nil, "housing")

	expected := []*models.Housing{storedHousing(uuid.New().String())}
	mockRepo.On("GetAllActive").Return(expected, nil).Once()

	listings, err := service.ListPublic()
	assert.NoError(t, err)
	assert.Equal(t, expected, listings)
	mockRepo.AssertExpectations(t)
}
