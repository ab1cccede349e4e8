package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/itineraries"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockItineraryUseCase struct {
	mock.Mock
}

func (m *MockItineraryUseCase) List(ctx context.Context) ([]domain.Itinerary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Itinerary), args.Error(1)
}

func (m *MockItineraryUseCase) Get(ctx context.Context, id string) (*domain.Itinerary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Itinerary), args.Error(1)
}

func (m *MockItineraryUseCase) Create(ctx context.Context, input itineraries.ItineraryInput) (*domain.Itinerary, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Itinerary), args.Error(1)
}

func (m *MockItineraryUseCase) Update(ctx context.Context, id string, input itineraries.ItineraryInput) (*domain.Itinerary, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Itinerary), args.Error(1)
}

func (m *MockItineraryUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func sampleItinerary() domain.Itinerary {
	return domain.Itinerary{
		ID:             "i-1",
		Destination:    "Crete",
		Date:           domain.NewDate(2025, 7, 1),
		AvailableSeats: 40,
		Cost:           12990,
		TransportType:  "plane",
	}
}

func TestItineraryHandler_list(t *testing.T) {
	mockService := &MockItineraryUseCase{}
	handler := NewItineraryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/itineraries", nil)

	mockService.On("List", c.Request.Context()).Return([]domain.Itinerary{sampleItinerary()}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"i-1","destination":"Crete","date":"2025-07-01","available_seats":40,"cost":"129.90","transport_type":"plane"}]`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestItineraryHandler_create(t *testing.T) {
	mockService := &MockItineraryUseCase{}
	handler := NewItineraryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := itineraries.ItineraryInput{Destination: "Crete", Date: "2025-07-01", AvailableSeats: 40, Cost: "129.90", TransportType: "plane"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/itineraries", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := sampleItinerary()
	mockService.On("Create", c.Request.Context(), input).Return(&created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response domain.Itinerary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, created, response)
	mockService.AssertExpectations(t)
}

func TestItineraryHandler_update_invalid(t *testing.T) {
	mockService := &MockItineraryUseCase{}
	handler := NewItineraryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "i-1"}}
	c.Request = httptest.NewRequest("PUT", "/itineraries/i-1", bytes.NewReader([]byte(`{"available_seats":0}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Update", mock.Anything, "i-1", mock.Anything).Return(nil, &domain.FieldError{Field: "available_seats", Reason: "must be positive"})

	handler.update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItineraryHandler_delete_notFound(t *testing.T) {
	mockService := &MockItineraryUseCase{}
	handler := NewItineraryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	c.Request = httptest.NewRequest("DELETE", "/itineraries/nope", nil)

	mockService.On("Delete", c.Request.Context(), "nope").Return(domain.ErrNotFound)

	handler.delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItineraryHandler_transportTypes(t *testing.T) {
	handler := NewItineraryHandler(&MockItineraryUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/itineraries/transport-types", nil)

	handler.transportTypes(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["plane","train","bus"]`, w.Body.String())
}

func TestItineraryHandler_update_savedInMemoryOnly(t *testing.T) {
	mockService := &MockItineraryUseCase{}
	handler := NewItineraryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "i-1"}}
	c.Request = httptest.NewRequest("PUT", "/itineraries/i-1", bytes.NewReader([]byte(`{"destination":"Crete"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	updated := sampleItinerary()
	mockService.On("Update", mock.Anything, "i-1", mock.Anything).Return(&updated, &domain.PersistenceError{Op: "save travel data", Err: context.DeadlineExceeded})

	handler.update(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"persistence_error"`)
	assert.Contains(t, w.Body.String(), `"cost":"129.90"`)
}
