package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/reports"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReportUseCase struct {
	mock.Mock
}

func (m *MockReportUseCase) CustomerHistory(ctx context.Context, customerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockReportUseCase) Entries(ctx context.Context, history []domain.Booking) []reports.Entry {
	args := m.Called(ctx, history)
	return args.Get(0).([]reports.Entry)
}

func (m *MockReportUseCase) Render(ctx context.Context, history []domain.Booking) string {
	args := m.Called(ctx, history)
	return args.String(0)
}

func TestReportHandler_customerHistory_json(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "c-1"}}
	c.Request = httptest.NewRequest("GET", "/reports/customers/c-1", nil)

	history := []domain.Booking{*sampleBooking()}
	entries := []reports.Entry{{BookingID: "b-1", Customer: "Eleni", Destination: "Crete", BookingDate: "2025-03-03"}}
	ctx := c.Request.Context()
	mockService.On("CustomerHistory", ctx, "c-1").Return(history, nil)
	mockService.On("Render", ctx, history).Return("Eleni -> Crete (2025-03-03)")
	mockService.On("Entries", ctx, history).Return(entries)

	handler.customerHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response customerReportResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "c-1", response.CustomerID)
	assert.Equal(t, entries, response.Entries)
	assert.Equal(t, "Eleni -> Crete (2025-03-03)", response.Text)
	mockService.AssertExpectations(t)
}

func TestReportHandler_customerHistory_text(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "c-2"}}
	c.Request = httptest.NewRequest("GET", "/reports/customers/c-2", nil)
	c.Request.Header.Set("Accept", "text/plain")

	ctx := c.Request.Context()
	mockService.On("CustomerHistory", ctx, "c-2").Return([]domain.Booking{}, nil)
	mockService.On("Render", ctx, []domain.Booking{}).Return(reports.EmptyHistory)

	handler.customerHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reports.EmptyHistory, w.Body.String())
	mockService.AssertNotCalled(t, "Entries", mock.Anything, mock.Anything)
}

func TestReportHandler_customerHistory_missingSelection(t *testing.T) {
	mockService := &MockReportUseCase{}
	handler := NewReportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: ""}}
	c.Request = httptest.NewRequest("GET", "/reports/customers/", nil)

	mockService.On("CustomerHistory", c.Request.Context(), "").Return(nil, domain.ErrMissingSelection)

	handler.customerHistory(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
