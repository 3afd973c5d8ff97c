package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vue-supply/internal/storage"
)

// MockSchedules реализует интерфейс Schedules для тестов
type MockSchedules struct {
	mock.Mock
}

func (m *MockSchedules) GetSchedulesMonth(ctx context.Context, year int, month int) ([]*storage.ProductionSchedule, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.ProductionSchedule), args.Error(1)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Тест: успешное получение графиков за месяц
func TestGetSchedules_Success(t *testing.T) {
	mockStorage := new(MockSchedules)

	schedules := []*storage.ProductionSchedule{
		{
			ID:                     1,
			OrderID:                5,
			OrderNum:               "Q6-100",
			VendorID:               1,
			TransferDate:           day(2026, time.March, 3),
			EarliestProductionDate: day(2026, time.March, 4),
			StartDate:              day(2026, time.March, 4),
			EndDate:                day(2026, time.March, 6),
			Status:                 storage.StatusPlanned,
		},
	}

	mockStorage.On("GetSchedulesMonth", mock.Anything, 2026, 3).Return(schedules, nil)

	logger := slog.Default()
	handler := GetSchedules(logger, mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule?year=2026&month=3", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseSchedules
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)

	assert.Len(t, resp.Schedules, 1)
	assert.Equal(t, "Q6-100", resp.Schedules[0].OrderNum)
	assert.Equal(t, storage.StatusPlanned, resp.Schedules[0].Status)

	mockStorage.AssertExpectations(t)
}

// Тест: отсутствует параметр year
func TestGetSchedules_MissingYear(t *testing.T) {
	mockStorage := new(MockSchedules)
	handler := GetSchedules(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule?month=3", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockStorage.AssertNotCalled(t, "GetSchedulesMonth", mock.Anything, mock.Anything, mock.Anything)
}

// Тест: ошибка хранилища
func TestGetSchedules_StorageError(t *testing.T) {
	mockStorage := new(MockSchedules)

	mockStorage.On("GetSchedulesMonth", mock.Anything, 2026, 3).
		Return(nil, errors.New("база недоступна"))

	handler := GetSchedules(slog.Default(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule?year=2026&month=3", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp ResponseSchedules
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Error)
}
