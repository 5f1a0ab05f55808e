package salarysubmit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/olasslabs/olass-backend/internal/domain"
	"github.com/olasslabs/olass-backend/internal/models"
)

// MockService реализует интерфейс salarysubmit.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SaveUserSalary(ctx context.Context, req models.DummySalary) (*models.SalaryCompareResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.SalaryCompareResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSalarySubmitHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	uid := uuid.New().String()

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная отправка зарплаты",
			body: `{"uniqueId":"` + uid + `","jobId":3,"experience":5,"salary":4500}`,
			setupMock: func(m *MockService) {
				m.On("SaveUserSalary", mock.Anything, models.DummySalary{
					UniqueID:   uid,
					JobID:      3,
					Experience: 5,
					Salary:     4500,
				}).Return(&models.SalaryCompareResult{
					UserExperience: 5,
					UserSalary:     4500,
					JobSalary:      52_000_000,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"jobSalary":52000000`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"uniqueId":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"type":"bad_request"`,
		},
		{
			name:           "невалидный uuid отклоняется валидацией",
			body:           `{"uniqueId":"not-a-uuid","jobId":3,"experience":5,"salary":4500}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"UniqueID":"must be a valid uuid"`,
		},
		{
			name:           "опыт вне диапазона",
			body:           `{"uniqueId":"` + uid + `","jobId":3,"experience":11,"salary":4500}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"Experience":"must be at most 10"`,
		},
		{
			name:           "нулевая зарплата отклоняется",
			body:           `{"uniqueId":"` + uid + `","jobId":3,"experience":5,"salary":0}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"Salary":"is a required field"`,
		},
		{
			name: "нет агрегата для профессии и опыта",
			body: `{"uniqueId":"` + uid + `","jobId":99,"experience":5,"salary":4500}`,
			setupMock: func(m *MockService) {
				m.On("SaveUserSalary", mock.Anything, mock.Anything).
					Return(nil, domain.ErrSalaryStatNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"type":"salary_stat_not_found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/asset/v1/salary", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
