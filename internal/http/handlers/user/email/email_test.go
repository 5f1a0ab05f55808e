package email

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

// MockService реализует интерфейс email.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SaveUserWithMarketing(ctx context.Context, req models.DummyEmail) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func TestEmailHandler(t *testing.T) {
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
			name: "успешная привязка email",
			body: `{"uniqueId":"` + uid + `","email":"user@example.com","agree":true}`,
			setupMock: func(m *MockService) {
				m.On("SaveUserWithMarketing", mock.Anything, models.DummyEmail{
					UniqueID: uid,
					Email:    "user@example.com",
					Agree:    true,
				}).Return(int64(42), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"userId":42`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"type":"bad_request"`,
		},
		{
			name:           "невалидный email",
			body:           `{"uniqueId":"` + uid + `","email":"not-an-email","agree":true}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"Email":"must be a valid email"`,
		},
		{
			name: "отправка зарплаты не найдена",
			body: `{"uniqueId":"` + uid + `","email":"user@example.com","agree":true}`,
			setupMock: func(m *MockService) {
				m.On("SaveUserWithMarketing", mock.Anything, mock.Anything).
					Return(int64(0), domain.ErrSalaryNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"type":"salary_not_found"`,
		},
		{
			name: "отправка уже привязана",
			body: `{"uniqueId":"` + uid + `","email":"user@example.com","agree":true}`,
			setupMock: func(m *MockService) {
				m.On("SaveUserWithMarketing", mock.Anything, mock.Anything).
					Return(int64(0), domain.ErrSalaryAlreadyLinked)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"type":"salary_already_linked"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/user/v1/email", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
