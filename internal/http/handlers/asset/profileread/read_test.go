package profileread

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/olasslabs/olass-backend/internal/domain"
	"github.com/olasslabs/olass-backend/internal/models"
)

// MockService реализует интерфейс profileread.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetProfileResult(ctx context.Context, uniqueID string) (*models.ProfileResult, error) {
	args := m.Called(ctx, uniqueID)
	if res := args.Get(0); res != nil {
		return res.(*models.ProfileResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestProfileReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	uid := uuid.New().String()

	tests := []struct {
		name           string
		uniqueID       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное чтение результата",
			uniqueID: uid,
			setupMock: func(m *MockService) {
				m.On("GetProfileResult", mock.Anything, uid).
					Return(&models.ProfileResult{Car: "compact", Percentage: 40}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"car":"compact"`,
		},
		{
			name:           "некорректный uuid в URL",
			uniqueID:       "not-a-uuid",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"type":"bad_request"`,
		},
		{
			name:     "профиль не найден",
			uniqueID: uid,
			setupMock: func(m *MockService) {
				m.On("GetProfileResult", mock.Anything, uid).
					Return(nil, domain.ErrUserProfileNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"type":"user_profile_not_found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/asset/v1/profile/"+tt.uniqueID, nil)
			// Устанавливаем URL params с помощью роутера chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uniqueId", tt.uniqueID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
