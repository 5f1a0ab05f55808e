package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CounterMock struct{ mock.Mock }

func (m *CounterMock) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLoggerLimit() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := newNoopLoggerLimit()

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("success")); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	})

	t.Run("allows requests within rate limit", func(t *testing.T) {
		counter := new(CounterMock)
		counter.On("IncrWindow", mock.Anything, "rate_limit:salary_submit:1.2.3.4", time.Minute).
			Return(int64(1), nil).Once()

		middleware := RateLimitMiddleware(logger, counter, 1, time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/salary", nil)
		req.RemoteAddr = "1.2.3.4:51000"
		w := httptest.NewRecorder()

		middleware(testHandler).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", w.Body.String())
		counter.AssertExpectations(t)
	})

	t.Run("blocks requests exceeding rate limit", func(t *testing.T) {
		counter := new(CounterMock)
		counter.On("IncrWindow", mock.Anything, "rate_limit:salary_submit:1.2.3.4", time.Minute).
			Return(int64(2), nil).Once()

		middleware := RateLimitMiddleware(logger, counter, 1, time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/salary", nil)
		req.RemoteAddr = "1.2.3.4:51000"
		w := httptest.NewRecorder()

		middleware(testHandler).ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
		counter.AssertExpectations(t)
	})

	t.Run("keys counter by forwarded client ip", func(t *testing.T) {
		counter := new(CounterMock)
		counter.On("IncrWindow", mock.Anything, "rate_limit:salary_submit:203.0.113.7", time.Minute).
			Return(int64(1), nil).Once()

		middleware := RateLimitMiddleware(logger, counter, 1, time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/salary", nil)
		req.RemoteAddr = "10.0.0.1:51000"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()

		middleware(testHandler).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		counter.AssertExpectations(t)
	})

	t.Run("distinct ips count separately", func(t *testing.T) {
		counter := new(CounterMock)
		counter.On("IncrWindow", mock.Anything, "rate_limit:salary_submit:1.1.1.1", time.Minute).
			Return(int64(1), nil).Once()
		counter.On("IncrWindow", mock.Anything, "rate_limit:salary_submit:2.2.2.2", time.Minute).
			Return(int64(1), nil).Once()

		middleware := RateLimitMiddleware(logger, counter, 1, time.Minute)

		for _, addr := range []string{"1.1.1.1:51000", "2.2.2.2:51000"} {
			req := httptest.NewRequest(http.MethodPost, "/salary", nil)
			req.RemoteAddr = addr
			w := httptest.NewRecorder()

			middleware(testHandler).ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
		counter.AssertExpectations(t)
	})

	t.Run("unresolvable client ip is rejected", func(t *testing.T) {
		counter := new(CounterMock)
		middleware := RateLimitMiddleware(logger, counter, 1, time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/salary", nil)
		req.RemoteAddr = ""
		w := httptest.NewRecorder()

		middleware(testHandler).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "client_ip_unresolvable")
		counter.AssertNotCalled(t, "IncrWindow")
	})

	t.Run("counter failure returns internal error", func(t *testing.T) {
		counter := new(CounterMock)
		counter.On("IncrWindow", mock.Anything, "rate_limit:salary_submit:1.2.3.4", time.Minute).
			Return(int64(0), errors.New("redis down")).Once()

		middleware := RateLimitMiddleware(logger, counter, 1, time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/salary", nil)
		req.RemoteAddr = "1.2.3.4:51000"
		w := httptest.NewRecorder()

		middleware(testHandler).ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		counter.AssertExpectations(t)
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "first hop from X-Forwarded-For wins",
			remoteAddr: "10.0.0.1:51000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "X-Real-IP used when no forwarded header",
			remoteAddr: "10.0.0.1:51000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.3"},
			want:       "198.51.100.3",
		},
		{
			name:       "remote addr host as fallback",
			remoteAddr: "1.2.3.4:51000",
			want:       "1.2.3.4",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "1.2.3.4",
			want:       "1.2.3.4",
		},
		{
			name:       "empty everything",
			remoteAddr: "",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
