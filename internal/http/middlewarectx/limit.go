// Package middlewarectx содержит HTTP-middleware приложения:
// лимитер отправок зарплаты и счетчик запросов для метрик.
package middlewarectx

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/olasslabs/olass-backend/internal/domain"
	"github.com/olasslabs/olass-backend/internal/http/response"
	"github.com/olasslabs/olass-backend/internal/lib/sl"
)

// WindowCounter описывает счетчик фиксированного окна для лимитера.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

const rateLimitKeyPrefix = "rate_limit:salary_submit:"

// RateLimitMiddleware ограничивает число отправок зарплаты с одного IP
// внутри фиксированного окна. Счетчик живет в redis, поэтому лимит общий
// для всех реплик приложения.
func RateLimitMiddleware(log *slog.Logger, counter WindowCounter, maxCalls int, period time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if ip == "" {
				log.Error("client ip unresolvable", slog.String("remote_addr", r.RemoteAddr))
				status, resp := response.FromDomainError(domain.ErrClientIPUnresolvable)
				w.WriteHeader(status)
				render.JSON(w, r, resp)
				return
			}

			count, err := counter.IncrWindow(r.Context(), rateLimitKeyPrefix+ip, period)
			if err != nil {
				log.Error("rate limit counter failed", sl.Err(err))
				status, resp := response.FromDomainError(err)
				w.WriteHeader(status)
				render.JSON(w, r, resp)
				return
			}
			if count > int64(maxCalls) {
				log.Info("rate limit exceeded", slog.String("ip", ip), slog.Int64("count", count))
				status, resp := response.FromDomainError(domain.ErrRateLimitExceeded)
				w.WriteHeader(status)
				render.JSON(w, r, resp)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP извлекает IP клиента: первый адрес из X-Forwarded-For,
// затем X-Real-IP, затем адрес соединения. Пустая строка - IP не определен.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
