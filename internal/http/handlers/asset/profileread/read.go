// Package profileread реализует HTTP-обработчик чтения результата по профилю.
package profileread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/olasslabs/olass-backend/internal/http/response"
	"github.com/olasslabs/olass-backend/internal/lib/sl"
	"github.com/olasslabs/olass-backend/internal/models"
)

// Handler отдает ранг и перцентиль по сохраненному профилю.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения результата.
type Service interface {
	GetProfileResult(ctx context.Context, uniqueID string) (*models.ProfileResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Результат по сохраненному профилю
// @Description Возвращает ранг машины и перцентиль, рассчитанные из сохраненного профиля.
// @Tags Asset
// @Produce json
// @Param uniqueId path string true "Клиентский UUID отправки"
// @Success 200 {object} response.Response "Ранг и перцентиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный UUID"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Router /api/asset/v1/profile/{uniqueId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.profileread"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uniqueID := chi.URLParam(r, "uniqueId")
	if _, err := uuid.Parse(uniqueID); err != nil {
		log.Error("failed to parse uniqueId from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "bad_request", "uniqueId must be a valid uuid"))
		return
	}

	result, err := h.service.GetProfileResult(r.Context(), uniqueID)
	if err != nil {
		log.Error("failed to get profile result", sl.Err(err))
		status, resp := response.FromDomainError(err)
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.OKWithData(result))
}
