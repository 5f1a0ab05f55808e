// Package jobs реализует HTTP-обработчик справочника профессий.
package jobs

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/olasslabs/olass-backend/internal/http/response"
	"github.com/olasslabs/olass-backend/internal/lib/sl"
	"github.com/olasslabs/olass-backend/internal/models"
)

// Handler отдает список профессий для выбора на фронте.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики справочника.
type Service interface {
	ListJobs(ctx context.Context) ([]*models.Job, error)
}

// JobItem элемент справочника в ответе.
type JobItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Справочник профессий
// @Description Возвращает список профессий для выбора при отправке зарплаты.
// @Tags Asset
// @Produce json
// @Success 200 {object} response.Response "Список профессий"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/asset/v1/jobs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.jobs"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	jobsList, err := h.service.ListJobs(r.Context())
	if err != nil {
		log.Error("failed to list jobs", sl.Err(err))
		status, resp := response.FromDomainError(err)
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	items := make([]JobItem, 0, len(jobsList))
	for _, job := range jobsList {
		items = append(items, JobItem{ID: job.ID, Name: job.Name})
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"items": items,
	}))
}
