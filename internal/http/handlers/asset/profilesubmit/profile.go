// Package profilesubmit реализует HTTP-обработчик отправки профиля потребления.
//
// Handler принимает JSON-запрос с профилем, валидирует его, сохраняет профиль
// идемпотентно по UUID отправки зарплаты и возвращает ранг и перцентиль.
package profilesubmit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/olasslabs/olass-backend/internal/http/response"
	"github.com/olasslabs/olass-backend/internal/lib/sl"
	"github.com/olasslabs/olass-backend/internal/models"
)

// Handler управляет HTTP-запросами на отправку профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики отправки профиля.
type Service interface {
	SaveUserProfile(ctx context.Context, req models.DummyProfile) (*models.ProfileResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправить профиль и получить ранг
// @Description Сохраняет профиль потребления и возвращает ранг машины и перцентиль относительно среднего по профессии.
// @Tags Asset
// @Accept json
// @Produce json
// @Param request body models.DummyProfile true "Данные профиля"
// @Success 200 {object} response.Response "Ранг и перцентиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Нет отправки зарплаты с данным UUID"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/asset/v1/profile [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.profilesubmit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "bad_request", "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.SaveUserProfile(r.Context(), req)
	if err != nil {
		log.Error("failed to save user profile", sl.Err(err))
		status, resp := response.FromDomainError(err)
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("saved user profile", slog.String("unique_id", req.UniqueID))
	render.JSON(w, r, response.OKWithData(result))
}
