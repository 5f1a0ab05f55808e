// Package salarysubmit реализует HTTP-обработчик отправки зарплаты.
//
// Handler принимает JSON-запрос с зарплатой и клиентским UUID, валидирует его,
// сохраняет отправку идемпотентно и возвращает сравнение с агрегатом
// по профессии. Эндпоинт прикрыт лимитером по IP.
package salarysubmit

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

// Handler управляет HTTP-запросами на отправку зарплаты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики отправки зарплаты.
type Service interface {
	SaveUserSalary(ctx context.Context, req models.DummySalary) (*models.SalaryCompareResult, error)
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
// @Summary Отправить зарплату и получить сравнение
// @Description Идемпотентно сохраняет отправку зарплаты по клиентскому UUID и возвращает сравнение с агрегатом по профессии.
// @Tags Asset
// @Accept json
// @Produce json
// @Param request body models.DummySalary true "Данные отправки"
// @Success 200 {object} response.Response "Сравнение зарплаты"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Нет агрегата для профессии и опыта"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Превышен лимит отправок"
// @Router /api/asset/v1/salary [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.salarysubmit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySalary
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

	result, err := h.service.SaveUserSalary(r.Context(), req)
	if err != nil {
		log.Error("failed to save user salary", sl.Err(err))
		status, resp := response.FromDomainError(err)
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("saved user salary", slog.String("unique_id", req.UniqueID))
	render.JSON(w, r, response.OKWithData(result))
}
