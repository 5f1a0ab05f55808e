// Package email реализует HTTP-обработчик привязки email и маркетингового
// согласия к ранее отправленной зарплате.
package email

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

// Handler управляет HTTP-запросами на привязку email.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики привязки пользователя.
type Service interface {
	SaveUserWithMarketing(ctx context.Context, req models.DummyEmail) (int64, error)
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
// @Summary Привязать email к отправке зарплаты
// @Description Создает пользователя, запись маркетингового согласия и привязывает отправку зарплаты. Повторная привязка отклоняется.
// @Tags User
// @Accept json
// @Produce json
// @Param request body models.DummyEmail true "Email и согласие"
// @Success 200 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Запись уже привязана"
// @Failure 404 {object} response.ErrorResponse "Отправка зарплаты не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Не удалось сохранить пользователя или согласие"
// @Router /api/user/v1/email [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.email"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyEmail
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

	userID, err := h.service.SaveUserWithMarketing(r.Context(), req)
	if err != nil {
		log.Error("failed to link user", sl.Err(err))
		status, resp := response.FromDomainError(err)
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("created user with marketing consent", slog.Int64("user_id", userID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"userId": userID,
	}))
}
