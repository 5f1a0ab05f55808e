// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: успешные конверты,
// конверты ошибок с машиночитаемым типом и сообщения валидации.
package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/olasslabs/olass-backend/internal/domain"
)

// Response описывает стандартный конверт успешного ответа.
type Response struct {
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ErrorBody машиночитаемое описание ошибки внутри конверта.
type ErrorBody struct {
	Type    string         `json:"type"`
	Details map[string]any `json:"details"`
}

// ErrorResponse описывает стандартный конверт ответа с ошибкой.
type ErrorResponse struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Error   ErrorBody `json:"error"`
	Success bool      `json:"success"`
}

// OKWithData возвращает успешный конверт с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Code:    http.StatusOK,
		Data:    data,
		Message: "ok",
		Success: true,
	}
}

// Error возвращает конверт ошибки с данным статусом, типом и сообщением.
func Error(code int, errType, msg string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: msg,
		Error: ErrorBody{
			Type:    errType,
			Details: map[string]any{},
		},
		Success: false,
	}
}

// ValidationError формирует конверт 422 c построчным описанием нарушений.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	details := make(map[string]any, len(errs))

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			details[err.Field()] = "is a required field"
		case "uuid":
			details[err.Field()] = "must be a valid uuid"
		case "email":
			details[err.Field()] = "must be a valid email"
		case "gt":
			details[err.Field()] = fmt.Sprintf("must be greater than %s", err.Param())
		case "gte":
			details[err.Field()] = fmt.Sprintf("must be at least %s", err.Param())
		case "lt":
			details[err.Field()] = fmt.Sprintf("must be less than %s", err.Param())
		case "lte":
			details[err.Field()] = fmt.Sprintf("must be at most %s", err.Param())
		default:
			details[err.Field()] = "is not valid"
		}
	}
	return ErrorResponse{
		Code:    http.StatusUnprocessableEntity,
		Message: "validation failed",
		Error: ErrorBody{
			Type:    "validation_error",
			Details: details,
		},
		Success: false,
	}
}

// FromDomainError переводит доменную ошибку сервисного слоя в HTTP-статус
// и конверт. Единая точка маппинга: текст ошибок хранилища наружу не уходит.
func FromDomainError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrUserSalaryNotFound):
		return http.StatusNotFound, Error(http.StatusNotFound, "user_salary_not_found", "no salary submission for given uniqueId")
	case errors.Is(err, domain.ErrSalaryStatNotFound):
		return http.StatusNotFound, Error(http.StatusNotFound, "salary_stat_not_found", "no salary statistics for given job and experience")
	case errors.Is(err, domain.ErrUserProfileNotFound):
		return http.StatusNotFound, Error(http.StatusNotFound, "user_profile_not_found", "no profile for given uniqueId")
	case errors.Is(err, domain.ErrSalaryNotFound):
		return http.StatusNotFound, Error(http.StatusNotFound, "salary_not_found", "no salary submission for given uniqueId")
	case errors.Is(err, domain.ErrSalaryAlreadyLinked):
		return http.StatusBadRequest, Error(http.StatusBadRequest, "salary_already_linked", "salary submission is already linked to a user")
	case errors.Is(err, domain.ErrUserCreationFailed):
		return http.StatusInternalServerError, Error(http.StatusInternalServerError, "user_creation_failed", "could not create user")
	case errors.Is(err, domain.ErrConsentCreationFailed):
		return http.StatusInternalServerError, Error(http.StatusInternalServerError, "consent_creation_failed", "could not create consent")
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return http.StatusTooManyRequests, Error(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests, try again later")
	case errors.Is(err, domain.ErrClientIPUnresolvable):
		return http.StatusBadRequest, Error(http.StatusBadRequest, "client_ip_unresolvable", "could not resolve client ip")
	default:
		return http.StatusInternalServerError, Error(http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
