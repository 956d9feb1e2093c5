package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/lineup-service/internal/domain"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит код и описание ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы.
// Текст исходной ошибки клиенту не отдается, только в лог
func HandleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := domain.MapErrorToCode(err)
	switch code {
	case domain.CodeAlreadyExists:
		RespondWithError(w, r, http.StatusConflict, string(code), "resource already exists")
	case domain.CodeNotFound:
		RespondWithError(w, r, http.StatusNotFound, string(code), "resource not found")
	case domain.CodeInvalidLeague:
		RespondWithError(w, r, http.StatusUnprocessableEntity, string(code), "league info is not valid")
	case domain.CodeUnauthorized:
		RespondWithError(w, r, http.StatusUnauthorized, string(code), "unauthorized")
	case domain.CodeServiceUnavailable:
		logger.Warn("External service unavailable", "path", r.URL.Path, "error", err)
		RespondWithError(w, r, http.StatusServiceUnavailable, string(code), "external service unavailable")
	case domain.CodeBadGateway:
		logger.Warn("External service rejected request", "path", r.URL.Path, "error", err)
		RespondWithError(w, r, http.StatusBadGateway, string(code), "external service rejected request")
	default:
		logger.Error("Request failed", "path", r.URL.Path, "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, string(domain.CodeInternal), "internal server error")
	}
}
