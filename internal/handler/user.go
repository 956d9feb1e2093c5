package handler

import (
	"log/slog"
	"net/http"

	"github.com/aidar/lineup-service/internal/middleware"
	"github.com/aidar/lineup-service/internal/service"
)

// UserHandler обрабатывает эндпоинты управления аккаунтом
type UserHandler struct {
	accountService *service.AccountService
	logger         *slog.Logger
}

// NewUserHandler создает новый UserHandler
func NewUserHandler(accountService *service.AccountService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// UpdateUserRequest представляет тело запроса на изменение аккаунта
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
}

// DeleteUserRequest представляет тело запроса на удаление аккаунта
type DeleteUserRequest struct {
	Password string `json:"password" validate:"required"`
}

// Update обрабатывает POST /users/update
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	ok, err := h.accountService.Update(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.Email, req.Password)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: ok})
}

// Delete обрабатывает POST /users/delete
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	ok, err := h.accountService.Delete(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.Password)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: ok})
}
