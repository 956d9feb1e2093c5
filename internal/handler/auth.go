package handler

import (
	"log/slog"
	"net/http"

	"github.com/aidar/lineup-service/internal/service"
)

// AuthHandler обрабатывает эндпоинты регистрации и входа
type AuthHandler struct {
	verificationService *service.VerificationService
	accountService      *service.AccountService
	logger              *slog.Logger
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(verificationService *service.VerificationService, accountService *service.AccountService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		verificationService: verificationService,
		accountService:      accountService,
		logger:              logger,
	}
}

// VerifyEmailRequest представляет тело запроса на отправку кода
type VerifyEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CheckCodeRequest представляет тело запроса на проверку кода
type CheckCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SuccessResponse - ответ из одного флага успеха
type SuccessResponse struct {
	Success bool `json:"success"`
}

// VerifyEmail обрабатывает POST /users/verify/send-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := h.verificationService.RequestCode(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

// CheckCode обрабатывает POST /users/verify/check-code
func (h *AuthHandler) CheckCode(w http.ResponseWriter, r *http.Request) {
	var req CheckCodeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := h.verificationService.CheckCode(r.Context(), req.Email, req.Code)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

// Login обрабатывает POST /users/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := h.accountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

// AuthCheck обрабатывает GET /users/verify/auth-check (токен уже проверен middleware)
func (h *AuthHandler) AuthCheck(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}
