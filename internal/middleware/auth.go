package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aidar/lineup-service/internal/domain"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

// ClaimsKey ключ контекста для данных авторизованного пользователя
const ClaimsKey ContextKey = "claims"

// TokenValidator проверяет токен и возвращает данные пользователя
type TokenValidator interface {
	ValidateToken(token string) (*domain.Claims, error)
}

// AuthMiddleware создает middleware для валидации JWT токенов
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			// Проверяем формат Bearer
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "invalid authorization header format")
				return
			}

			// Валидируем токен
			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			// Добавляем claims в контекст
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)

			// Вызываем следующий обработчик
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"` + message + `"}}`))
}

// GetClaimsFromContext извлекает данные пользователя из контекста
func GetClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}

// GetUserIDFromContext извлекает ID пользователя из контекста
func GetUserIDFromContext(ctx context.Context) int64 {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return 0
	}
	return claims.UserID
}
