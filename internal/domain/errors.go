package domain

import "errors"

// Доменные ошибки
var (
	// ErrUserExists возвращается при попытке создать аккаунт с занятым email
	ErrUserExists = errors.New("user already exists")

	// ErrEmailInUse возвращается когда email занят аккаунтом или ожидающим подтверждением
	ErrEmailInUse = errors.New("email already in use")

	// ErrTeamExists возвращается при повторном добавлении той же команды пользователем
	ErrTeamExists = errors.New("team already exists")

	// ErrLineupExists возвращается при повторном сохранении того же состава
	ErrLineupExists = errors.New("lineup already exists")

	// ErrVerificationPending возвращается если код уже выдан и еще действует
	ErrVerificationPending = errors.New("verification already pending")

	// ErrNotFound возвращается когда ресурс не найден
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrTeamNotFound возвращается когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrLineupNotFound возвращается когда состав не найден
	ErrLineupNotFound = errors.New("lineup not found")

	// ErrVerificationNotFound возвращается когда нет записи подтверждения
	ErrVerificationNotFound = errors.New("verification not found")

	// ErrInvalidLeague возвращается когда данные лиги не прошли внешнюю проверку
	ErrInvalidLeague = errors.New("invalid league info")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")

	// ErrServiceUnavailable возвращается когда внешний сервис недоступен
	ErrServiceUnavailable = errors.New("external service unavailable")

	// ErrServiceRejected возвращается когда внешний сервис отклонил запрос
	ErrServiceRejected = errors.New("external service rejected request")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeAlreadyExists      ErrorCode = "ALREADY_EXISTS"      // Уникальность нарушена
	CodeNotFound           ErrorCode = "NOT_FOUND"           // Ресурс не найден
	CodeInvalidLeague      ErrorCode = "INVALID_LEAGUE"      // Лига не прошла проверку
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"        // Нет доступа
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE" // Внешний сервис недоступен
	CodeBadGateway         ErrorCode = "BAD_GATEWAY"         // Внешний сервис ответил ошибкой
	CodeInternal           ErrorCode = "INTERNAL_ERROR"      // Внутренняя ошибка
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrUserExists), errors.Is(err, ErrEmailInUse),
		errors.Is(err, ErrTeamExists), errors.Is(err, ErrLineupExists),
		errors.Is(err, ErrVerificationPending):
		return CodeAlreadyExists
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTeamNotFound), errors.Is(err, ErrLineupNotFound),
		errors.Is(err, ErrVerificationNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidLeague):
		return CodeInvalidLeague
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	case errors.Is(err, ErrServiceUnavailable):
		return CodeServiceUnavailable
	case errors.Is(err, ErrServiceRejected):
		return CodeBadGateway
	default:
		return CodeInternal
	}
}
