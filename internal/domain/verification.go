package domain

import "time"

// VerificationTTL - окно действия одноразового кода подтверждения
const VerificationTTL = 300 * time.Second

// VerificationType размечает назначение записи подтверждения
type VerificationType string

// VerificationTypeEmail - подтверждение email при регистрации
const VerificationTypeEmail VerificationType = "email"

// Verification представляет ожидающий подтверждения запрос на регистрацию.
// Хеш пароля хранится здесь до создания аккаунта.
type Verification struct {
	Email        string
	Code         string
	PasswordHash string
	IssuedAt     int64 // Unix секунды
	Type         VerificationType
}

// Age возвращает сколько секунд прошло с выдачи кода
func (v *Verification) Age(now time.Time) int64 {
	return now.Unix() - v.IssuedAt
}

// IsLive возвращает true пока запись не устарела (строго меньше TTL)
func (v *Verification) IsLive(now time.Time) bool {
	return v.Age(now) < int64(VerificationTTL/time.Second)
}

// IsExpired возвращает true если код больше нельзя принять
func (v *Verification) IsExpired(now time.Time) bool {
	return v.Age(now) > int64(VerificationTTL/time.Second)
}
