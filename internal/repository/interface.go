package repository

import (
	"context"

	"github.com/aidar/lineup-service/internal/domain"
)

// Transactor выполняет fn в рамках одной транзакции на одном соединении из пула.
// Репозитории, вызванные с контекстом из fn, работают внутри этой транзакции.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository определяет методы для работы с аккаунтами
type UserRepository interface {
	// Create создает пользователя и возвращает его ID (domain.ErrUserExists при занятом email)
	Create(ctx context.Context, email, passwordHash string) (int64, error)

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID int64) (*domain.User, error)

	// GetByEmail получает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail проверяет занят ли email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateEmail меняет email (domain.ErrEmailInUse при занятом email)
	UpdateEmail(ctx context.Context, userID int64, email string) error

	// UpdatePassword меняет хеш пароля
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// Delete удаляет пользователя
	Delete(ctx context.Context, userID int64) error
}

// VerificationRepository определяет методы для работы с кодами подтверждения
type VerificationRepository interface {
	// GetForUpdate получает запись и блокирует ее до конца транзакции
	GetForUpdate(ctx context.Context, email string, kind domain.VerificationType) (*domain.Verification, error)

	// Create сохраняет новую запись (domain.ErrVerificationPending если запись уже есть)
	Create(ctx context.Context, v *domain.Verification) error

	// Delete удаляет запись
	Delete(ctx context.Context, email string, kind domain.VerificationType) error
}

// TeamRepository определяет методы для работы с командами пользователей
type TeamRepository interface {
	// ListByUser возвращает все команды пользователя
	ListByUser(ctx context.Context, userID int64) ([]*domain.Team, error)

	// Exists проверяет добавлена ли команда с таким идентификатором
	Exists(ctx context.Context, userID int64, identifier string) (bool, error)

	// Create добавляет команду и возвращает ее ID (domain.ErrTeamExists при дубликате)
	Create(ctx context.Context, team *domain.Team) (int64, error)

	// GetInfo возвращает данные лиги команды пользователя
	GetInfo(ctx context.Context, userID, teamID int64) (*domain.LeagueInfo, error)

	// UpdateInfo заменяет данные лиги команды пользователя
	UpdateInfo(ctx context.Context, userID, teamID int64, info domain.LeagueInfo) error

	// Delete удаляет команду пользователя
	Delete(ctx context.Context, userID, teamID int64) error

	// DeleteByUser удаляет все команды пользователя и возвращает их количество
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

// LineupRepository определяет методы для работы с сохраненными составами
type LineupRepository interface {
	// ExistsByHash проверяет есть ли у пользователя состав с таким хешем
	ExistsByHash(ctx context.Context, userID int64, hash string) (bool, error)

	// Create сохраняет состав в команду пользователя (domain.ErrLineupExists при дубликате)
	Create(ctx context.Context, userID int64, lineup *domain.Lineup) (int64, error)

	// ListByTeam возвращает составы выбранной команды пользователя
	ListByTeam(ctx context.Context, userID, teamID int64) ([]*domain.Lineup, error)

	// Delete удаляет состав и возвращает его хеш
	Delete(ctx context.Context, userID, lineupID int64) (string, error)
}
