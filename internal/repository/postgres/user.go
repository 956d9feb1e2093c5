package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aidar/lineup-service/internal/domain"
)

// UserRepository реализует repository.UserRepository для PostgreSQL
type UserRepository struct {
	db *Pool
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create создает пользователя и возвращает его ID
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	// ON CONFLICT не прерывает внешнюю транзакцию при гонке за email
	query := `
		INSERT INTO users (email, password)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
		RETURNING user_id
	`

	var userID int64
	err := r.db.run(ctx, func(q querier) error {
		return q.QueryRow(ctx, query, email, passwordHash).Scan(&userID)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	return userID, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT user_id, email, password FROM users WHERE user_id = $1`
	return r.getOne(ctx, query, userID)
}

// GetByEmail получает пользователя по email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT user_id, email, password FROM users WHERE email = $1 LIMIT 1`
	return r.getOne(ctx, query, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := r.db.run(ctx, func(q querier) error {
		return q.QueryRow(ctx, query, arg).Scan(&user.UserID, &user.Email, &user.PasswordHash)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	return &user, nil
}

// ExistsByEmail проверяет занят ли email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.run(ctx, func(q querier) error {
		return q.QueryRow(ctx, query, email).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}

	return exists, nil
}

// UpdateEmail меняет email пользователя
func (r *UserRepository) UpdateEmail(ctx context.Context, userID int64, email string) error {
	query := `UPDATE users SET email = $1 WHERE user_id = $2`

	err := r.exec(ctx, query, email, userID)
	if isUniqueViolation(err) {
		return domain.ErrEmailInUse
	}
	return err
}

// UpdatePassword меняет хеш пароля пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password = $1 WHERE user_id = $2`
	return r.exec(ctx, query, passwordHash, userID)
}

// Delete удаляет пользователя
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM users WHERE user_id = $1`
	return r.exec(ctx, query, userID)
}

// exec выполняет изменяющий запрос по одному пользователю
func (r *UserRepository) exec(ctx context.Context, query string, args ...any) error {
	return r.db.run(ctx, func(q querier) error {
		result, err := q.Exec(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return err
			}
			return fmt.Errorf("update user: %w", err)
		}
		if result.RowsAffected() == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}
