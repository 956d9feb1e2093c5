package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aidar/lineup-service/internal/domain"
)

// VerificationRepository реализует repository.VerificationRepository для PostgreSQL
type VerificationRepository struct {
	db *Pool
}

// NewVerificationRepository создает новый экземпляр VerificationRepository
func NewVerificationRepository(db *Pool) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// GetForUpdate получает запись подтверждения и блокирует строку до конца транзакции
func (r *VerificationRepository) GetForUpdate(ctx context.Context, email string, kind domain.VerificationType) (*domain.Verification, error) {
	query := `
		SELECT email, code, hashed_password, timestamp, type
		FROM verifications
		WHERE email = $1 AND type = $2
		FOR UPDATE
	`

	var v domain.Verification
	err := r.db.run(ctx, func(q querier) error {
		return q.QueryRow(ctx, query, email, kind).Scan(&v.Email, &v.Code, &v.PasswordHash, &v.IssuedAt, &v.Type)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVerificationNotFound
		}
		return nil, fmt.Errorf("select verification: %w", err)
	}

	return &v, nil
}

// Create сохраняет новую запись подтверждения
func (r *VerificationRepository) Create(ctx context.Context, v *domain.Verification) error {
	query := `
		INSERT INTO verifications (email, code, hashed_password, timestamp, type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email, type) DO NOTHING
	`

	var inserted int64
	err := r.db.run(ctx, func(q querier) error {
		result, err := q.Exec(ctx, query, v.Email, v.Code, v.PasswordHash, v.IssuedAt, v.Type)
		if err != nil {
			return err
		}
		inserted = result.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}
	if inserted == 0 {
		return domain.ErrVerificationPending
	}

	return nil
}

// Delete удаляет запись подтверждения (отсутствие записи не ошибка)
func (r *VerificationRepository) Delete(ctx context.Context, email string, kind domain.VerificationType) error {
	query := `DELETE FROM verifications WHERE email = $1 AND type = $2`

	err := r.db.run(ctx, func(q querier) error {
		_, err := q.Exec(ctx, query, email, kind)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete verification: %w", err)
	}

	return nil
}
