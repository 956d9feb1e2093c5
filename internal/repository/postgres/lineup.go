package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aidar/lineup-service/internal/domain"
)

// LineupRepository реализует repository.LineupRepository для PostgreSQL
type LineupRepository struct {
	db *Pool
}

// NewLineupRepository создает новый экземпляр LineupRepository
func NewLineupRepository(db *Pool) *LineupRepository {
	return &LineupRepository{db: db}
}

// ExistsByHash проверяет есть ли в командах пользователя состав с таким хешем
func (r *LineupRepository) ExistsByHash(ctx context.Context, userID int64, hash string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM teams
			INNER JOIN lineups ON teams.team_id = lineups.team_id
			WHERE teams.user_id = $1 AND lineups.lineup_hash = $2
		)
	`

	var exists bool
	err := r.db.run(ctx, func(q querier) error {
		return q.QueryRow(ctx, query, userID, hash).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("check lineup hash: %w", err)
	}

	return exists, nil
}

// Create сохраняет состав. Вставка идет через SELECT по teams, поэтому
// состав нельзя записать в чужую команду
func (r *LineupRepository) Create(ctx context.Context, userID int64, lineup *domain.Lineup) (int64, error) {
	query := `
		INSERT INTO lineups (team_id, user_id, lineup_info, lineup_hash)
		SELECT team_id, user_id, $3::jsonb, $4::text
		FROM teams
		WHERE team_id = $1 AND user_id = $2
		RETURNING lineup_id
	`

	var lineupID int64
	err := r.db.run(ctx, func(q querier) error {
		return q.QueryRow(ctx, query, lineup.TeamID, userID, string(lineup.Info), lineup.Hash).Scan(&lineupID)
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return 0, domain.ErrTeamNotFound
		case isUniqueViolation(err):
			return 0, domain.ErrLineupExists
		}
		return 0, fmt.Errorf("insert lineup: %w", err)
	}

	lineup.LineupID = lineupID
	return lineupID, nil
}

// ListByTeam возвращает составы выбранной команды пользователя
func (r *LineupRepository) ListByTeam(ctx context.Context, userID, teamID int64) ([]*domain.Lineup, error) {
	query := `
		SELECT lineups.lineup_id, lineups.team_id, lineups.lineup_info, lineups.lineup_hash
		FROM teams
		INNER JOIN lineups ON teams.team_id = lineups.team_id
		WHERE teams.user_id = $1 AND teams.team_id = $2
		ORDER BY lineups.lineup_id
	`

	var lineups []*domain.Lineup
	err := r.db.run(ctx, func(q querier) error {
		rows, err := q.Query(ctx, query, userID, teamID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				lineup domain.Lineup
				raw    []byte
			)
			if err := rows.Scan(&lineup.LineupID, &lineup.TeamID, &raw, &lineup.Hash); err != nil {
				return err
			}
			lineup.Info = raw
			lineups = append(lineups, &lineup)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}

	return lineups, nil
}

// Delete удаляет состав пользователя и возвращает его хеш
func (r *LineupRepository) Delete(ctx context.Context, userID, lineupID int64) (string, error) {
	query := `
		DELETE FROM lineups
		WHERE lineup_id = $1 AND user_id = $2
		RETURNING lineup_hash
	`

	var hash string
	err := r.db.run(ctx, func(q querier) error {
		return q.QueryRow(ctx, query, lineupID, userID).Scan(&hash)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrLineupNotFound
		}
		return "", fmt.Errorf("delete lineup: %w", err)
	}

	return hash, nil
}
