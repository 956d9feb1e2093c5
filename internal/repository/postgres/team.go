package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aidar/lineup-service/internal/domain"
)

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	db *Pool
}

// NewTeamRepository создает новый экземпляр TeamRepository
func NewTeamRepository(db *Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// ListByUser возвращает все команды пользователя
func (r *TeamRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Team, error) {
	query := `
		SELECT team_id, team_identifier, team_info
		FROM teams
		WHERE user_id = $1
		ORDER BY team_id
	`

	teams := []*domain.Team{}
	err := r.db.run(ctx, func(q querier) error {
		rows, err := q.Query(ctx, query, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			team := domain.Team{UserID: userID}
			var raw []byte
			if err := rows.Scan(&team.TeamID, &team.Identifier, &raw); err != nil {
				return err
			}
			if err := json.Unmarshal(raw, &team.Info); err != nil {
				return fmt.Errorf("decode team info: %w", err)
			}
			teams = append(teams, &team)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

// Exists проверяет добавлена ли команда с таким идентификатором
func (r *TeamRepository) Exists(ctx context.Context, userID int64, identifier string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE user_id = $1 AND team_identifier = $2)`

	var exists bool
	err := r.db.run(ctx, func(q querier) error {
		return q.QueryRow(ctx, query, userID, identifier).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("check team: %w", err)
	}

	return exists, nil
}

// Create добавляет команду и возвращает ее ID
func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) (int64, error) {
	query := `
		INSERT INTO teams (user_id, team_identifier, team_info)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, team_identifier) DO NOTHING
		RETURNING team_id
	`

	info, err := json.Marshal(team.Info)
	if err != nil {
		return 0, fmt.Errorf("encode team info: %w", err)
	}

	var teamID int64
	err = r.db.run(ctx, func(q querier) error {
		return q.QueryRow(ctx, query, team.UserID, team.Identifier, string(info)).Scan(&teamID)
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return 0, domain.ErrTeamExists
		case isForeignKeyViolation(err):
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("insert team: %w", err)
	}

	team.TeamID = teamID
	return teamID, nil
}

// GetInfo возвращает данные лиги команды пользователя
func (r *TeamRepository) GetInfo(ctx context.Context, userID, teamID int64) (*domain.LeagueInfo, error) {
	query := `SELECT team_info FROM teams WHERE user_id = $1 AND team_id = $2`

	var raw []byte
	err := r.db.run(ctx, func(q querier) error {
		return q.QueryRow(ctx, query, userID, teamID).Scan(&raw)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("select team info: %w", err)
	}

	var info domain.LeagueInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("decode team info: %w", err)
	}

	return &info, nil
}

// UpdateInfo заменяет данные лиги команды пользователя
func (r *TeamRepository) UpdateInfo(ctx context.Context, userID, teamID int64, info domain.LeagueInfo) error {
	query := `UPDATE teams SET team_info = $1 WHERE user_id = $2 AND team_id = $3`

	raw, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode team info: %w", err)
	}

	return r.db.run(ctx, func(q querier) error {
		result, err := q.Exec(ctx, query, string(raw), userID, teamID)
		if err != nil {
			return fmt.Errorf("update team: %w", err)
		}
		if result.RowsAffected() == 0 {
			return domain.ErrTeamNotFound
		}
		return nil
	})
}

// Delete удаляет команду пользователя
func (r *TeamRepository) Delete(ctx context.Context, userID, teamID int64) error {
	query := `DELETE FROM teams WHERE user_id = $1 AND team_id = $2`

	return r.db.run(ctx, func(q querier) error {
		result, err := q.Exec(ctx, query, userID, teamID)
		if err != nil {
			return fmt.Errorf("delete team: %w", err)
		}
		if result.RowsAffected() == 0 {
			return domain.ErrTeamNotFound
		}
		return nil
	})
}

// DeleteByUser удаляет все команды пользователя
func (r *TeamRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM teams WHERE user_id = $1`

	var deleted int64
	err := r.db.run(ctx, func(q querier) error {
		result, err := q.Exec(ctx, query, userID)
		if err != nil {
			return err
		}
		deleted = result.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete user teams: %w", err)
	}

	return deleted, nil
}
