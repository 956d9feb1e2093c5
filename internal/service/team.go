package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/aidar/lineup-service/internal/domain"
	"github.com/aidar/lineup-service/internal/repository"
)

// AddTeamResult is the outcome of adding a team. TeamID is nil when nothing was stored
type AddTeamResult struct {
	TeamID        *int64 `json:"team_id"`
	AlreadyExists bool   `json:"already_exists"`
}

// TeamService handles business logic for teams
type TeamService struct {
	tx       repository.Transactor
	teamRepo repository.TeamRepository
	leagues  LeagueService
	logger   *slog.Logger
}

// NewTeamService creates a new TeamService
func NewTeamService(tx repository.Transactor, teamRepo repository.TeamRepository, leagues LeagueService, logger *slog.Logger) *TeamService {
	return &TeamService{
		tx:       tx,
		teamRepo: teamRepo,
		leagues:  leagues,
		logger:   logger,
	}
}

// ListTeams returns all teams of the user
func (s *TeamService) ListTeams(ctx context.Context, userID int64) ([]*domain.Team, error) {
	return s.teamRepo.ListByUser(ctx, userID)
}

// AddTeam validates the league externally and stores the team unless the user
// already has a team with the same league id and name
func (s *TeamService) AddTeam(ctx context.Context, userID int64, info domain.LeagueInfo) (*AddTeamResult, error) {
	valid, err := s.leagues.CheckLeague(ctx, info)
	if err != nil {
		return nil, err
	}
	if !valid {
		return &AddTeamResult{}, nil
	}

	team := &domain.Team{
		UserID:     userID,
		Identifier: info.Identifier(),
		Info:       info,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		exists, err := s.teamRepo.Exists(ctx, userID, team.Identifier)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrTeamExists
		}

		_, err = s.teamRepo.Create(ctx, team)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrTeamExists) {
			return &AddTeamResult{AlreadyExists: true}, nil
		}
		return nil, err
	}

	teamID := team.TeamID
	return &AddTeamResult{TeamID: &teamID}, nil
}

// RemoveTeam deletes the user's team; false when no such team exists
func (s *TeamService) RemoveTeam(ctx context.Context, userID, teamID int64) (bool, error) {
	if err := s.teamRepo.Delete(ctx, userID, teamID); err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateTeam re-validates the league and replaces the stored league info.
// On any failure the stored info is left as it was
func (s *TeamService) UpdateTeam(ctx context.Context, userID, teamID int64, info domain.LeagueInfo) (bool, error) {
	valid, err := s.leagues.CheckLeague(ctx, info)
	if err != nil {
		return false, err
	}
	if !valid {
		return false, nil
	}

	if err := s.teamRepo.UpdateInfo(ctx, userID, teamID, info); err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ViewTeam fetches the live roster of the user's team; rosters are never stored
func (s *TeamService) ViewTeam(ctx context.Context, userID, teamID int64) (json.RawMessage, error) {
	info, err := s.teamRepo.GetInfo(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	return s.leagues.GetRoster(ctx, *info)
}
