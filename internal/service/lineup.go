package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/aidar/lineup-service/internal/domain"
	"github.com/aidar/lineup-service/internal/repository"
)

// SaveLineupResult is the outcome of saving a lineup
type SaveLineupResult struct {
	Success       bool `json:"success"`
	AlreadyExists bool `json:"already_exists"`
}

// ListLineupsResult holds a team's lineups; NoLineups marks an empty result
type ListLineupsResult struct {
	Lineups   []*domain.Lineup `json:"lineups"`
	NoLineups bool             `json:"no_lineups"`
}

// LineupService handles business logic for lineups
type LineupService struct {
	tx         repository.Transactor
	teamRepo   repository.TeamRepository
	lineupRepo repository.LineupRepository
	generator  LineupGenerator
	logger     *slog.Logger
}

// NewLineupService creates a new LineupService
func NewLineupService(
	tx repository.Transactor,
	teamRepo repository.TeamRepository,
	lineupRepo repository.LineupRepository,
	generator LineupGenerator,
	logger *slog.Logger,
) *LineupService {
	return &LineupService{
		tx:         tx,
		teamRepo:   teamRepo,
		lineupRepo: lineupRepo,
		generator:  generator,
		logger:     logger,
	}
}

// GenerateLineup forwards the team's league credentials to the lineup generator
// and returns its answer as is. Nothing is stored
func (s *LineupService) GenerateLineup(ctx context.Context, userID, teamID int64, params domain.GenerateLineupParams) (json.RawMessage, error) {
	info, err := s.teamRepo.GetInfo(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	return s.generator.GenerateLineup(ctx, *info, params)
}

// SaveLineup stores the lineup unless one with the same content hash already exists
// among the user's teams. Failures are logged and reported as Success=false
func (s *LineupService) SaveLineup(ctx context.Context, userID, teamID int64, payload json.RawMessage) *SaveLineupResult {
	hash, err := LineupHash(payload)
	if err != nil {
		s.logger.Warn("Lineup not saved", "user_id", userID, "team_id", teamID, "error", err)
		return &SaveLineupResult{}
	}

	lineup := &domain.Lineup{
		TeamID: teamID,
		Info:   payload,
		Hash:   hash,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		exists, err := s.lineupRepo.ExistsByHash(ctx, userID, hash)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrLineupExists
		}

		_, err = s.lineupRepo.Create(ctx, userID, lineup)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrLineupExists) {
			return &SaveLineupResult{Success: false, AlreadyExists: true}
		}
		s.logger.Error("Lineup not saved", "user_id", userID, "team_id", teamID, "error", err)
		return &SaveLineupResult{}
	}

	return &SaveLineupResult{Success: true}
}

// ListLineups returns the lineups saved for the user's team
func (s *LineupService) ListLineups(ctx context.Context, userID, teamID int64) (*ListLineupsResult, error) {
	lineups, err := s.lineupRepo.ListByTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	if len(lineups) == 0 {
		return &ListLineupsResult{Lineups: nil, NoLineups: true}, nil
	}
	return &ListLineupsResult{Lineups: lineups}, nil
}

// RemoveLineup deletes the user's lineup. Success requires the deleted row's hash
func (s *LineupService) RemoveLineup(ctx context.Context, userID, lineupID int64) (bool, error) {
	hash, err := s.lineupRepo.Delete(ctx, userID, lineupID)
	if err != nil {
		if errors.Is(err, domain.ErrLineupNotFound) {
			return false, nil
		}
		return false, err
	}
	return hash != "", nil
}
