package service

import (
	"context"
	"encoding/json"

	"github.com/aidar/lineup-service/internal/domain"
)

// TokenIssuer issues access tokens for authenticated users
type TokenIssuer interface {
	IssueToken(userID int64, email string) (string, error)
}

// Mailer sends emails
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// LeagueService validates league connections and fetches live rosters
type LeagueService interface {
	CheckLeague(ctx context.Context, info domain.LeagueInfo) (bool, error)
	GetRoster(ctx context.Context, info domain.LeagueInfo) (json.RawMessage, error)
}

// LineupGenerator computes lineups for a league team
type LineupGenerator interface {
	GenerateLineup(ctx context.Context, info domain.LeagueInfo, params domain.GenerateLineupParams) (json.RawMessage, error)
}
