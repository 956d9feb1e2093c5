package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/aidar/lineup-service/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTx выполняет fn напрямую и считает вызовы
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateEmail(ctx context.Context, userID int64, email string) error {
	return m.Called(ctx, userID, email).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type mockVerificationRepo struct{ mock.Mock }

func (m *mockVerificationRepo) GetForUpdate(ctx context.Context, email string, kind domain.VerificationType) (*domain.Verification, error) {
	args := m.Called(ctx, email, kind)
	if v := args.Get(0); v != nil {
		return v.(*domain.Verification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVerificationRepo) Create(ctx context.Context, v *domain.Verification) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockVerificationRepo) Delete(ctx context.Context, email string, kind domain.VerificationType) error {
	return m.Called(ctx, email, kind).Error(0)
}

type mockTeamRepo struct{ mock.Mock }

func (m *mockTeamRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Team, error) {
	args := m.Called(ctx, userID)
	if t := args.Get(0); t != nil {
		return t.([]*domain.Team), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTeamRepo) Exists(ctx context.Context, userID int64, identifier string) (bool, error) {
	args := m.Called(ctx, userID, identifier)
	return args.Bool(0), args.Error(1)
}

func (m *mockTeamRepo) Create(ctx context.Context, team *domain.Team) (int64, error) {
	args := m.Called(ctx, team)
	id := args.Get(0).(int64)
	if args.Error(1) == nil {
		team.TeamID = id
	}
	return id, args.Error(1)
}

func (m *mockTeamRepo) GetInfo(ctx context.Context, userID, teamID int64) (*domain.LeagueInfo, error) {
	args := m.Called(ctx, userID, teamID)
	if i := args.Get(0); i != nil {
		return i.(*domain.LeagueInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTeamRepo) UpdateInfo(ctx context.Context, userID, teamID int64, info domain.LeagueInfo) error {
	return m.Called(ctx, userID, teamID, info).Error(0)
}

func (m *mockTeamRepo) Delete(ctx context.Context, userID, teamID int64) error {
	return m.Called(ctx, userID, teamID).Error(0)
}

func (m *mockTeamRepo) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockLineupRepo struct{ mock.Mock }

func (m *mockLineupRepo) ExistsByHash(ctx context.Context, userID int64, hash string) (bool, error) {
	args := m.Called(ctx, userID, hash)
	return args.Bool(0), args.Error(1)
}

func (m *mockLineupRepo) Create(ctx context.Context, userID int64, lineup *domain.Lineup) (int64, error) {
	args := m.Called(ctx, userID, lineup)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLineupRepo) ListByTeam(ctx context.Context, userID, teamID int64) ([]*domain.Lineup, error) {
	args := m.Called(ctx, userID, teamID)
	if l := args.Get(0); l != nil {
		return l.([]*domain.Lineup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLineupRepo) Delete(ctx context.Context, userID, lineupID int64) (string, error) {
	args := m.Called(ctx, userID, lineupID)
	return args.String(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockLeagues struct{ mock.Mock }

func (m *mockLeagues) CheckLeague(ctx context.Context, info domain.LeagueInfo) (bool, error) {
	args := m.Called(ctx, info)
	return args.Bool(0), args.Error(1)
}

func (m *mockLeagues) GetRoster(ctx context.Context, info domain.LeagueInfo) (json.RawMessage, error) {
	args := m.Called(ctx, info)
	if r := args.Get(0); r != nil {
		return r.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) GenerateLineup(ctx context.Context, info domain.LeagueInfo, params domain.GenerateLineupParams) (json.RawMessage, error) {
	args := m.Called(ctx, info, params)
	if r := args.Get(0); r != nil {
		return r.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// plainHasher хранит пароль с префиксом, чтобы тесты не зависели от bcrypt
type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (plainHasher) Verify(plaintext, hash string) bool { return hash == "hashed:"+plaintext }

type staticTokens struct{}

func (staticTokens) IssueToken(userID int64, email string) (string, error) {
	return "token-for-" + email, nil
}
