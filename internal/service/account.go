package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aidar/lineup-service/internal/domain"
	"github.com/aidar/lineup-service/internal/repository"
)

// LoginResult is the outcome of a login attempt
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Success     bool   `json:"success"`
}

// AccountService handles business logic for user accounts
type AccountService struct {
	tx       repository.Transactor
	userRepo repository.UserRepository
	teamRepo repository.TeamRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   *slog.Logger

	// dummyHash is verified against for unknown emails so that login takes
	// the same hashing time whether or not the account exists
	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService creates a new AccountService
func NewAccountService(
	tx repository.Transactor,
	userRepo repository.UserRepository,
	teamRepo repository.TeamRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		tx:       tx,
		userRepo: userRepo,
		teamRepo: teamRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login checks credentials and issues a token. Unknown email and wrong password
// produce the same empty result
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.unknownUserHash())
			return &LoginResult{}, nil
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return &LoginResult{}, nil
	}

	token, err := s.tokens.IssueToken(user.UserID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{AccessToken: token, Success: true}, nil
}

func (s *AccountService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("unknown-user-placeholder")
		if err != nil {
			s.logger.Error("Failed to prepare placeholder password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// CreateUser inserts a user unless the email is already registered.
// created is false when the account already exists; no error is returned then
func (s *AccountService) CreateUser(ctx context.Context, email, passwordHash string) (userID int64, created bool, err error) {
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		exists, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrUserExists
		}

		userID, err = s.userRepo.Create(ctx, email, passwordHash)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return 0, false, nil
		}
		return 0, false, err
	}

	return userID, true, nil
}

// IssueToken issues an access token for a freshly created account
func (s *AccountService) IssueToken(userID int64, email string) (string, error) {
	return s.tokens.IssueToken(userID, email)
}

// Update changes email and/or password; nil or empty fields are left untouched.
// Both changes are applied atomically
func (s *AccountService) Update(ctx context.Context, userID int64, email, password *string) (bool, error) {
	var passwordHash string
	if password != nil && *password != "" {
		hash, err := s.hasher.Hash(*password)
		if err != nil {
			return false, err
		}
		passwordHash = hash
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if email != nil && *email != "" {
			if err := s.userRepo.UpdateEmail(ctx, userID, *email); err != nil {
				return err
			}
		}
		if passwordHash != "" {
			if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) || errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Info("User update rejected", "user_id", userID, "reason", err)
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Delete removes the user and all owned teams after re-checking the password.
// Lineups go with their teams through the foreign key cascade
func (s *AccountService) Delete(ctx context.Context, userID int64, password string) (bool, error) {
	var (
		deleted bool
		teams   int64
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil
			}
			return err
		}

		if !s.hasher.Verify(password, user.PasswordHash) {
			return nil
		}

		teams, err = s.teamRepo.DeleteByUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.userRepo.Delete(ctx, userID); err != nil {
			return err
		}

		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("User deleted", "user_id", userID, "teams_removed", teams)
	}
	return deleted, nil
}
