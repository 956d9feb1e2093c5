package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/aidar/lineup-service/internal/domain"
	"github.com/aidar/lineup-service/internal/repository"
)

const verificationSubject = "Your verification code"

// SendCodeResult is the outcome of a verification code request
type SendCodeResult struct {
	Success      bool `json:"success"`
	AlreadyInUse bool `json:"already_in_use"`
}

// CheckCodeResult is the outcome of a verification code check.
// AccessToken is set only when a new account was created
type CheckCodeResult struct {
	AccessToken   string `json:"access_token"`
	AlreadyExists bool   `json:"already_exists"`
	Success       bool   `json:"success"`
	Valid         bool   `json:"valid"`
}

// VerificationService runs the email verification signup flow
type VerificationService struct {
	tx        repository.Transactor
	verifRepo repository.VerificationRepository
	userRepo  repository.UserRepository
	accounts  *AccountService
	hasher    PasswordHasher
	mailer    Mailer
	logger    *slog.Logger
	now       func() time.Time
	newCode   func() (string, error)
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(
	tx repository.Transactor,
	verifRepo repository.VerificationRepository,
	userRepo repository.UserRepository,
	accounts *AccountService,
	hasher PasswordHasher,
	mailer Mailer,
	logger *slog.Logger,
) *VerificationService {
	return &VerificationService{
		tx:        tx,
		verifRepo: verifRepo,
		userRepo:  userRepo,
		accounts:  accounts,
		hasher:    hasher,
		mailer:    mailer,
		logger:    logger,
		now:       time.Now,
		newCode:   generateCode,
	}
}

// RequestCode issues a one-time code for email unless a live code already exists
// or the email belongs to an account. An expired record is replaced
func (s *VerificationService) RequestCode(ctx context.Context, email, password string) (*SendCodeResult, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	var (
		result *SendCodeResult
		code   string
	)
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		now := s.now()

		pending, err := s.verifRepo.GetForUpdate(ctx, email, domain.VerificationTypeEmail)
		switch {
		case err == nil:
			if pending.IsLive(now) {
				result = &SendCodeResult{Success: true, AlreadyInUse: true}
				return nil
			}
			if err := s.verifRepo.Delete(ctx, email, domain.VerificationTypeEmail); err != nil {
				return err
			}
		case !errors.Is(err, domain.ErrVerificationNotFound):
			return err
		}

		exists, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			result = &SendCodeResult{Success: false, AlreadyInUse: true}
			return nil
		}

		newCode, err := s.newCode()
		if err != nil {
			return err
		}

		err = s.verifRepo.Create(ctx, &domain.Verification{
			Email:        email,
			Code:         newCode,
			PasswordHash: passwordHash,
			IssuedAt:     now.Unix(),
			Type:         domain.VerificationTypeEmail,
		})
		if errors.Is(err, domain.ErrVerificationPending) {
			// Параллельный запрос успел выдать код первым
			result = &SendCodeResult{Success: true, AlreadyInUse: true}
			return nil
		}
		if err != nil {
			return err
		}

		code = newCode
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result != nil {
		return result, nil
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(domain.VerificationTTL/time.Minute))
	if err := s.mailer.SendEmail(email, verificationSubject, body); err != nil {
		s.logger.Error("Failed to send verification email", "email", email, "error", err)

		// Снимаем запись, чтобы пользователь мог сразу запросить код повторно
		if err := s.verifRepo.Delete(ctx, email, domain.VerificationTypeEmail); err != nil {
			s.logger.Error("Failed to drop undelivered verification", "email", email, "error", err)
		}
		return &SendCodeResult{Success: false, AlreadyInUse: false}, nil
	}

	return &SendCodeResult{Success: true, AlreadyInUse: false}, nil
}

// CheckCode validates the code for email. A matching code is consumed and the
// account created in the same transaction, so a code cannot be used twice
func (s *VerificationService) CheckCode(ctx context.Context, email, code string) (*CheckCodeResult, error) {
	var (
		result  *CheckCodeResult
		userID  int64
		created bool
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		pending, err := s.verifRepo.GetForUpdate(ctx, email, domain.VerificationTypeEmail)
		if err != nil {
			if errors.Is(err, domain.ErrVerificationNotFound) {
				result = &CheckCodeResult{Success: false, Valid: false}
				return nil
			}
			return err
		}

		if subtle.ConstantTimeCompare([]byte(pending.Code), []byte(code)) != 1 || pending.IsExpired(s.now()) {
			result = &CheckCodeResult{Success: true, Valid: false}
			return nil
		}

		if err := s.verifRepo.Delete(ctx, email, domain.VerificationTypeEmail); err != nil {
			return err
		}

		userID, created, err = s.accounts.CreateUser(ctx, email, pending.PasswordHash)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result != nil {
		return result, nil
	}

	if !created {
		return &CheckCodeResult{AlreadyExists: true, Success: true, Valid: true}, nil
	}

	token, err := s.accounts.IssueToken(userID, email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account created", "user_id", userID)
	return &CheckCodeResult{AccessToken: token, AlreadyExists: false, Success: true, Valid: true}, nil
}

// generateCode returns a random 6-digit code
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
