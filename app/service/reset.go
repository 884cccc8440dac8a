package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/tourcolombia/booking/app/dto"
	"github.com/tourcolombia/booking/app/entity"
	"github.com/tourcolombia/booking/app/repository"
	"github.com/tourcolombia/booking/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidResetToken = errors.New("invalid reset token")
	ErrResetTokenUsed    = errors.New("reset token has already been used")
	ErrResetTokenExpired = errors.New("reset token has expired")
)

const resetTokenBytes = 32

// Mailer delivers a password reset link. Implementations must not be relied on
// for correctness; delivery failures are logged and swallowed.
type Mailer interface {
	SendPasswordReset(toEmail, link string) error
}

type ResetService struct {
	db        *sql.DB
	userRepo  *repository.UserRepository
	tokenRepo *repository.PasswordResetTokenRepository
	mailer    Mailer
	cfg       *config.Config
}

func NewResetService(
	db *sql.DB,
	userRepo *repository.UserRepository,
	tokenRepo *repository.PasswordResetTokenRepository,
	mailer Mailer,
	cfg *config.Config,
) *ResetService {
	return &ResetService{
		db:        db,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		cfg:       cfg,
	}
}

// RequestReset issues a fresh reset token for the account behind email.
// Previously issued tokens stay valid until they expire or are consumed; the
// token table doubles as an audit trail, so nothing is invalidated here.
// Returns ErrUserNotFound for unknown emails; the controller hides that from
// the client behind a generic success message.
func (s *ResetService) RequestReset(ctx context.Context, email string) (*dto.ResetRequestResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	tokenString, err := generateResetToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	token := &entity.PasswordResetToken{
		UserID:    user.ID,
		Token:     tokenString,
		ExpiresAt: now.Add(s.cfg.ResetTokenTTL),
		Used:      false,
		CreatedAt: now,
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		link := fmt.Sprintf("%s?token=%s", s.cfg.ResetLinkBase, tokenString)
		if err := s.mailer.SendPasswordReset(user.Email, link); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Warn("Failed to send reset email")
		}
	}

	return &dto.ResetRequestResult{Token: tokenString}, nil
}

// ConsumeReset burns a token and updates the owner's password. The password
// update and the used flag are committed together; a consumed token can never
// authorize a second password change.
func (s *ResetService) ConsumeReset(ctx context.Context, tokenString, newPassword string) error {
	if err := s.cfg.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	token, err := s.tokenRepo.FindByToken(ctx, tokenString)
	if err != nil {
		return err
	}
	if token == nil {
		return ErrInvalidResetToken
	}
	if token.Used {
		return ErrResetTokenUsed
	}
	if time.Now().After(token.ExpiresAt) {
		return ErrResetTokenExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.userRepo.WithTx(tx).UpdatePassword(ctx, token.UserID, string(hashedPassword)); err != nil {
		return err
	}
	if err := s.tokenRepo.WithTx(tx).MarkUsed(ctx, token.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func generateResetToken() (string, error) {
	secret := make([]byte, resetTokenBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	return hex.EncodeToString(secret), nil
}
