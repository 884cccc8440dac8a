package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/tourcolombia/booking/app/dto"
	"github.com/tourcolombia/booking/app/entity"
	"github.com/tourcolombia/booking/app/repository"
	"github.com/tourcolombia/booking/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists        = errors.New("email is already registered")
	ErrNationalIDExists   = errors.New("national id is already registered")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password does not meet policy requirements")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidAccessToken = errors.New("invalid or expired access token")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Claims struct {
	UserID uint64 `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AccountService struct {
	db              *sql.DB
	userRepo        *repository.UserRepository
	reservationRepo *repository.ReservationRepository
	tokenRepo       *repository.PasswordResetTokenRepository
	cfg             *config.Config
}

func NewAccountService(
	db *sql.DB,
	userRepo *repository.UserRepository,
	reservationRepo *repository.ReservationRepository,
	tokenRepo *repository.PasswordResetTokenRepository,
	cfg *config.Config,
) *AccountService {
	return &AccountService{
		db:              db,
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
		tokenRepo:       tokenRepo,
		cfg:             cfg,
	}
}

func (s *AccountService) Register(ctx context.Context, firstName, lastName, nationalID, email, password string) (*entity.User, error) {
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if err := s.cfg.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	existing, err = s.userRepo.FindByNationalID(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNationalIDExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName:    firstName,
		LastName:     lastName,
		NationalID:   nationalID,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate deliberately reports the same error for an unknown email and a
// wrong password so callers cannot probe which accounts exist.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*dto.LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResult{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.cfg.JWTAccessTokenTTL.Seconds()),
	}, nil
}

func (s *AccountService) GetProfile(ctx context.Context, id uint64) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, id uint64, firstName, lastName, nationalID, email string) (*entity.User, error) {
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	byEmail, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if byEmail != nil && byEmail.ID != id {
		return nil, ErrEmailExists
	}

	byNationalID, err := s.userRepo.FindByNationalID(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	if byNationalID != nil && byNationalID.ID != id {
		return nil, ErrNationalIDExists
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.NationalID = nationalID
	user.Email = email

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user with all of their reservations and reset
// tokens in a single transaction. The child rows must go first; both tables
// hold foreign keys against users.
func (s *AccountService) DeleteAccount(ctx context.Context, id uint64) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.reservationRepo.WithTx(tx).DeleteByUserID(ctx, id); err != nil {
		return err
	}
	if err := s.tokenRepo.WithTx(tx).DeleteByUserID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.WithTx(tx).Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *AccountService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidAccessToken
	}

	return claims, nil
}

func (s *AccountService) generateAccessToken(user *entity.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWTAccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
