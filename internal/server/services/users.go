// Package services implements the server-side business logic on top of the
// repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/eventkeeper/eventkeeper/internal/common"
	"github.com/eventkeeper/eventkeeper/internal/dbx"
	"github.com/eventkeeper/eventkeeper/internal/server/auth"
	"github.com/eventkeeper/eventkeeper/internal/server/config"
	"github.com/eventkeeper/eventkeeper/internal/server/models"
	"github.com/eventkeeper/eventkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	secretKey                    string
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		secretKey:                    cfg.SecretKey,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// SignUp validates the credentials, creates the account and issues the first
// token pair. Validation failures surface as common sentinel errors so the
// transport layer can translate them into the client-facing codes.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {

	if !emailRegexp.MatchString(email) {
		return nil, nil, common.ErrInvalidEmail
	}

	if len(password) < minPasswordLength {
		return nil, nil, common.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailExists) {
			return nil, nil, common.ErrEmailExists
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	tokenPair, err := s.generateTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, tokenPair, nil
}

// Login verifies the password and issues a fresh token pair. Unknown
// accounts, disabled accounts and bad passwords each surface as their own
// sentinel so the client can show the matching message.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, common.ErrorInternal
	}

	if user.Disabled {
		return nil, nil, common.ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, nil, common.ErrWrongPassword
	}

	tokenPair, err := s.generateTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, tokenPair, nil
}

// RefreshToken rotates the refresh token: the presented token is deleted and
// a new pair is issued inside one transaction, so a token can be redeemed at
// most once.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {

	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRefreshTokenExpired
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var tokenPair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		accessToken, err := auth.GenerateToken(token.UserID, s.secretKey, s.accessTokenValidityDuration)
		if err != nil {
			return fmt.Errorf("error generating access token: %w", err)
		}

		newRefreshToken, err := common.MakeRandHexString(32)
		if err != nil {
			return fmt.Errorf("error generating refresh token: %w", err)
		}

		if err := s.repomanager.RefreshTokens(tx).Create(ctx, token.UserID, newRefreshToken, s.refreshTokenValidityDuration); err != nil {
			return fmt.Errorf("error storing refresh token: %w", err)
		}

		tokenPair = &TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// Logout invalidates the presented refresh token. Unknown tokens are not an
// error; sign-out is idempotent.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// UpdateProfile changes the identity-level display name and photo URL. Nil
// fields are left untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, displayName, photoURL *string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if err := repo.UpdateProfile(ctx, userID, displayName, photoURL); err != nil {
		return nil, err
	}

	return repo.GetByID(ctx, userID)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, s.secretKey, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	err = s.repomanager.RefreshTokens(s.db).Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
