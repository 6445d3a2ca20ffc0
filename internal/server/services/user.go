// Package services contains the application services: sign-up/sign-in
// orchestration and ownership-gated bookmark access. Repositories do the
// storage work, the HTTP layer does the status mapping; everything with an
// actual invariant lives here.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/asemenov-dev/bookmarkd/internal/common"
	"github.com/asemenov-dev/bookmarkd/internal/server/auth"
	"github.com/asemenov-dev/bookmarkd/internal/server/config"
	"github.com/asemenov-dev/bookmarkd/internal/server/models"
	"github.com/asemenov-dev/bookmarkd/internal/server/repositories/repomanager"
)

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// SignUp registers a new identity and returns a token for it. The lookup is a
// fast-path duplicate check only; the users_email_key constraint is what
// actually guarantees uniqueness under concurrent sign-ups, and a constraint
// violation is reported as the same ErrorUserAlreadyExists.
func (s *UserService) SignUp(ctx context.Context, email, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return "", common.ErrorUserAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error searching user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicate) {
			return "", common.ErrorUserAlreadyExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.generateToken(user)
}

// SignIn verifies the credentials and returns a token. An unknown email and a
// wrong password both come back as ErrorInvalidCredentials.
func (s *UserService) SignIn(ctx context.Context, email, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return "", common.ErrorInvalidCredentials
	}

	return s.generateToken(user)
}

// GetByID resolves a token subject to its user record.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByID(ctx, id)
}

// ProfileUpdate carries the optional profile fields of a PATCH; nil means
// "leave unchanged". The password hash is not reachable from this path.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UpdateProfile applies the non-nil fields of upd to the user's record and
// returns the updated record.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		// the subject was deleted after the middleware resolved it
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthenticated
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}

	user, err = repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicate) {
			return nil, common.ErrorUserAlreadyExists
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return user, nil
}

func (s *UserService) generateToken(user *models.User) (string, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
