// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login and mints session JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/filevault/internal/common"
	"github.com/dmitrijs2005/filevault/internal/server/auth"
	"github.com/dmitrijs2005/filevault/internal/server/config"
	"github.com/dmitrijs2005/filevault/internal/server/models"
	"github.com/dmitrijs2005/filevault/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create a user and mint a session token
// - Login: verify credentials and mint a session token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with a bcrypt password digest and returns the
// user together with a fresh session token. Empty fields yield
// common.ErrorValidation; a taken username or email yields
// common.ErrorAlreadyExists (both the pre-check and the database's unique
// constraints report it, so a concurrent duplicate never turns into a 500).
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)

	taken, err := repo.Exists(ctx, username, email)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	if taken {
		return nil, "", common.ErrorAlreadyExists
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{Username: username, Email: email, PasswordHash: digest}
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", common.ErrorInternal
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the password for the user matching login (username or
// email) and returns the user with a fresh session token. An unknown user
// and a wrong password are indistinguishable: both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	if login == "" || password == "" {
		return nil, "", common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

func (s *UserService) generateToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidityDuration)
}
