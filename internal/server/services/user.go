// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login (issuing JWTs), account
// lookup and password changes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/auth"
	"github.com/dmitrijs2005/taskvault/internal/server/config"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
)

// RegisterParams carries the fields of a registration request.
type RegisterParams struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Role        string
	PhoneNumber string
}

// UserService provides account-related operations:
// - Register: create accounts
// - Login: verify credentials and mint a token
// - Get: load the calling account
// - ChangePassword: verify the old password and store a new hash
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new active account with a bcrypt-hashed password.
// Validation runs before any store mutation.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	if params.Username == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if params.Email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if params.Password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	role := params.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrValidation, params.Role)
	}

	hashed, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Email:          params.Email,
		Username:       params.Username,
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		HashedPassword: hashed,
		IsActive:       true,
		Role:           role,
	}
	if params.PhoneNumber != "" {
		user.PhoneNumber = &params.PhoneNumber
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the provided password against the stored hash and, on
// success, returns a signed access token. An unknown username and a wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}
	if !auth.CheckPassword(password, user.HashedPassword) {
		return "", common.ErrorUnauthorized
	}
	token, err := auth.GenerateToken(user.ID, user.Username, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Get returns the calling identity's account row.
func (s *UserService) Get(ctx context.Context, identity auth.Identity) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetByID(ctx, identity.UserID)
}

// ChangePassword verifies oldPassword against the stored hash and persists
// a hash of newPassword. A wrong old password yields ErrorUnauthorized and
// leaves the account untouched.
func (s *UserService) ChangePassword(ctx context.Context, identity auth.Identity, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(oldPassword, user.HashedPassword) {
		return common.ErrorUnauthorized
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}
	return repo.UpdatePassword(ctx, user.ID, hashed)
}
