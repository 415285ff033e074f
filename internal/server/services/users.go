// Package services implements the business rules of the CMS on top of the
// repositories. Services receive explicit context and caller identity; none
// of them reads ambient request state.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/server/auth"
	"github.com/chati-cms/chati/internal/server/config"
	"github.com/chati-cms/chati/internal/server/models"
	"github.com/chati-cms/chati/internal/server/repositories/repomanager"
)

// LoginResult is what a successful login or registration yields: the account
// and a freshly minted token for the session cookie.
type LoginResult struct {
	User  *models.User
	Token string
}

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

func (s *UserService) issueToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Email, user.Role, s.jwtSecret, s.tokenValidityDuration)
}

// Register creates an account and logs it in. The role defaults to EDITOR
// and the account starts ACTIVE. A duplicate email yields ErrConflict.
func (s *UserService) Register(ctx context.Context, email, password, name string, role models.Role) (*LoginResult, error) {

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}
	if role == "" {
		role = models.RoleEditor
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", common.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.Create(ctx, &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserStatusActive,
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, common.ErrInternal
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Login verifies credentials and mints a token. Unknown email and wrong
// password are indistinguishable to the caller; a disabled account is
// reported separately.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrUnauthorized
	}

	if user.Status != models.UserStatusActive {
		return nil, common.ErrAccountDisabled
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &LoginResult{User: user, Token: token}, nil
}

// CurrentUser resolves the account behind a verified claim, re-checking that
// it still exists and is still active.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	if user.Status != models.UserStatusActive {
		return nil, common.ErrAccountDisabled
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// Create adds an account without logging it in (admin user management).
func (s *UserService) Create(ctx context.Context, email, password, name string, role models.Role) (*models.User, error) {
	result, err := s.Register(ctx, email, password, name, role)
	if err != nil {
		return nil, err
	}
	return result.User, nil
}

// Update modifies name, role and status. The password changes only when a
// new one is supplied; the old hash is never read back.
func (s *UserService) Update(ctx context.Context, id string, name *string, role *models.Role, status *models.UserStatus, password *string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if role != nil {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role", common.ErrValidation)
		}
		user.Role = *role
	}
	if status != nil {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status", common.ErrValidation)
		}
		user.Status = *status
	}
	if password != nil {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return nil, common.ErrInternal
		}
		user.PasswordHash = hash
	}

	return repo.Update(ctx, user)
}

// Delete removes an account. A caller deleting their own identity is
// rejected regardless of role.
func (s *UserService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return fmt.Errorf("%w: you cannot delete your own account", common.ErrForbidden)
	}
	return s.repomanager.Users(s.db).Delete(ctx, id)
}
