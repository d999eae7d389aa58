package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/playscore/backend/internal/config"
	"github.com/playscore/backend/internal/db"
	"github.com/playscore/backend/internal/model"
	"github.com/playscore/backend/internal/password"
)

const minPasswordLength = 8

type userRepo interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) (*model.User, error)
	SetUserAdminStatus(ctx context.Context, userID int64, isAdmin bool) (*model.User, error)
	SetUserAvatar(ctx context.Context, userID int64, avatar int) (*model.User, error)
	SetSuperAdmin(ctx context.Context, userID int64) (*model.User, error)
}

type UserService struct {
	repo userRepo
}

func NewUserService(repo userRepo) *UserService {
	return &UserService{repo: repo}
}

// Register creates a user with freshly derived credentials. The email doubles
// as the username.
func (s *UserService) Register(ctx context.Context, req model.UserCreateRequest) (*model.User, error) {
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, salt, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:     req.Email,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		PasswordSalt: salt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// Get returns a user by id. Non-admins may only fetch themselves.
func (s *UserService) Get(ctx context.Context, id int64, current *model.AuthUser) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !current.IsAdmin && current.ID != user.ID {
		return nil, ErrForbidden
	}
	return user, nil
}

// List returns all users; admin only.
func (s *UserService) List(ctx context.Context, current *model.AuthUser) ([]*model.User, error) {
	if !current.IsAdmin {
		return nil, ErrForbidden
	}
	return s.repo.ListUsers(ctx)
}

// Update rewrites a user's profile and credentials. Only the user themselves
// may update, and super admin accounts are immutable through this path.
func (s *UserService) Update(ctx context.Context, id int64, current *model.AuthUser, req model.UserUpdateRequest) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if user.IsStaff {
		return nil, fmt.Errorf("%w: cannot modify super admin user", ErrBadRequest)
	}
	if user.ID != current.ID {
		return nil, ErrForbidden
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if existing, err := s.repo.GetUserByUsername(ctx, req.Email); err == nil && existing.ID != user.ID {
		return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, req.Email)
	} else if err != nil && !db.IsNoRows(err) {
		return nil, err
	}

	hash, salt, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user.Username = req.Email
	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PasswordHash = hash
	user.PasswordSalt = salt

	return s.repo.UpdateUser(ctx, user)
}

// ChangeAdminStatus toggles the admin flag; staff only, and staff accounts
// themselves cannot be demoted.
func (s *UserService) ChangeAdminStatus(ctx context.Context, id int64, current *model.AuthUser, isAdmin bool) (*model.User, error) {
	if !current.IsStaff {
		return nil, ErrForbidden
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if user.IsStaff {
		return nil, fmt.Errorf("%w: cannot modify admin status of super admin user", ErrBadRequest)
	}

	return s.repo.SetUserAdminStatus(ctx, id, isAdmin)
}

func (s *UserService) ChangeAvatar(ctx context.Context, current *model.AuthUser, avatar int) (*model.User, error) {
	user, err := s.repo.SetUserAvatar(ctx, current.ID, avatar)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin seeds the super admin account on startup. Idempotent.
func (s *UserService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if strings.TrimSpace(cfg.Email) == "" || strings.TrimSpace(cfg.Password) == "" {
		return fmt.Errorf("%w: ADMIN_EMAIL/ADMIN_PASSWORD are required", ErrMisconfigured)
	}

	if _, err := s.repo.GetUserByUsername(ctx, cfg.Email); err == nil {
		return nil
	} else if !db.IsNoRows(err) {
		return err
	}

	admin, err := s.Register(ctx, model.UserCreateRequest{
		Email:     cfg.Email,
		FirstName: cfg.FirstName,
		LastName:  cfg.LastName,
		Password:  cfg.Password,
	})
	if err != nil {
		return err
	}

	_, err = s.repo.SetSuperAdmin(ctx, admin.ID)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
