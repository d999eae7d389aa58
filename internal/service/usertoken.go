package service

import (
	"context"
	"fmt"
	"time"

	"github.com/playscore/backend/internal/db"
	"github.com/playscore/backend/internal/model"
	"github.com/playscore/backend/internal/password"
)

type userTokenRepo interface {
	ReplaceUserToken(ctx context.Context, token *model.UserToken) (*model.UserToken, error)
	GetUserToken(ctx context.Context, userID int64, purpose model.TokenPurpose) (*model.UserToken, error)
	ConsumeUserToken(ctx context.Context, userID int64, purpose model.TokenPurpose, code string) (bool, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// UserTokenService manages short-lived single-use verification codes, one
// live code per (user, purpose).
type UserTokenService struct {
	repo userTokenRepo

	now func() time.Time
}

func NewUserTokenService(repo userTokenRepo) *UserTokenService {
	return &UserTokenService{
		repo: repo,
		now:  time.Now,
	}
}

// Issue creates a fresh code for (user, purpose), superseding any live one.
func (s *UserTokenService) Issue(ctx context.Context, userID int64, length int, alphabet string, expiryMin int, purpose model.TokenPurpose) (*model.UserToken, error) {
	if !purpose.Valid() {
		return nil, fmt.Errorf("%w: unknown token purpose %q", ErrInvalidInput, purpose)
	}
	if expiryMin <= 0 {
		return nil, fmt.Errorf("%w: expiry in minutes must be greater than 0", ErrInvalidInput)
	}

	code, err := password.GenerateCode(length, alphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.repo.ReplaceUserToken(ctx, &model.UserToken{
		UserID:    userID,
		Code:      code,
		Purpose:   purpose,
		ExpiryMin: expiryMin,
	})
}

// Consume validates the code and deletes it atomically on match. A missing
// token, an expired token and a wrong code all surface as ErrBadRequest; a
// wrong code leaves the token in place so the user can retry before expiry.
func (s *UserTokenService) Consume(ctx context.Context, userID int64, code string, purpose model.TokenPurpose) error {
	valid, err := s.validate(ctx, userID, code, purpose)
	if err != nil {
		return err
	}
	if !valid {
		return ErrBadRequest
	}

	consumed, err := s.repo.ConsumeUserToken(ctx, userID, purpose, code)
	if err != nil {
		return err
	}
	if !consumed {
		// superseded or consumed by a concurrent request
		return ErrBadRequest
	}
	return nil
}

// Verify is the non-consuming check exposed over the API: it resolves the
// username and reports whether the code currently matches.
func (s *UserTokenService) Verify(ctx context.Context, username, code string, purpose model.TokenPurpose) (bool, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return false, ErrBadRequest
		}
		return false, err
	}

	return s.validate(ctx, user.ID, code, purpose)
}

func (s *UserTokenService) validate(ctx context.Context, userID int64, code string, purpose model.TokenPurpose) (bool, error) {
	if !purpose.Valid() {
		return false, fmt.Errorf("%w: unknown token purpose %q", ErrInvalidInput, purpose)
	}

	token, err := s.repo.GetUserToken(ctx, userID, purpose)
	if err != nil {
		if db.IsNoRows(err) {
			return false, ErrBadRequest
		}
		return false, err
	}

	if s.now().After(token.ExpiresAt()) {
		return false, ErrBadRequest
	}

	return token.Code == code, nil
}
