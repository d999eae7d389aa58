package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/playscore/backend/internal/auth"
	"github.com/playscore/backend/internal/config"
	"github.com/playscore/backend/internal/db"
	"github.com/playscore/backend/internal/model"
	"github.com/playscore/backend/internal/password"
)

// authUserRepo is the slice of user storage the authenticator needs.
type authUserRepo interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, hash, salt []byte) error
}

type resetMailer interface {
	SendPasswordReset(ctx context.Context, to, code string) error
}

// AuthService answers "do these credentials identify a valid user" and runs
// the login, social-login and password-recovery flows.
type AuthService struct {
	repo     authUserRepo
	tokens   *UserTokenService
	codec    *auth.Codec
	external *auth.ExternalVerifier
	mailer   resetMailer

	resetCodeLength int
	resetCodeExpiry int
}

func NewAuthService(repo authUserRepo, tokens *UserTokenService, codec *auth.Codec, external *auth.ExternalVerifier, mailer resetMailer, cfg config.TokenConfig) (*AuthService, error) {
	codeLength, err := strconv.Atoi(cfg.ResetCodeLength)
	if err != nil || codeLength <= 0 {
		return nil, fmt.Errorf("%w: invalid RESET_CODE_LENGTH", ErrMisconfigured)
	}

	codeExpiry, err := strconv.Atoi(cfg.ResetCodeExpiryMin)
	if err != nil || codeExpiry <= 0 {
		return nil, fmt.Errorf("%w: invalid RESET_CODE_EXPIRE_MINUTES", ErrMisconfigured)
	}

	return &AuthService{
		repo:            repo,
		tokens:          tokens,
		codec:           codec,
		external:        external,
		mailer:          mailer,
		resetCodeLength: codeLength,
		resetCodeExpiry: codeExpiry,
	}, nil
}

// Authenticate reports whether the credentials identify a valid user. An
// unknown username and a wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, pass string) bool {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if !db.IsNoRows(err) {
			log.Printf("auth: user lookup failed: %v", err)
		}
		return false
	}

	return password.Verify(pass, user.PasswordHash, user.PasswordSalt)
}

// Login issues an access token for valid credentials. expiresMin overrides
// the configured token lifetime when positive.
func (s *AuthService) Login(ctx context.Context, username, pass string, expiresMin int) (*model.TokenResponse, error) {
	if !s.Authenticate(ctx, username, pass) {
		return nil, ErrUnauthorized
	}

	return s.issueToken(username, expiresMin)
}

// ExternalLogin signs in a social-provider identity, provisioning the user on
// first sight. With SSO configured the provider ID token is verified and its
// email claim is the identity; otherwise the submitted claim is trusted.
func (s *AuthService) ExternalLogin(ctx context.Context, req model.ExternalLoginRequest) (*model.TokenResponse, error) {
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.PhoneNumber)

	if (email == "") == (phone == "") {
		return nil, fmt.Errorf("%w: exactly one of email and phone number must be set", ErrInvalidInput)
	}

	if s.external != nil {
		verified, err := s.external.VerifyEmail(ctx, req.IDToken)
		if err != nil {
			return nil, ErrUnauthorized
		}
		if email == "" || verified != email {
			return nil, ErrUnauthorized
		}
	}

	username := email
	if username == "" {
		username = phone
	}

	if _, err := s.repo.GetUserByUsername(ctx, username); err != nil {
		if !db.IsNoRows(err) {
			return nil, err
		}
		_, err = s.repo.CreateUser(ctx, &model.User{
			Username:    username,
			Email:       email,
			PhoneNumber: phone,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
		})
		if err != nil {
			return nil, err
		}
	}

	return s.issueToken(username, req.Expires)
}

// ForgotPassword issues a single-use reset code and mails it to the user.
func (s *AuthService) ForgotPassword(ctx context.Context, username string) error {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	token, err := s.tokens.Issue(ctx, user.ID, s.resetCodeLength, password.DefaultAlphabet, s.resetCodeExpiry, model.PurposeResetPassword)
	if err != nil {
		return err
	}

	return s.mailer.SendPasswordReset(ctx, user.Email, token.Code)
}

// ResetPassword consumes a live reset code and rotates the credentials. Hash
// and salt are replaced together; the code is unusable afterwards.
func (s *AuthService) ResetPassword(ctx context.Context, username, code, newPassword string) (*model.User, error) {
	if strings.TrimSpace(newPassword) == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			// indistinguishable from a wrong code
			return nil, ErrBadRequest
		}
		return nil, err
	}

	if err := s.tokens.Consume(ctx, user.ID, code, model.PurposeResetPassword); err != nil {
		return nil, err
	}

	hash, salt, err := password.Hash(newPassword)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateUserPassword(ctx, user.ID, hash, salt); err != nil {
		return nil, err
	}

	user.PasswordHash = hash
	user.PasswordSalt = salt
	return user, nil
}

// ResolveBearer validates an access token and resolves its subject to an
// existing user. The returned identity is derived once per request and
// passed downstream by the gate.
func (s *AuthService) ResolveBearer(ctx context.Context, token string) (*model.AuthUser, error) {
	subject, err := s.codec.Decode(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.GetUserByUsername(ctx, subject)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return &model.AuthUser{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		IsStaff:  user.IsStaff,
	}, nil
}

func (s *AuthService) issueToken(subject string, expiresMin int) (*model.TokenResponse, error) {
	var ttl time.Duration
	if expiresMin > 0 {
		ttl = time.Duration(expiresMin) * time.Minute
	}

	signed, err := s.codec.Issue(subject, ttl)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
	}, nil
}
