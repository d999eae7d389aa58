package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playscore/backend/internal/auth"
	"github.com/playscore/backend/internal/config"
	"github.com/playscore/backend/internal/model"
)

func newTestAuthService(t *testing.T, store *fakeStore) (*AuthService, *fakeMailer, *auth.Codec) {
	t.Helper()

	codec, err := auth.NewCodec("test-secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}

	mailer := &fakeMailer{}
	svc, err := NewAuthService(store, NewUserTokenService(store), codec, nil, mailer, config.TokenConfig{
		ResetCodeLength:    "8",
		ResetCodeExpiryMin: "15",
	})
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}
	return svc, mailer, codec
}

func registerUser(t *testing.T, store *fakeStore, email, pass string) *model.User {
	t.Helper()

	user, err := NewUserService(store).Register(context.Background(), model.UserCreateRequest{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Password:  pass,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return user
}

func TestLoginScenario(t *testing.T) {
	store := newFakeStore()
	svc, _, codec := newTestAuthService(t, store)
	registerUser(t, store, "user@example.com", "Tr0ub4dor&3")
	ctx := context.Background()

	token, err := svc.Login(ctx, "user@example.com", "Tr0ub4dor&3", 0)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token.TokenType != "bearer" {
		t.Fatalf("Login() token_type = %q, want bearer", token.TokenType)
	}

	subject, err := codec.Decode(token.AccessToken)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if subject != "user@example.com" {
		t.Fatalf("Decode() subject = %q, want registered identifier", subject)
	}

	if _, err := svc.Login(ctx, "user@example.com", "wrong", 0); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Login(wrong password) error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(ctx, "ghost@example.com", "Tr0ub4dor&3", 0); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Login(unknown user) error = %v, want ErrUnauthorized", err)
	}
}

func TestAuthenticateDoesNotDistinguishCauses(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newTestAuthService(t, store)
	registerUser(t, store, "user@example.com", "password123")
	ctx := context.Background()

	if svc.Authenticate(ctx, "user@example.com", "wrong") {
		t.Error("Authenticate() = true for wrong password")
	}
	if svc.Authenticate(ctx, "ghost@example.com", "password123") {
		t.Error("Authenticate() = true for unknown user")
	}
	if !svc.Authenticate(ctx, "user@example.com", "password123") {
		t.Error("Authenticate() = false for valid credentials")
	}
}

func TestExternalLoginProvisionsUser(t *testing.T) {
	store := newFakeStore()
	svc, _, codec := newTestAuthService(t, store)
	ctx := context.Background()

	token, err := svc.ExternalLogin(ctx, model.ExternalLoginRequest{
		Email:     "social@example.com",
		FirstName: "Social",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("ExternalLogin() error = %v", err)
	}

	subject, err := codec.Decode(token.AccessToken)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if subject != "social@example.com" {
		t.Fatalf("Decode() subject = %q", subject)
	}

	user, err := store.GetUserByUsername(ctx, "social@example.com")
	if err != nil {
		t.Fatalf("expected provisioned user, got %v", err)
	}
	if len(user.PasswordHash) != 0 {
		t.Error("social user should have no stored credentials")
	}

	// second login reuses the account
	if _, err := svc.ExternalLogin(ctx, model.ExternalLoginRequest{
		Email:     "social@example.com",
		FirstName: "Social",
		LastName:  "User",
	}); err != nil {
		t.Fatalf("repeat ExternalLogin() error = %v", err)
	}
}

func TestExternalLoginClaimValidation(t *testing.T) {
	svc, _, _ := newTestAuthService(t, newFakeStore())
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.ExternalLoginRequest
	}{
		{name: "neither-email-nor-phone", req: model.ExternalLoginRequest{FirstName: "A", LastName: "B"}},
		{name: "both-email-and-phone", req: model.ExternalLoginRequest{Email: "a@b.c", PhoneNumber: "+15550100", FirstName: "A", LastName: "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ExternalLogin(ctx, tt.req); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ExternalLogin() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestForgotResetPasswordRoundTrip(t *testing.T) {
	store := newFakeStore()
	svc, mailer, _ := newTestAuthService(t, store)
	registerUser(t, store, "user@example.com", "oldpassword1")
	ctx := context.Background()

	if err := svc.ForgotPassword(ctx, "user@example.com"); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	if len(mailer.codes) != 1 || mailer.sent[0] != "user@example.com" {
		t.Fatalf("expected one reset mail to the user, got %v", mailer.sent)
	}

	code := mailer.codes[0]
	if _, err := svc.ResetPassword(ctx, "user@example.com", code, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if !svc.Authenticate(ctx, "user@example.com", "newpassword1") {
		t.Error("Authenticate() = false after password reset")
	}
	if svc.Authenticate(ctx, "user@example.com", "oldpassword1") {
		t.Error("Authenticate() = true for retired password")
	}

	// reset codes are single use
	if _, err := svc.ResetPassword(ctx, "user@example.com", code, "another1234"); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("second ResetPassword() error = %v, want ErrBadRequest", err)
	}
}

func TestForgotPasswordUnknownUser(t *testing.T) {
	svc, mailer, _ := newTestAuthService(t, newFakeStore())

	if err := svc.ForgotPassword(context.Background(), "ghost@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ForgotPassword() error = %v, want ErrNotFound", err)
	}
	if len(mailer.sent) != 0 {
		t.Error("no mail should be sent for unknown users")
	}
}

func TestResetPasswordWrongCode(t *testing.T) {
	store := newFakeStore()
	svc, mailer, _ := newTestAuthService(t, store)
	registerUser(t, store, "user@example.com", "oldpassword1")
	ctx := context.Background()

	if err := svc.ForgotPassword(ctx, "user@example.com"); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}

	if _, err := svc.ResetPassword(ctx, "user@example.com", "WRONGCODE", "newpassword1"); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("ResetPassword(wrong code) error = %v, want ErrBadRequest", err)
	}

	// the correct code survives a wrong attempt
	if _, err := svc.ResetPassword(ctx, "user@example.com", mailer.codes[0], "newpassword1"); err != nil {
		t.Fatalf("ResetPassword(correct code) error = %v", err)
	}
}

func TestResolveBearer(t *testing.T) {
	store := newFakeStore()
	svc, _, codec := newTestAuthService(t, store)
	user := registerUser(t, store, "user@example.com", "password123")
	ctx := context.Background()

	token, err := codec.Issue("user@example.com", 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	identity, err := svc.ResolveBearer(ctx, token)
	if err != nil {
		t.Fatalf("ResolveBearer() error = %v", err)
	}
	if identity.ID != user.ID || identity.Username != "user@example.com" {
		t.Fatalf("ResolveBearer() = %+v", identity)
	}

	// valid signature but the subject no longer resolves
	ghostToken, err := codec.Issue("ghost@example.com", 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := svc.ResolveBearer(ctx, ghostToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ResolveBearer(missing user) error = %v, want ErrUnauthorized", err)
	}

	if _, err := svc.ResolveBearer(ctx, "garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ResolveBearer(garbage) error = %v, want ErrUnauthorized", err)
	}
}
