package model

import "time"

// TokenPurpose is the closed set of flows a verification code can belong to.
type TokenPurpose string

const (
	PurposeResetPassword     TokenPurpose = "reset_password"
	PurposeEmailVerification TokenPurpose = "email_verification"
	PurposePhoneVerification TokenPurpose = "phone_verification"
)

// Valid reports whether the purpose is one of the known flows.
func (p TokenPurpose) Valid() bool {
	switch p {
	case PurposeResetPassword, PurposeEmailVerification, PurposePhoneVerification:
		return true
	}
	return false
}

// UserToken is a short-lived single-use verification code. At most one live
// row exists per (user, purpose).
type UserToken struct {
	ID        int64
	UserID    int64
	Code      string
	Purpose   TokenPurpose
	ExpiryMin int
	CreatedOn time.Time
}

// ExpiresAt computes the instant after which the token is invalid.
func (t *UserToken) ExpiresAt() time.Time {
	return t.CreatedOn.Add(time.Duration(t.ExpiryMin) * time.Minute)
}

type VerifyUserTokenRequest struct {
	Username string `json:"username" binding:"required"`
	Token    string `json:"token" binding:"required"`
	Purpose  string `json:"purpose" binding:"required"`
}

type VerifyUserTokenResponse struct {
	Valid bool `json:"valid"`
}
