package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	// Expires overrides the configured access-token lifetime, in minutes.
	Expires int `json:"expires"`
}

type ExternalLoginRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	IDToken     string `json:"idToken"`
	Expires     int    `json:"expires"`
}

type ForgotPasswordRequest struct {
	Username string `json:"username" binding:"required"`
}

type ResetPasswordRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
