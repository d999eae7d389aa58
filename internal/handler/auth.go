package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playscore/backend/internal/model"
	"github.com/playscore/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Login
// @Description Issues an access token for valid credentials.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Username and password"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password, req.Expires)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// ExternalLogin godoc
// @Summary Social login
// @Description Issues an access token for a social-provider identity, creating the user on first login.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.ExternalLoginRequest true "Provider identity claim"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/external-login [post]
func (h *AuthHandler) ExternalLogin(c *gin.Context) {
	var req model.ExternalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	token, err := h.svc.ExternalLogin(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// ForgotPassword godoc
// @Summary Request a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.ForgotPasswordRequest true "Account username"
// @Success 204
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Username); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ResetPassword godoc
// @Summary Reset password with a verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.ResetPasswordRequest true "Username, reset code and new password"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	user, err := h.svc.ResetPassword(c.Request.Context(), req.Username, req.Token, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(user))
}
