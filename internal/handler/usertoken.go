package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playscore/backend/internal/model"
	"github.com/playscore/backend/internal/service"
)

type UserTokenHandler struct {
	svc *service.UserTokenService
}

func NewUserTokenHandler(svc *service.UserTokenService) *UserTokenHandler {
	return &UserTokenHandler{svc: svc}
}

// Verify godoc
// @Summary Verify a user token
// @Description Non-consuming check whether a verification code is currently valid.
// @Tags user-tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.VerifyUserTokenRequest true "Username, code and purpose"
// @Success 200 {object} model.VerifyUserTokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/user-tokens/verify [post]
func (h *UserTokenHandler) Verify(c *gin.Context) {
	var req model.VerifyUserTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	valid, err := h.svc.Verify(c.Request.Context(), req.Username, req.Token, model.TokenPurpose(req.Purpose))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.VerifyUserTokenResponse{Valid: valid})
}
