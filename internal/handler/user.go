package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playscore/backend/internal/model"
	"github.com/playscore/backend/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.UserCreateRequest true "New account details"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req model.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.svc.Get(c.Request.Context(), id, GetAuthUser(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

// List godoc
// @Summary List users
// @Description Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context(), GetAuthUser(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	res := make([]model.UserResponse, 0, len(users))
	for _, user := range users {
		res = append(res, model.NewUserResponse(user))
	}
	c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary Update a user
// @Description Users may only update themselves.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Param request body model.UserUpdateRequest true "Updated account details"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	user, err := h.svc.Update(c.Request.Context(), id, GetAuthUser(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

// ChangeAdminStatus godoc
// @Summary Update a user's admin flag
// @Description Super admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Param request body model.UserAdminStatusRequest true "Admin flag"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/{id}/admin-status [put]
func (h *UserHandler) ChangeAdminStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UserAdminStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	user, err := h.svc.ChangeAdminStatus(c.Request.Context(), id, GetAuthUser(c), req.IsAdmin)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

// ChangeAvatar godoc
// @Summary Update the caller's avatar
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UserAvatarRequest true "Avatar id"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/users/avatar [put]
func (h *UserHandler) ChangeAvatar(c *gin.Context) {
	var req model.UserAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	user, err := h.svc.ChangeAvatar(c.Request.Context(), GetAuthUser(c), req.Avatar)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(user))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Code: "invalid_input", Message: "Invalid id"})
		return 0, false
	}
	return id, true
}
