package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playscore/backend/internal/model"
	"github.com/playscore/backend/internal/service"
)

// writeServiceError maps service sentinels to HTTP statuses with generic
// bodies. Internal causes stay server-side.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Code: "invalid_input", Message: "Invalid input"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Code: "unauthorized", Message: "Incorrect credentials"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, model.ErrorResponse{Code: "forbidden", Message: "Operation not permitted"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Code: "not_found", Message: "Resource not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, model.ErrorResponse{Code: "conflict", Message: "Resource already exists"})
	case errors.Is(err, service.ErrBadRequest):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Code: "bad_request", Message: "Request could not be processed"})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Code: "server_error", Message: "Internal server error"})
	}
}

func writeBindError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Code: "invalid_request", Message: "Invalid request body"})
}
