package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/playscore/backend/internal/model"
)

const (
	authUserKey   = "auth_user"
	requestIDKey  = "request_id"
	requestIDName = "X-Request-ID"
)

type identityResolver interface {
	ResolveBearer(ctx context.Context, token string) (*model.AuthUser, error)
}

// AuthMiddleware is the bearer gate. Each check is terminal: missing header,
// a header that does not split into exactly a scheme and a credential, a
// scheme other than bearer, an invalid token, and a subject that no longer
// resolves to a user all reject with 401 before the handler runs.
func AuthMiddleware(resolver identityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			rejectUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			rejectUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		if !strings.EqualFold(parts[0], "bearer") {
			rejectUnauthorized(c, "Invalid authentication scheme")
			return
		}

		user, err := resolver.ResolveBearer(c.Request.Context(), parts[1])
		if err != nil {
			rejectUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

func rejectUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, model.ErrorResponse{
		Code:    "unauthorized",
		Message: message,
	})
	c.Abort()
}

// GetAuthUser returns the identity the gate attached to an admitted request.
func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

// RequestLogMiddleware tags each request with an id and logs its outcome.
func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDName, requestID)

		start := time.Now()
		c.Next()

		log.Printf("%s %s %s -> %d (%s)",
			requestID, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
