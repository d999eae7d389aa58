package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/playscore/backend/internal/service"
)

// NewRouter assembles the full route table. Protected groups sit behind the
// bearer gate.
func NewRouter(authSvc *service.AuthService, userSvc *service.UserService, tokenSvc *service.UserTokenService, gameSvc *service.GameService, allowedOrigins string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogMiddleware())
	if allowedOrigins != "" {
		router.Use(CORSMiddleware(strings.Split(allowedOrigins, ",")))
	}

	router.GET("/", Root)
	router.GET("/ping", Ping)
	router.GET("/swagger/v1/swagger.json", OpenAPIDoc)

	authHandler := NewAuthHandler(authSvc)
	userHandler := NewUserHandler(userSvc)
	tokenHandler := NewUserTokenHandler(tokenSvc)
	gameHandler := NewGameHandler(gameSvc)

	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/external-login", authHandler.ExternalLogin)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	api.POST("/users", userHandler.Register)

	protected := api.Group("")
	protected.Use(AuthMiddleware(authSvc))
	{
		protected.GET("/users", userHandler.List)
		protected.GET("/users/:id", userHandler.Get)
		protected.PUT("/users/:id", userHandler.Update)
		protected.PUT("/users/:id/admin-status", userHandler.ChangeAdminStatus)
		protected.PUT("/users/avatar", userHandler.ChangeAvatar)

		protected.POST("/user-tokens/verify", tokenHandler.Verify)

		protected.POST("/games", gameHandler.Submit)
		protected.GET("/games", gameHandler.List)
		protected.GET("/games/:id", gameHandler.Get)
		protected.GET("/games/leaderboard/daily", gameHandler.DailyLeaderboard)
		protected.GET("/games/leaderboard/weekly", gameHandler.WeeklyLeaderboard)
		protected.GET("/games/leaderboard/all-time", gameHandler.AllTimeLeaderboard)
	}

	return router
}
