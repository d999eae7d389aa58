package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/playscore/backend/internal/auth"
	"github.com/playscore/backend/internal/client"
	"github.com/playscore/backend/internal/config"
	"github.com/playscore/backend/internal/db"
	"github.com/playscore/backend/internal/handler"
	"github.com/playscore/backend/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	accessTTLMin, err := strconv.Atoi(cfg.Auth.AccessTokenExpiryMin)
	if err != nil || accessTTLMin <= 0 {
		log.Fatalf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %q", cfg.Auth.AccessTokenExpiryMin)
	}

	codec, err := auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.JWTSigningAlgorithm, time.Duration(accessTTLMin)*time.Minute)
	if err != nil {
		log.Fatalf("failed to build token codec: %v", err)
	}

	external, err := auth.NewExternalVerifier(ctx, cfg.SSO.IssuerURL, cfg.SSO.ClientID)
	if err != nil {
		log.Fatalf("failed to set up SSO verifier: %v", err)
	}

	database, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	mailer := client.NewEmailClient(cfg.Mail)

	tokenSvc := service.NewUserTokenService(database)
	authSvc, err := service.NewAuthService(database, tokenSvc, codec, external, mailer, cfg.Token)
	if err != nil {
		log.Fatalf("failed to build auth service: %v", err)
	}
	userSvc := service.NewUserService(database)
	gameSvc, err := service.NewGameService(database, cfg.Game.AllTimeLeaderboardLimit)
	if err != nil {
		log.Fatalf("failed to build game service: %v", err)
	}

	if err := userSvc.EnsureAdmin(ctx, cfg.Admin); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	router := handler.NewRouter(authSvc, userSvc, tokenSvc, gameSvc, cfg.Server.AllowedOrigins)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
