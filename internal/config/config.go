package config

import "os"

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Token    TokenConfig
	SSO      SSOConfig
	Mail     MailConfig
	Admin    AdminConfig
	Game     GameConfig
	Postgres PostgresConfig
}

type GameConfig struct {
	AllTimeLeaderboardLimit string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins string
}

type AuthConfig struct {
	JWTSecret            string
	JWTSigningAlgorithm  string
	AccessTokenExpiryMin string
}

type TokenConfig struct {
	ResetCodeLength    string
	ResetCodeExpiryMin string
}

type SSOConfig struct {
	IssuerURL string
	ClientID  string
}

type MailConfig struct {
	RelayURL string
	APIKey   string
	Sender   string
}

type AdminConfig struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		},
		Auth: AuthConfig{
			JWTSecret:            os.Getenv("JWT_SECRET"),
			JWTSigningAlgorithm:  getenv("JWT_SIGNING_ALGORITHM", "HS256"),
			AccessTokenExpiryMin: getenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"),
		},
		Token: TokenConfig{
			ResetCodeLength:    getenv("RESET_CODE_LENGTH", "8"),
			ResetCodeExpiryMin: getenv("RESET_CODE_EXPIRE_MINUTES", "15"),
		},
		SSO: SSOConfig{
			IssuerURL: os.Getenv("SSO_ISSUER_URL"),
			ClientID:  os.Getenv("SSO_CLIENT_ID"),
		},
		Mail: MailConfig{
			RelayURL: os.Getenv("MAIL_RELAY_URL"),
			APIKey:   os.Getenv("MAIL_API_KEY"),
			Sender:   getenv("MAIL_SENDER", "no-reply@playscore.dev"),
		},
		Admin: AdminConfig{
			Email:     os.Getenv("ADMIN_EMAIL"),
			FirstName: os.Getenv("ADMIN_FIRST_NAME"),
			LastName:  os.Getenv("ADMIN_LAST_NAME"),
			Password:  os.Getenv("ADMIN_PASSWORD"),
		},
		Game: GameConfig{
			AllTimeLeaderboardLimit: getenv("ALL_TIME_LEADERBOARD_LIMIT", "10"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
