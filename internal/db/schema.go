package db

import "context"

func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT UNIQUE,
			phone_number TEXT UNIQUE,
			first_name TEXT,
			last_name TEXT,
			password_hash BYTEA,
			password_salt BYTEA,
			avatar INTEGER NOT NULL DEFAULT 0,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			is_staff BOOLEAN NOT NULL DEFAULT FALSE,
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_on TIMESTAMPTZ,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS user_tokens (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			code TEXT NOT NULL,
			purpose TEXT NOT NULL,
			expiry_minutes INTEGER NOT NULL,
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, purpose)
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS games (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			score INTEGER NOT NULL,
			created_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS user_tokens_user_id_idx ON user_tokens(user_id)`,
		`CREATE INDEX IF NOT EXISTS games_score_idx ON games(score)`,
		`CREATE INDEX IF NOT EXISTS games_created_on_idx ON games(created_on)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
