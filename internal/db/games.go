package db

import (
	"context"
	"time"

	"github.com/playscore/backend/internal/model"
)

func (db *Postgres) CreateGame(ctx context.Context, userID int64, score int) (*model.Game, error) {
	query := `
		INSERT INTO games (user_id, score, created_on)
		VALUES ($1, $2, NOW())
		RETURNING id, user_id, score, created_on
	`
	var game model.Game
	err := db.Pool.QueryRow(ctx, query, userID, score).Scan(
		&game.ID,
		&game.UserID,
		&game.Score,
		&game.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (db *Postgres) GetGameByID(ctx context.Context, gameID int64) (*model.Game, error) {
	query := `
		SELECT id, user_id, score, created_on
		FROM games
		WHERE id = $1
	`
	var game model.Game
	err := db.Pool.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.UserID,
		&game.Score,
		&game.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (db *Postgres) ListGamesByUser(ctx context.Context, userID int64) ([]*model.Game, error) {
	query := `
		SELECT id, user_id, score, created_on
		FROM games
		WHERE user_id = $1
		ORDER BY created_on DESC
	`
	return db.queryGames(ctx, query, userID)
}

func (db *Postgres) ListGames(ctx context.Context) ([]*model.Game, error) {
	query := `
		SELECT id, user_id, score, created_on
		FROM games
		ORDER BY created_on DESC
	`
	return db.queryGames(ctx, query)
}

// ListGamesSince returns games created at or after since, best score first,
// ties broken by earliest submission.
func (db *Postgres) ListGamesSince(ctx context.Context, since time.Time) ([]*model.Game, error) {
	query := `
		SELECT id, user_id, score, created_on
		FROM games
		WHERE created_on >= $1
		ORDER BY score DESC, created_on ASC
	`
	return db.queryGames(ctx, query, since)
}

func (db *Postgres) queryGames(ctx context.Context, query string, args ...any) ([]*model.Game, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*model.Game
	for rows.Next() {
		var game model.Game
		if err := rows.Scan(&game.ID, &game.UserID, &game.Score, &game.CreatedOn); err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	return games, rows.Err()
}
