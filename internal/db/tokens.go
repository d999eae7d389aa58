package db

import (
	"context"

	"github.com/playscore/backend/internal/model"
)

// ReplaceUserToken deletes any live token for (user, purpose) and inserts the
// new one in a single transaction, so concurrent issuance cannot leave two
// codes for one purpose.
func (db *Postgres) ReplaceUserToken(ctx context.Context, token *model.UserToken) (*model.UserToken, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err = tx.Exec(ctx, `
		DELETE FROM user_tokens
		WHERE user_id = $1 AND purpose = $2
	`, token.UserID, token.Purpose); err != nil {
		return nil, err
	}

	var stored model.UserToken
	err = tx.QueryRow(ctx, `
		INSERT INTO user_tokens (user_id, code, purpose, expiry_minutes, created_on)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, user_id, code, purpose, expiry_minutes, created_on
	`, token.UserID, token.Code, token.Purpose, token.ExpiryMin).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.Code,
		&stored.Purpose,
		&stored.ExpiryMin,
		&stored.CreatedOn,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (db *Postgres) GetUserToken(ctx context.Context, userID int64, purpose model.TokenPurpose) (*model.UserToken, error) {
	query := `
		SELECT id, user_id, code, purpose, expiry_minutes, created_on
		FROM user_tokens
		WHERE user_id = $1 AND purpose = $2
	`
	var token model.UserToken
	err := db.Pool.QueryRow(ctx, query, userID, purpose).Scan(
		&token.ID,
		&token.UserID,
		&token.Code,
		&token.Purpose,
		&token.ExpiryMin,
		&token.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// ConsumeUserToken deletes the token row only if it still holds the expected
// code. The affected-row count is the consumption result: under concurrent
// consume calls at most one caller sees true.
func (db *Postgres) ConsumeUserToken(ctx context.Context, userID int64, purpose model.TokenPurpose, code string) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM user_tokens
		WHERE user_id = $1 AND purpose = $2 AND code = $3
	`, userID, purpose, code)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
