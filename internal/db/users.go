package db

import (
	"context"

	"github.com/playscore/backend/internal/model"
)

const userColumns = `id, username, COALESCE(email, ''), COALESCE(phone_number, ''),
	COALESCE(first_name, ''), COALESCE(last_name, ''), password_hash, password_salt,
	avatar, is_admin, is_staff, created_on, updated_on, is_deleted`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PhoneNumber,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.PasswordSalt,
		&user.Avatar,
		&user.IsAdmin,
		&user.IsStaff,
		&user.CreatedOn,
		&user.UpdatedOn,
		&user.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (username, email, phone_number, first_name, last_name,
			password_hash, password_salt, created_on)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, NOW())
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PhoneNumber,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.PasswordSalt,
	)
	return scanUser(row)
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 AND is_deleted = FALSE
	`
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND is_deleted = FALSE
	`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_deleted = FALSE
		ORDER BY id
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (db *Postgres) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		UPDATE users
		SET username = $2, email = NULLIF($3, ''), first_name = $4, last_name = $5,
			password_hash = $6, password_salt = $7, updated_on = NOW()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.PasswordSalt,
	)
	return scanUser(row)
}

// UpdateUserPassword writes hash and salt together in one statement, so the
// credential record is never half-updated.
func (db *Postgres) UpdateUserPassword(ctx context.Context, userID int64, hash, salt []byte) error {
	query := `
		UPDATE users
		SET password_hash = $2, password_salt = $3, updated_on = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`
	_, err := db.Pool.Exec(ctx, query, userID, hash, salt)
	return err
}

func (db *Postgres) SetUserAdminStatus(ctx context.Context, userID int64, isAdmin bool) (*model.User, error) {
	query := `
		UPDATE users
		SET is_admin = $2, updated_on = NOW()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, userID, isAdmin))
}

func (db *Postgres) SetUserAvatar(ctx context.Context, userID int64, avatar int) (*model.User, error) {
	query := `
		UPDATE users
		SET avatar = $2, updated_on = NOW()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, userID, avatar))
}

func (db *Postgres) SetSuperAdmin(ctx context.Context, userID int64) (*model.User, error) {
	query := `
		UPDATE users
		SET is_admin = TRUE, is_staff = TRUE, updated_on = NOW()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}
