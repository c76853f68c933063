package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/RoiCoDA/AbsoluteCinema/internal/model"
)

// UserRepo is the MySQL implementation of UserStore. All timestamps
// are stored in UTC.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, phone_number, username, full_name, banned, created_at`

func (r *UserRepo) scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var username sql.NullString
	err := row.Scan(&u.ID, &u.PhoneNumber, &username, &u.FullName, &u.Banned, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if username.Valid {
		u.Username = username.String
	}
	return &u, nil
}

// GetByID returns the user with the given primary key.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

// GetByPhone returns the user with the given normalized phone number.
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE phone_number = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, q, phone))
}

// GetByUsername returns the user holding the given username
// (case-insensitive, matching the column collation).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE username = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, q, username))
}

// Create inserts a new user row. The unique key on phone_number makes
// concurrent first-login races fail cleanly instead of duplicating.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (id, phone_number, username, full_name, banned, created_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	username := sql.NullString{String: u.Username, Valid: u.Username != ""}
	_, err := r.db.ExecContext(ctx, q, u.ID, u.PhoneNumber, username, u.FullName, u.Banned, u.CreatedAt.UTC())
	return err
}

// Update rewrites the mutable user fields (username, full name,
// banned flag).
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	const q = `UPDATE users SET username = ?, full_name = ?, banned = ? WHERE id = ?`
	username := sql.NullString{String: u.Username, Valid: u.Username != ""}
	res, err := r.db.ExecContext(ctx, q, username, u.FullName, u.Banned, u.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}
