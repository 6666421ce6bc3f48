package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
	"github.com/antonybholmes/go-auth/internal/auth/store"
)

// Timestamps are stored as unix seconds. That keeps the driver portable and
// matches the whole-second resolution of the user fingerprint.
const userColumns = `id, username, email, first_name, last_name, password_hash, email_verified_at, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUser(ctx, `username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `email = ?`, email)
}

func (r *usersRepo) getUser(ctx context.Context, where string, arg any) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where+` LIMIT 1`, arg)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC().Unix()

	createdAt := now
	if !u.CreatedAt.IsZero() {
		createdAt = u.CreatedAt.UTC().Unix()
	}
	updatedAt := now
	if !u.UpdatedAt.IsZero() {
		updatedAt = u.UpdatedAt.UTC().Unix()
	}

	var verifiedAt any
	if u.EmailVerifiedAt != nil {
		verifiedAt = u.EmailVerifiedAt.UTC().Unix()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, first_name, last_name, password_hash, email_verified_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, verifiedAt, createdAt, updatedAt)
	return mapConflict(err)
}

// touchExpr advances updated_at to now, or to the next second when the row
// was already updated this second. updated_at must move on every mutation or
// an outstanding single-use token would survive its own consumption.
const touchExpr = `MAX(?, updated_at + 1)`

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return r.exec(ctx,
		`UPDATE users SET password_hash = ?, updated_at = `+touchExpr+` WHERE id = ?`,
		newHash, time.Now().UTC().Unix(), userID)
}

func (r *usersRepo) TouchFingerprint(ctx context.Context, userID string) error {
	return r.exec(ctx,
		`UPDATE users SET updated_at = `+touchExpr+` WHERE id = ?`,
		time.Now().UTC().Unix(), userID)
}

func (r *usersRepo) MarkEmailVerified(ctx context.Context, userID string) error {
	now := time.Now().UTC().Unix()
	return r.exec(ctx,
		`UPDATE users SET email_verified_at = ?, updated_at = `+touchExpr+` WHERE id = ?`,
		now, now, userID)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// exec runs an UPDATE and maps "no rows touched" onto store.ErrNotFound.
func (r *usersRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u          domain.User
		verifiedAt sql.NullInt64
		createdAt  int64
		updatedAt  int64
	)

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&verifiedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	if verifiedAt.Valid {
		t := time.Unix(verifiedAt.Int64, 0).UTC()
		u.EmailVerifiedAt = &t
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	u.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return u, nil
}
