package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/reelhouse/accounts/internal/accounts/domain"
	"github.com/reelhouse/accounts/internal/accounts/store"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT email, name, password_hash, preferences, created_at, updated_at
		FROM users WHERE email = ?`, email)

	var u domain.User
	var prefs sql.NullString
	if err := row.Scan(&u.Email, &u.Name, &u.PasswordHash, &prefs, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}

	decoded, err := unmarshalPreferences(prefs)
	if err != nil {
		return domain.User{}, err
	}
	u.Preferences = decoded
	return u, nil
}

func (r *usersRepo) Create(ctx context.Context, u domain.User, d store.Durability) error {
	prefs, err := marshalPreferences(u.Preferences)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	const insert = `
		INSERT INTO users (email, name, password_hash, preferences, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	if d == store.DurabilityMajority {
		// SQLite has no replica set; the strongest commitment it can make is
		// a full fsync before acknowledging. Scope the pragma to a dedicated
		// connection so other writes keep the pool default.
		conn, err := r.db.Conn(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		if _, err := conn.ExecContext(ctx, `PRAGMA synchronous = FULL;`); err != nil {
			return err
		}
		_, err = conn.ExecContext(ctx, insert, u.Email, u.Name, u.PasswordHash, prefs, now, now)
		return mapWriteErr(err)
	}

	_, err = r.db.ExecContext(ctx, insert, u.Email, u.Name, u.PasswordHash, prefs, now, now)
	return mapWriteErr(err)
}

func (r *usersRepo) ReplacePreferences(ctx context.Context, email string, p map[string]any) error {
	prefs, err := marshalPreferences(p)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET preferences = ?, updated_at = ? WHERE email = ?`,
		prefs, time.Now().UTC(), email)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) Delete(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, email)
	return err
}
