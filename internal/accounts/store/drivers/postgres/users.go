package postgres

import (
	"context"
	"database/sql"

	"github.com/reelhouse/accounts/internal/accounts/domain"
	"github.com/reelhouse/accounts/internal/accounts/store"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT email, name, password_hash, preferences, created_at, updated_at
		FROM users WHERE email = $1`, email)

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

	const insert = `
		INSERT INTO users (email, name, password_hash, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`

	if d == store.DurabilityMajority {
		// remote_apply holds the commit until synchronous standbys have
		// applied it. On a cluster without standbys it degrades to a plain
		// synchronous local commit.
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = 'remote_apply'`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, u.Email, u.Name, u.PasswordHash, prefs); err != nil {
			return mapWriteErr(err)
		}
		return tx.Commit()
	}

	_, err = r.db.ExecContext(ctx, insert, u.Email, u.Name, u.PasswordHash, prefs)
	return mapWriteErr(err)
}

func (r *usersRepo) ReplacePreferences(ctx context.Context, email string, p map[string]any) error {
	prefs, err := marshalPreferences(p)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET preferences = $1, updated_at = now() WHERE email = $2`,
		prefs, email)
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
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = $1`, email)
	return err
}
