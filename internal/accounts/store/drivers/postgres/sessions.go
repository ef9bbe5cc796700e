package postgres

import (
	"context"
	"database/sql"

	"github.com/reelhouse/accounts/internal/accounts/domain"
)

type sessionsRepo struct {
	db *sql.DB
}

func (r *sessionsRepo) GetByUserID(ctx context.Context, userID string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, jwt, created_at FROM sessions WHERE user_id = $1`, userID)

	var s domain.Session
	if err := row.Scan(&s.UserID, &s.JWT, &s.CreatedAt); err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) Create(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, jwt, created_at) VALUES ($1, $2, now())`,
		s.UserID, s.JWT)
	return mapWriteErr(err)
}

func (r *sessionsRepo) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
