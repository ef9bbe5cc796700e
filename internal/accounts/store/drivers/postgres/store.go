// Package postgres is the Store driver for replicated deployments. It speaks
// database/sql through the pgx stdlib adapter, so majority durability can be
// requested per write via synchronous_commit.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/reelhouse/accounts/internal/accounts/store"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users       { return &usersRepo{db: s.db} }
func (s *Store) Sessions() store.Sessions { return &sessionsRepo{db: s.db} }

func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return store.ErrAlreadyExists
	}
	return err
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func marshalPreferences(prefs map[string]any) (sql.NullString, error) {
	if prefs == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func unmarshalPreferences(ns sql.NullString) (map[string]any, error) {
	if !ns.Valid {
		return nil, nil
	}
	var prefs map[string]any
	if err := json.Unmarshal([]byte(ns.String), &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
