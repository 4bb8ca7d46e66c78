// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQL stores records in the kv_record table (see db.CreateSchema).
// It works on SQLite and PostgreSQL; only the placeholder style differs.
type SQL struct {
	db       *sql.DB
	postgres bool
}

// NewSQL wraps an open database. driver is the database/sql driver name
// ("sqlite" or "postgres").
func NewSQL(db *sql.DB, driver string) *SQL {
	return &SQL{db: db, postgres: driver == "postgres"}
}

func (s *SQL) query(q string) string {
	if !s.postgres {
		return q
	}
	// Rewrite ? placeholders to $1, $2, ...
	out := make([]byte, 0, len(q)+8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, q[i])
	}
	return string(out)
}

func (s *SQL) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.query(`
		SELECT record_value FROM kv_record WHERE record_key = ?
	`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.query(`
		INSERT INTO kv_record (record_key, record_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (record_key) DO UPDATE
		SET record_value = excluded.record_value, updated_at = excluded.updated_at
	`), key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.query(`
		DELETE FROM kv_record WHERE record_key = ?
	`), key)
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
