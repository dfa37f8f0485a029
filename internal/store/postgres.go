// Package store provides storage backends for MedAssist user records.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/CareBridge/MedAssist/internal/models"
	_ "github.com/lib/pq"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists user records in a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Postgres store from a connection string DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run Postgres migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("PostgresStore ready")

	return &PostgresStore{db: db}, nil
}

// SaveUserRecord inserts or replaces the serialized record.
func (s *PostgresStore) SaveUserRecord(record *models.UserRecord) error {
	blob, err := marshalRecord(record)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`INSERT INTO user_records (user_id, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		record.UserID, string(blob), time.Now().UTC())
	if err != nil {
		slog.Error("PostgresStore.SaveUserRecord failed", "error", err, "userID", record.UserID)
		return fmt.Errorf("failed to save user record %s: %w", record.UserID, err)
	}
	slog.Debug("PostgresStore.SaveUserRecord succeeded", "userID", record.UserID)
	return nil
}

// GetUserRecord loads a record by user ID, returning nil when absent.
func (s *PostgresStore) GetUserRecord(userID string) (*models.UserRecord, error) {
	var blob string
	err := s.db.QueryRow(`SELECT data FROM user_records WHERE user_id = $1`, userID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		slog.Debug("PostgresStore.GetUserRecord: record not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore.GetUserRecord failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to load user record %s: %w", userID, err)
	}
	return unmarshalRecord([]byte(blob))
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
