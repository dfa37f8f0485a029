// Package store provides storage backends for MedAssist user records.
//
// This file implements the SQLite-backed store.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/CareBridge/MedAssist/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore persists user records in an SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates an SQLite store. The DSN is the database file path;
// the containing directory is created when missing.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLiteStore ready", "path", cfg.DSN)

	return &SQLiteStore{db: db}, nil
}

// SaveUserRecord inserts or replaces the serialized record.
func (s *SQLiteStore) SaveUserRecord(record *models.UserRecord) error {
	blob, err := marshalRecord(record)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`INSERT INTO user_records (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		record.UserID, string(blob), time.Now().UTC())
	if err != nil {
		slog.Error("SQLiteStore.SaveUserRecord failed", "error", err, "userID", record.UserID)
		return fmt.Errorf("failed to save user record %s: %w", record.UserID, err)
	}
	slog.Debug("SQLiteStore.SaveUserRecord succeeded", "userID", record.UserID)
	return nil
}

// GetUserRecord loads a record by user ID, returning nil when absent.
func (s *SQLiteStore) GetUserRecord(userID string) (*models.UserRecord, error) {
	var blob string
	err := s.db.QueryRow(`SELECT data FROM user_records WHERE user_id = ?`, userID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		slog.Debug("SQLiteStore.GetUserRecord: record not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore.GetUserRecord failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to load user record %s: %w", userID, err)
	}
	return unmarshalRecord([]byte(blob))
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
