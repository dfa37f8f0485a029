// Package store provides storage backends for MedAssist user records.
//
// Backends round-trip records exclusively through UserRecord.ToMap/FromMap,
// so any engine reproduces an equivalent record. An in-memory store serves
// tests and development; SQLite and Postgres back production deployments.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/CareBridge/MedAssist/internal/models"
)

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option configures a store backend.
type Option func(*Opts)

// WithDSN sets the data source name: a file path for SQLite, a connection
// string for Postgres.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// Store defines persistence for user records.
type Store interface {
	// SaveUserRecord inserts or replaces the serialized record.
	SaveUserRecord(record *models.UserRecord) error
	// GetUserRecord loads a record by user ID, returning nil when absent.
	GetUserRecord(userID string) (*models.UserRecord, error)
	// Close releases backend resources.
	Close() error
}

// marshalRecord serializes a record for storage.
func marshalRecord(record *models.UserRecord) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: record is nil", models.ErrValidation)
	}
	data, err := json.Marshal(record.ToMap())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user record %s: %w", record.UserID, err)
	}
	return data, nil
}

// unmarshalRecord deserializes a stored record blob.
func unmarshalRecord(blob []byte) (*models.UserRecord, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(blob, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user record: %w", err)
	}
	record := &models.UserRecord{}
	if err := record.FromMap(data); err != nil {
		return nil, fmt.Errorf("failed to load user record: %w", err)
	}
	return record, nil
}

// InMemoryStore keeps serialized user records in memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string][]byte)}
}

// SaveUserRecord stores a serialized copy of the record.
func (s *InMemoryStore) SaveUserRecord(record *models.UserRecord) error {
	blob, err := marshalRecord(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.UserID] = blob
	slog.Debug("InMemoryStore.SaveUserRecord: record saved", "userID", record.UserID)
	return nil
}

// GetUserRecord loads a record, returning nil when the user is unknown.
func (s *InMemoryStore) GetUserRecord(userID string) (*models.UserRecord, error) {
	s.mu.RLock()
	blob, ok := s.records[userID]
	s.mu.RUnlock()

	if !ok {
		slog.Debug("InMemoryStore.GetUserRecord: record not found", "userID", userID)
		return nil, nil
	}
	return unmarshalRecord(blob)
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
