// Package agent provides the consultation service consumed by the transport layer.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/CareBridge/MedAssist/internal/models"
	"github.com/CareBridge/MedAssist/internal/store"
)

// Service routes chat turns to per-user consultation agents. It resolves and
// persists user records through the store and serializes turns per user so no
// record sees concurrent mutation.
type Service struct {
	store    store.Store
	provider DirectiveProvider

	mu     sync.Mutex
	agents map[string]*agentEntry
}

// agentEntry pairs an agent with the mutex that serializes its turns.
type agentEntry struct {
	mu    sync.Mutex
	agent *ConsultationAgent
}

// NewService creates a consultation service with the given store and
// directive provider.
func NewService(st store.Store, provider DirectiveProvider) *Service {
	slog.Debug("agent.NewService: service created", "hasStore", st != nil, "hasProvider", provider != nil)
	return &Service{
		store:    st,
		provider: provider,
		agents:   make(map[string]*agentEntry),
	}
}

// entryFor returns the cached agent entry for the user, loading the record
// from the store or creating a fresh one on first interaction.
func (s *Service) entryFor(userID string) (*agentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.agents[userID]; ok {
		return entry, nil
	}

	record, err := s.store.GetUserRecord(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user record: %w", err)
	}
	if record == nil {
		record = models.NewUserRecord(userID)
		slog.Info("Service.entryFor: new user record created", "userID", record.UserID)
	}

	agent, err := NewConsultationAgent(record, s.provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create consultation agent: %w", err)
	}

	entry := &agentEntry{agent: agent}
	s.agents[record.UserID] = entry
	return entry, nil
}

// HandleTurn processes one chat turn for the user: resolve the agent, run the
// turn, persist the record, return the response text.
func (s *Service) HandleTurn(ctx context.Context, userID, message string) (string, error) {
	entry, err := s.entryFor(userID)
	if err != nil {
		slog.Error("Service.HandleTurn: failed to resolve agent", "error", err, "userID", userID)
		return "", err
	}

	// At most one in-flight turn per user.
	entry.mu.Lock()
	defer entry.mu.Unlock()

	response := entry.agent.HandleTurn(ctx, message)

	if err := s.store.SaveUserRecord(entry.agent.Record()); err != nil {
		// The turn already produced a response; a persistence failure must
		// not kill the conversation.
		slog.Error("Service.HandleTurn: failed to persist user record", "error", err, "userID", userID)
	}

	return response, nil
}

// UserSummary renders the health summary for a known user.
func (s *Service) UserSummary(userID string) (string, error) {
	s.mu.Lock()
	entry, cached := s.agents[userID]
	s.mu.Unlock()

	if cached {
		entry.mu.Lock()
		defer entry.mu.Unlock()
		return entry.agent.Record().Summary(), nil
	}

	record, err := s.store.GetUserRecord(userID)
	if err != nil {
		slog.Error("Service.UserSummary: failed to load user record", "error", err, "userID", userID)
		return "", err
	}
	if record == nil {
		return "", fmt.Errorf("%w: %s", models.ErrUserNotFound, userID)
	}
	return record.Summary(), nil
}

// UpdateBasicInfo merges basic info fields into the user's record and
// persists it. The record is created on first interaction.
func (s *Service) UpdateBasicInfo(userID string, fields map[string]interface{}) error {
	entry, err := s.entryFor(userID)
	if err != nil {
		slog.Error("Service.UpdateBasicInfo: failed to resolve agent", "error", err, "userID", userID)
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := entry.agent.Record().UpdateBasicInfo(fields); err != nil {
		return err
	}
	if err := s.store.SaveUserRecord(entry.agent.Record()); err != nil {
		return fmt.Errorf("failed to persist user record: %w", err)
	}
	return nil
}
