// Package models defines the consultation session state for MedAssist.
package models

import "log/slog"

// Session state labels used by the consultation agent. State is free text and
// any transition is accepted; these are the labels the agent itself assigns.
const (
	SessionStateInitialized = "initialized"
	SessionStateResponded   = "responded"
	SessionStateDegraded    = "degraded"
)

// ConsultationSession holds the topic, context and state for one agent
// instance across multiple turns. The topic is sticky: once set it is never
// cleared for the lifetime of the session. State is a free-text label; any
// transition is accepted.
type ConsultationSession struct {
	UserID  string                 `json:"user_id"`
	Topic   string                 `json:"topic,omitempty"`
	Context map[string]interface{} `json:"context"`
	State   string                 `json:"state"`
}

// NewConsultationSession creates a session in the initialized state.
func NewConsultationSession(userID string) *ConsultationSession {
	slog.Debug("ConsultationSession.NewConsultationSession: session created", "userID", userID)
	return &ConsultationSession{
		UserID:  userID,
		Context: make(map[string]interface{}),
		State:   SessionStateInitialized,
	}
}

// SetTopic assigns the consultation topic if none is set yet. Returns whether
// the topic was applied.
func (s *ConsultationSession) SetTopic(topic string) bool {
	if s.Topic != "" {
		slog.Debug("ConsultationSession.SetTopic: topic already set, keeping", "userID", s.UserID, "topic", s.Topic, "ignored", topic)
		return false
	}
	s.Topic = topic
	slog.Info("ConsultationSession.SetTopic: topic assigned", "userID", s.UserID, "topic", topic)
	return true
}

// UpdateContext merges fields into the session context, last write wins per key.
func (s *ConsultationSession) UpdateContext(fields map[string]interface{}) {
	for key, value := range fields {
		s.Context[key] = value
	}
	slog.Debug("ConsultationSession.UpdateContext: context merged", "userID", s.UserID, "keys", len(fields))
}

// UpdateState unconditionally replaces the state label, logging the transition.
func (s *ConsultationSession) UpdateState(newState string) {
	slog.Info("ConsultationSession.UpdateState: state transition", "userID", s.UserID, "from", s.State, "to", newState)
	s.State = newState
}
