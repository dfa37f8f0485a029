// Package agent implements the per-user consultation agent.
package agent

import (
	"context"
	"log/slog"

	"github.com/CareBridge/MedAssist/internal/directory"
	"github.com/CareBridge/MedAssist/internal/models"
)

// FallbackResponse is returned when no directive could be obtained. The turn
// must always yield renderable text, so provider failures never abort it.
const FallbackResponse = "I could not process your request right now. Please try again."

// DirectiveProvider produces an action directive from the composed prompt.
// genai.ClientInterface satisfies it; tests use scripted implementations.
type DirectiveProvider interface {
	GenerateDirective(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ConsultationAgent holds the session and user record for one user and runs
// consultation turns: route, classify, compose, obtain a directive, dispatch
// it and fold the outcome back into the record and session. Booking requests
// are routed to the appointment action menu, everything else to the
// consultation menu.
//
// One agent serves one user. The agent does no internal locking; the caller
// ensures at most one in-flight turn per user.
type ConsultationAgent struct {
	record         *models.UserRecord
	session        *models.ConsultationSession
	dispatcher     *ActionDispatcher
	apptDispatcher *ActionDispatcher
	provider       DirectiveProvider
}

// NewConsultationAgent creates an agent for the given record with the
// consultation and appointment action menus registered.
func NewConsultationAgent(record *models.UserRecord, provider DirectiveProvider) (*ConsultationAgent, error) {
	dispatcher := NewActionDispatcher()
	if err := NewConsultationActions(record).RegisterAll(dispatcher); err != nil {
		return nil, err
	}

	apptDispatcher := NewActionDispatcher()
	if err := NewAppointmentActions(record, directory.NewService()).RegisterAll(apptDispatcher); err != nil {
		return nil, err
	}

	slog.Debug("agent.NewConsultationAgent: agent created", "userID", record.UserID)
	return &ConsultationAgent{
		record:         record,
		session:        models.NewConsultationSession(record.UserID),
		dispatcher:     dispatcher,
		apptDispatcher: apptDispatcher,
		provider:       provider,
	}, nil
}

// Record returns the agent's user record.
func (a *ConsultationAgent) Record() *models.UserRecord {
	return a.record
}

// Session returns the agent's consultation session.
func (a *ConsultationAgent) Session() *models.ConsultationSession {
	return a.session
}

// HandleTurn processes one conversation turn and returns the result text.
func (a *ConsultationAgent) HandleTurn(ctx context.Context, message string) string {
	taskType := RouteTask(message)
	slog.Info("ConsultationAgent.HandleTurn: processing turn", "userID", a.record.UserID, "taskType", taskType, "messageLength", len(message))

	dispatcher := a.dispatcher
	if taskType == TaskAppointment {
		dispatcher = a.apptDispatcher
	}

	prompt := ComposePrompt(a.session, dispatcher, message)

	directive, err := a.provider.GenerateDirective(ctx, SystemPrompt, prompt)
	if err != nil {
		slog.Error("ConsultationAgent.HandleTurn: directive generation failed", "error", err, "userID", a.record.UserID)
		a.session.UpdateState(models.SessionStateDegraded)
		return FallbackResponse
	}

	result := dispatcher.Dispatch(directive)
	actionName, _ := ParseDirective(directive)

	a.session.UpdateContext(map[string]interface{}{
		"last_directive": directive,
		"last_action":    actionName,
		"last_task_type": taskType,
	})
	if err := a.record.UpdateConversationContext(map[string]interface{}{
		"last_topic":   a.session.Topic,
		"last_action":  actionName,
		"last_message": message,
	}); err != nil {
		slog.Error("ConsultationAgent.HandleTurn: failed to update conversation context", "error", err, "userID", a.record.UserID)
	}
	a.session.UpdateState(models.SessionStateResponded)

	slog.Info("ConsultationAgent.HandleTurn: turn completed", "userID", a.record.UserID, "action", actionName)
	return result
}
