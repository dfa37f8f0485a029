// Package agent provides prompt composition for consultation turns.
package agent

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/CareBridge/MedAssist/internal/models"
)

// SystemPrompt is the fixed role description sent with every directive request.
const SystemPrompt = "You are a professional medical consultation assistant. " +
	"You answer health questions, give care advice, guide medication use, " +
	"interpret medical tests and help patients book appointments. You never " +
	"diagnose; you decide which action to take next and reply with a single " +
	"action directive."

// ComposePrompt builds the instruction prompt for one turn. It embeds the raw
// instruction, the session topic (classifying it first if unset), the session
// context rendered with sorted keys, the state label and the fixed action
// menu. Classification is its only side effect; given identical session state
// and instruction the output is deterministic.
func ComposePrompt(session *models.ConsultationSession, dispatcher *ActionDispatcher, instruction string) string {
	if session.Topic == "" {
		session.SetTopic(ClassifyTopic(instruction))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User request: %s\n", instruction)
	fmt.Fprintf(&b, "Consultation topic: %s\n", session.Topic)

	b.WriteString("Known context:\n")
	if len(session.Context) == 0 {
		b.WriteString("- (none)\n")
	} else {
		keys := make([]string, 0, len(session.Context))
		for key := range session.Context {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "- %s: %v\n", key, session.Context[key])
		}
	}

	fmt.Fprintf(&b, "Current state: %s\n\n", session.State)

	b.WriteString("Available actions:\n")
	for _, name := range dispatcher.ActionNames() {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	b.WriteString("\nReply with exactly one directive in the form \"<ActionName>: key1=value1, key2=value2\".")

	prompt := b.String()
	slog.Debug("agent.ComposePrompt: prompt composed", "userID", session.UserID, "topic", session.Topic, "length", len(prompt))
	return prompt
}
