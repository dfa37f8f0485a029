// Package agent defines the five consultation actions available to the model.
package agent

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/CareBridge/MedAssist/internal/models"
)

// Action names forming the fixed menu offered to the model.
const (
	ActionAnalyzeHealthQuestion     = "AnalyzeHealthQuestion"
	ActionProvideHealthAdvice       = "ProvideHealthAdvice"
	ActionProvideMedicationGuidance = "ProvideMedicationGuidance"
	ActionInterpretMedicalTest      = "InterpretMedicalTest"
	ActionSuggestFollowUpAction     = "SuggestFollowUpAction"
)

// ConsultationActions binds the consultation action handlers to a user record
// so executed actions can read and update the user's health data.
type ConsultationActions struct {
	record *models.UserRecord
}

// NewConsultationActions creates the action set for one user record.
func NewConsultationActions(record *models.UserRecord) *ConsultationActions {
	return &ConsultationActions{record: record}
}

// RegisterAll registers the five consultation actions in menu order.
func (a *ConsultationActions) RegisterAll(d *ActionDispatcher) error {
	handlers := []struct {
		name    string
		handler ActionHandler
	}{
		{ActionAnalyzeHealthQuestion, a.AnalyzeHealthQuestion},
		{ActionProvideHealthAdvice, a.ProvideHealthAdvice},
		{ActionProvideMedicationGuidance, a.ProvideMedicationGuidance},
		{ActionInterpretMedicalTest, a.InterpretMedicalTest},
		{ActionSuggestFollowUpAction, a.SuggestFollowUpAction},
	}
	for _, h := range handlers {
		if err := d.Register(h.name, h.handler); err != nil {
			return fmt.Errorf("failed to register %s: %w", h.name, err)
		}
	}
	return nil
}

// missingParam renders the soft error returned when a required directive
// parameter is absent.
func missingParam(name string) string {
	slog.Warn("agent: missing required action parameter", "param", name)
	return fmt.Sprintf("Error: missing required parameter: %s", name)
}

// AnalyzeHealthQuestion analyzes a reported health question and records the
// described symptom on the user's record when one is given.
func (a *ConsultationActions) AnalyzeHealthQuestion(params map[string]string) string {
	question, ok := params["question"]
	if !ok || question == "" {
		return missingParam("question")
	}

	symptom := params["symptom"]
	duration := params["duration"]
	severity := params["severity"]

	var b strings.Builder
	b.WriteString("Health question analysis:\n")
	fmt.Fprintf(&b, "- Question: %s\n", question)

	if symptom != "" {
		record := models.Record{"description": symptom}
		if duration != "" {
			record["duration"] = duration
		}
		if severity != "" {
			record["severity"] = severity
		}
		if err := a.record.AddSymptom(record); err != nil {
			slog.Error("agent.AnalyzeHealthQuestion: failed to record symptom", "error", err)
		} else {
			fmt.Fprintf(&b, "- Symptom recorded: %s\n", symptom)
		}
	}

	b.WriteString("- Assessment: the described condition needs more detail on onset, duration and severity before advice can be given.")
	return b.String()
}

// ProvideHealthAdvice renders general health advice from the reported
// severity and duration.
func (a *ConsultationActions) ProvideHealthAdvice(params map[string]string) string {
	severity, ok := params["severity"]
	if !ok || severity == "" {
		return missingParam("severity")
	}
	duration, ok := params["duration"]
	if !ok || duration == "" {
		return missingParam("duration")
	}

	advice := "rest, stay hydrated, and monitor your symptoms"
	if strings.EqualFold(severity, "high") || strings.EqualFold(severity, "severe") {
		advice = "seek in-person medical care promptly"
	}

	var b strings.Builder
	b.WriteString("Health advice:\n")
	fmt.Fprintf(&b, "- Severity: %s\n", severity)
	fmt.Fprintf(&b, "- Duration: %s\n", duration)
	fmt.Fprintf(&b, "- Advice: %s", advice)
	return b.String()
}

// ProvideMedicationGuidance renders usage guidance for a medication, warning
// when the user has allergies on record.
func (a *ConsultationActions) ProvideMedicationGuidance(params map[string]string) string {
	medication, ok := params["medication"]
	if !ok || medication == "" {
		return missingParam("medication")
	}

	dosage := params["dosage"]
	if dosage == "" {
		dosage = "as directed on the label"
	}
	frequency := params["frequency"]
	if frequency == "" {
		frequency = "per the prescribing information"
	}

	var b strings.Builder
	b.WriteString("Medication guidance:\n")
	fmt.Fprintf(&b, "- Medication: %s\n", medication)
	fmt.Fprintf(&b, "- Dosage: %s\n", dosage)
	fmt.Fprintf(&b, "- Frequency: %s", frequency)

	if allergies := a.record.HealthData[models.HealthCategoryAllergies]; len(allergies) > 0 {
		fmt.Fprintf(&b, "\n- Caution: %d allergy record(s) on file, confirm compatibility with a pharmacist", len(allergies))
	}
	return b.String()
}

// InterpretMedicalTest renders an interpretation summary for a medical test.
func (a *ConsultationActions) InterpretMedicalTest(params map[string]string) string {
	testType, ok := params["test_type"]
	if !ok || testType == "" {
		return missingParam("test_type")
	}

	result := params["result"]
	if result == "" {
		result = "not provided"
	}

	var b strings.Builder
	b.WriteString("Medical test interpretation:\n")
	fmt.Fprintf(&b, "- Test: %s\n", testType)
	fmt.Fprintf(&b, "- Result: %s\n", result)
	b.WriteString("- Note: reference ranges vary by lab; discuss abnormal values with your doctor.")
	return b.String()
}

// SuggestFollowUpAction suggests the next step for the consultation based on
// the reported urgency and the user's recorded symptoms.
func (a *ConsultationActions) SuggestFollowUpAction(params map[string]string) string {
	urgency := params["urgency"]
	if urgency == "" {
		urgency = "routine"
	}

	suggestion := "schedule a routine appointment if symptoms persist beyond a week"
	if strings.EqualFold(urgency, "high") || strings.EqualFold(urgency, "urgent") {
		suggestion = "visit an emergency department or urgent care now"
	}

	symptomCount := len(a.record.HealthData[models.HealthCategorySymptoms])

	var b strings.Builder
	b.WriteString("Follow-up suggestion:\n")
	fmt.Fprintf(&b, "- Urgency: %s\n", urgency)
	fmt.Fprintf(&b, "- Symptoms on record: %d\n", symptomCount)
	fmt.Fprintf(&b, "- Suggestion: %s", suggestion)
	return b.String()
}
