package agent

import (
	"strings"
	"testing"

	"github.com/CareBridge/MedAssist/internal/models"
)

func newTestDispatcher(t *testing.T, record *models.UserRecord) *ActionDispatcher {
	t.Helper()
	d := NewActionDispatcher()
	if err := NewConsultationActions(record).RegisterAll(d); err != nil {
		t.Fatalf("failed to register actions: %v", err)
	}
	return d
}

func TestRegisterAllMenuOrder(t *testing.T) {
	d := newTestDispatcher(t, models.NewUserRecord(""))
	expected := []string{
		ActionAnalyzeHealthQuestion,
		ActionProvideHealthAdvice,
		ActionProvideMedicationGuidance,
		ActionInterpretMedicalTest,
		ActionSuggestFollowUpAction,
	}
	names := d.ActionNames()
	if len(names) != len(expected) {
		t.Fatalf("expected %d actions, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("expected action %d to be %q, got %q", i, name, names[i])
		}
	}
}

func TestAnalyzeHealthQuestionRecordsSymptom(t *testing.T) {
	record := models.NewUserRecord("")
	d := newTestDispatcher(t, record)

	result := d.Dispatch("AnalyzeHealthQuestion: question=why does my head hurt, symptom=headache, duration=3天, severity=moderate")
	if !strings.Contains(result, "Health question analysis:") {
		t.Errorf("expected analysis header, got %q", result)
	}

	symptoms := record.HealthData[models.HealthCategorySymptoms]
	if len(symptoms) != 1 {
		t.Fatalf("expected recorded symptom, got %d", len(symptoms))
	}
	if symptoms[0]["description"] != "headache" {
		t.Errorf("expected symptom description, got %v", symptoms[0]["description"])
	}
	if symptoms[0]["duration"] != "3天" {
		t.Errorf("expected symptom duration, got %v", symptoms[0]["duration"])
	}
}

func TestAnalyzeHealthQuestionMissingQuestion(t *testing.T) {
	d := newTestDispatcher(t, models.NewUserRecord(""))
	result := d.Dispatch("AnalyzeHealthQuestion: symptom=headache")
	if !strings.HasPrefix(result, "Error: missing required parameter: question") {
		t.Errorf("expected missing-parameter error, got %q", result)
	}
}

func TestProvideHealthAdvice(t *testing.T) {
	d := newTestDispatcher(t, models.NewUserRecord(""))

	result := d.Dispatch("ProvideHealthAdvice: severity=high, duration=3天")
	if !strings.Contains(result, "- Severity: high") || !strings.Contains(result, "- Duration: 3天") {
		t.Errorf("expected parameters echoed in advice, got %q", result)
	}
	if !strings.Contains(result, "seek in-person medical care promptly") {
		t.Errorf("expected high-severity advice, got %q", result)
	}

	mild := d.Dispatch("ProvideHealthAdvice: severity=mild, duration=1 day")
	if !strings.Contains(mild, "rest, stay hydrated") {
		t.Errorf("expected default advice, got %q", mild)
	}
}

func TestProvideHealthAdviceMissingParams(t *testing.T) {
	d := newTestDispatcher(t, models.NewUserRecord(""))
	if result := d.Dispatch("ProvideHealthAdvice: duration=3天"); !strings.Contains(result, "missing required parameter: severity") {
		t.Errorf("expected severity error, got %q", result)
	}
	if result := d.Dispatch("ProvideHealthAdvice: severity=high"); !strings.Contains(result, "missing required parameter: duration") {
		t.Errorf("expected duration error, got %q", result)
	}
}

func TestProvideMedicationGuidanceAllergyCaution(t *testing.T) {
	record := models.NewUserRecord("")
	record.HealthData[models.HealthCategoryAllergies] = append(
		record.HealthData[models.HealthCategoryAllergies],
		models.Record{"allergen": "penicillin"},
	)
	d := newTestDispatcher(t, record)

	result := d.Dispatch("ProvideMedicationGuidance: medication=amoxicillin")
	if !strings.Contains(result, "- Medication: amoxicillin") {
		t.Errorf("expected medication line, got %q", result)
	}
	if !strings.Contains(result, "Caution") {
		t.Errorf("expected allergy caution, got %q", result)
	}
}

func TestInterpretMedicalTest(t *testing.T) {
	d := newTestDispatcher(t, models.NewUserRecord(""))
	result := d.Dispatch("InterpretMedicalTest: test_type=blood panel, result=elevated WBC")
	if !strings.Contains(result, "- Test: blood panel") || !strings.Contains(result, "- Result: elevated WBC") {
		t.Errorf("expected test details, got %q", result)
	}

	if result := d.Dispatch("InterpretMedicalTest:"); !strings.Contains(result, "missing required parameter: test_type") {
		t.Errorf("expected missing-parameter error, got %q", result)
	}
}

func TestSuggestFollowUpAction(t *testing.T) {
	record := models.NewUserRecord("")
	record.AddSymptom(models.Record{"description": "dizziness"})
	d := newTestDispatcher(t, record)

	urgent := d.Dispatch("SuggestFollowUpAction: urgency=high")
	if !strings.Contains(urgent, "emergency department") {
		t.Errorf("expected urgent suggestion, got %q", urgent)
	}
	if !strings.Contains(urgent, "Symptoms on record: 1") {
		t.Errorf("expected symptom count, got %q", urgent)
	}

	routine := d.Dispatch("SuggestFollowUpAction")
	if !strings.Contains(routine, "- Urgency: routine") {
		t.Errorf("expected routine default, got %q", routine)
	}
}
