// Package agent defines the appointment booking actions available to the model.
package agent

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/CareBridge/MedAssist/internal/directory"
	"github.com/CareBridge/MedAssist/internal/models"
)

// Action names forming the appointment booking menu offered to the model.
const (
	ActionCollectUserInfo     = "CollectUserInfo"
	ActionAnalyzeSymptoms     = "AnalyzeSymptoms"
	ActionRecommendDepartment = "RecommendDepartment"
	ActionRecommendDoctor     = "RecommendDoctor"
	ActionScheduleAppointment = "ScheduleAppointment"
	ActionConfirmAppointment  = "ConfirmAppointment"
)

// AppointmentActions binds the booking action handlers to a user record and
// the hospital directory. Confirmed bookings are kept for conflict checks and
// folded into the user's medical records.
type AppointmentActions struct {
	record       *models.UserRecord
	directory    *directory.Service
	appointments []*models.Appointment
}

// NewAppointmentActions creates the booking action set for one user record.
func NewAppointmentActions(record *models.UserRecord, dir *directory.Service) *AppointmentActions {
	return &AppointmentActions{record: record, directory: dir}
}

// RegisterAll registers the six appointment actions in menu order.
func (a *AppointmentActions) RegisterAll(d *ActionDispatcher) error {
	handlers := []struct {
		name    string
		handler ActionHandler
	}{
		{ActionCollectUserInfo, a.CollectUserInfo},
		{ActionAnalyzeSymptoms, a.AnalyzeSymptoms},
		{ActionRecommendDepartment, a.RecommendDepartment},
		{ActionRecommendDoctor, a.RecommendDoctor},
		{ActionScheduleAppointment, a.ScheduleAppointment},
		{ActionConfirmAppointment, a.ConfirmAppointment},
	}
	for _, h := range handlers {
		if err := d.Register(h.name, h.handler); err != nil {
			return fmt.Errorf("failed to register %s: %w", h.name, err)
		}
	}
	return nil
}

// CollectUserInfo stores the patient's basic details on the user record.
func (a *AppointmentActions) CollectUserInfo(params map[string]string) string {
	for _, required := range []string{"name", "gender", "age", "contact"} {
		if params[required] == "" {
			return missingParam(required)
		}
	}

	fields := map[string]interface{}{
		"name":    params["name"],
		"gender":  params["gender"],
		"age":     params["age"],
		"contact": params["contact"],
	}
	if err := a.record.UpdateBasicInfo(fields); err != nil {
		slog.Error("agent.CollectUserInfo: failed to update basic info", "error", err)
		return "Error: failed to store basic info"
	}

	return fmt.Sprintf("Collected basic info: name=%s, gender=%s, age=%s, contact=%s",
		params["name"], params["gender"], params["age"], params["contact"])
}

// AnalyzeSymptoms maps the described symptoms to candidate departments and
// adds duration and severity guidance.
func (a *AppointmentActions) AnalyzeSymptoms(params map[string]string) string {
	symptoms := params["symptoms"]
	if symptoms == "" {
		return missingParam("symptoms")
	}
	duration := params["duration"]
	if duration == "" {
		duration = "unknown"
	}
	severity := params["severity"]
	if severity == "" {
		severity = "unknown"
	}

	var b strings.Builder
	b.WriteString("Symptom analysis, candidate departments:\n")

	matched := a.directory.MatchDepartments(symptoms)
	if len(matched) == 0 {
		b.WriteString("- no clear match; start with general internal medicine for an initial assessment\n")
	} else {
		for _, dept := range matched {
			fmt.Fprintf(&b, "- %s: %s\n", dept.Name, dept.Description)
		}
	}

	fmt.Fprintf(&b, "\nDuration: %s\n", duration)
	fmt.Fprintf(&b, "Severity: %s", severity)

	if isLongDuration(duration) {
		b.WriteString("\nAdvice: symptoms have persisted for a while, see a doctor soon")
	}
	if isSevere(severity) {
		b.WriteString("\nCaution: severe symptoms, consider urgent care")
	}
	return b.String()
}

// RecommendDepartment lists the departments matching the described symptoms.
func (a *AppointmentActions) RecommendDepartment(params map[string]string) string {
	symptoms := params["symptoms"]
	if symptoms == "" {
		return missingParam("symptoms")
	}

	matched := a.directory.MatchDepartments(symptoms)
	if len(matched) == 0 {
		slog.Warn("agent.RecommendDepartment: no department matched", "symptoms", symptoms)
		return "No matching department found; start with general internal medicine for an initial assessment."
	}

	var b strings.Builder
	b.WriteString("Recommended departments for your symptoms:\n")
	for _, dept := range matched {
		fmt.Fprintf(&b, "\n- %s: %s\n", dept.Name, dept.Description)
		fmt.Fprintf(&b, "  Location: %s\n", dept.Location)
		fmt.Fprintf(&b, "  Expertise: %s\n", dept.Expertise)
	}
	return b.String()
}

// RecommendDoctor lists the doctors of a department, honoring gender and
// seniority preferences when given.
func (a *AppointmentActions) RecommendDoctor(params map[string]string) string {
	department := params["department"]
	if department == "" {
		return missingParam("department")
	}

	matched := a.directory.Doctors(department, params["prefer_gender"], params["prefer_seniority"])
	if len(matched) == 0 {
		slog.Warn("agent.RecommendDoctor: no doctor matched", "department", department)
		return fmt.Sprintf("No matching doctors found for department: %s", department)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recommended doctors in %s:\n", department)
	for _, doc := range matched {
		fmt.Fprintf(&b, "\n- %s (%s), %s\n", doc.Name, doc.Gender, doc.Title)
		fmt.Fprintf(&b, "  Expertise: %s\n", doc.Expertise)
		fmt.Fprintf(&b, "  Rating: %.1f/5.0\n", doc.Rating)
		fmt.Fprintf(&b, "  Schedule: %s\n", doc.Schedule)
		fmt.Fprintf(&b, "  Doctor ID: %s\n", doc.ID)
	}
	return b.String()
}

// ScheduleAppointment lists the bookable slots of a doctor, honoring date and
// time-of-day preferences when given.
func (a *AppointmentActions) ScheduleAppointment(params map[string]string) string {
	doctorID := params["doctor_id"]
	if doctorID == "" {
		return missingParam("doctor_id")
	}

	slots := a.directory.Slots(doctorID, params["prefer_date"], params["prefer_time"])
	if len(slots) == 0 {
		slog.Warn("agent.ScheduleAppointment: no slot matched", "doctorID", doctorID)
		return "No bookable time slots found for the requested doctor."
	}

	var b strings.Builder
	b.WriteString("Available appointment slots:\n")
	for _, slot := range slots {
		fmt.Fprintf(&b, "\n- Date: %s, time: %s\n", slot.Date, slot.TimeOfDay)
		fmt.Fprintf(&b, "  Doctor: %s\n", slot.DoctorName)
		fmt.Fprintf(&b, "  Department: %s\n", slot.Department)
		fmt.Fprintf(&b, "  Location: %s\n", slot.Location)
		fmt.Fprintf(&b, "  Fee: %d CNY\n", slot.Fee)
		fmt.Fprintf(&b, "  Slot ID: %s\n", slot.ID)
	}
	b.WriteString("\nPick a slot and confirm with its slot ID.")
	return b.String()
}

// ConfirmAppointment books the chosen slot: a confirmed appointment is
// created, checked for collisions with existing bookings and recorded on the
// user's medical records.
func (a *AppointmentActions) ConfirmAppointment(params map[string]string) string {
	for _, required := range []string{"slot_id", "patient_name", "patient_id", "contact"} {
		if params[required] == "" {
			return missingParam(required)
		}
	}

	slot, found := a.directory.FindSlot(params["slot_id"])
	if !found {
		return fmt.Sprintf("Error: unknown slot: %s", params["slot_id"])
	}

	appointment := models.NewAppointment(a.record.UserID)
	appointment.DoctorID = slot.DoctorID
	appointment.DepartmentID = slot.Department
	appointment.Date = slot.Date
	appointment.TimeSlot = slot.TimeOfDay

	for _, existing := range a.appointments {
		if existing.ConflictsWith(appointment) {
			return fmt.Sprintf("Error: conflicting appointment already exists for %s %s", slot.Date, slot.TimeOfDay)
		}
	}

	appointment.Confirm("booking confirmed via consultation")
	a.appointments = append(a.appointments, appointment)

	if err := a.record.AddMedicalRecord(appointment.ToRecord()); err != nil {
		slog.Error("agent.ConfirmAppointment: failed to record appointment", "error", err)
	}

	var b strings.Builder
	b.WriteString("Appointment confirmed!\n\n")
	fmt.Fprintf(&b, "Appointment ID: %s\n", appointment.AppointmentID)
	fmt.Fprintf(&b, "Patient: %s\n", params["patient_name"])
	fmt.Fprintf(&b, "ID number: %s\n", maskPatientID(params["patient_id"]))
	fmt.Fprintf(&b, "Contact: %s\n", params["contact"])
	fmt.Fprintf(&b, "Doctor: %s, %s\n", slot.DoctorName, slot.Department)
	fmt.Fprintf(&b, "Time: %s %s\n", slot.Date, slot.TimeOfDay)
	fmt.Fprintf(&b, "Status: %s\n\n", appointment.Status)
	b.WriteString("Arrive 30 minutes early with your ID and appointment number.\n")
	b.WriteString("To cancel, contact the hospital at least 24 hours in advance.")

	slog.Info("agent.ConfirmAppointment: appointment booked",
		"appointmentID", appointment.AppointmentID, "userID", a.record.UserID, "slotID", slot.ID)
	return b.String()
}

// Appointments returns the bookings made during this agent's lifetime.
func (a *AppointmentActions) Appointments() []*models.Appointment {
	return a.appointments
}

// maskPatientID hides the middle of a national ID number, keeping the first
// six and last four characters. Short values are masked entirely.
func maskPatientID(id string) string {
	if len(id) <= 10 {
		return strings.Repeat("*", len(id))
	}
	return id[:6] + "****" + id[len(id)-4:]
}

func isLongDuration(duration string) bool {
	lowered := strings.ToLower(duration)
	for _, marker := range []string{"周", "月", "年", "慢性", "长", "week", "month", "year", "chronic"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

func isSevere(severity string) bool {
	lowered := strings.ToLower(severity)
	for _, marker := range []string{"严重", "剧烈", "难忍", "severe", "intense", "unbearable"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
