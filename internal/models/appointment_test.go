package models

import (
	"strings"
	"testing"
)

func TestNewAppointmentStartsPending(t *testing.T) {
	a := NewAppointment("user_appt")

	if !strings.HasPrefix(a.AppointmentID, "appt_") {
		t.Errorf("expected appt_ prefix, got %q", a.AppointmentID)
	}
	if a.Status != AppointmentStatusPending {
		t.Errorf("expected pending status, got %q", a.Status)
	}
	if a.Type != AppointmentTypeConsultation {
		t.Errorf("expected consultation type, got %q", a.Type)
	}
	if len(a.StatusHistory) != 1 || a.StatusHistory[0].Status != AppointmentStatusPending {
		t.Errorf("expected creation entry in status history, got %v", a.StatusHistory)
	}
}

func TestAppointmentLifecycleTransitions(t *testing.T) {
	a := NewAppointment("user_appt")

	if !a.Confirm("booked") {
		t.Fatal("expected pending appointment to confirm")
	}
	if a.Status != AppointmentStatusConfirmed {
		t.Errorf("expected confirmed status, got %q", a.Status)
	}
	if a.Confirm("again") {
		t.Error("expected second confirm to be rejected")
	}

	if !a.Complete("visit done") {
		t.Fatal("expected confirmed appointment to complete")
	}
	if a.Cancel("too late") {
		t.Error("expected completed appointment to reject cancel")
	}
	if a.Status != AppointmentStatusCompleted {
		t.Errorf("expected completed status, got %q", a.Status)
	}
	if len(a.StatusHistory) != 3 {
		t.Errorf("expected 3 history entries, got %d", len(a.StatusHistory))
	}
}

func TestAppointmentCancelFromPendingAndConfirmed(t *testing.T) {
	pending := NewAppointment("user_a")
	if !pending.Cancel("changed plans") {
		t.Error("expected pending appointment to cancel")
	}

	confirmed := NewAppointment("user_b")
	confirmed.Confirm("booked")
	if !confirmed.Cancel("changed plans") {
		t.Error("expected confirmed appointment to cancel")
	}
	if confirmed.Complete("visit done") {
		t.Error("expected canceled appointment to reject complete")
	}
}

func TestAppointmentConflictDetection(t *testing.T) {
	first := NewAppointment("user_conf")
	first.DoctorID = "doc_1001"
	first.Date = "2026-09-07"
	first.TimeSlot = "morning"
	first.Confirm("booked")

	sameDoctor := NewAppointment("user_other")
	sameDoctor.DoctorID = "doc_1001"
	sameDoctor.Date = "2026-09-07"
	sameDoctor.TimeSlot = "morning"
	if !first.ConflictsWith(sameDoctor) {
		t.Error("expected conflict for same doctor, date and slot")
	}

	sameUser := NewAppointment("user_conf")
	sameUser.DoctorID = "doc_9999"
	sameUser.Date = "2026-09-07"
	sameUser.TimeSlot = "morning"
	if !first.ConflictsWith(sameUser) {
		t.Error("expected conflict for same user, date and slot")
	}

	otherSlot := NewAppointment("user_conf")
	otherSlot.DoctorID = "doc_1001"
	otherSlot.Date = "2026-09-07"
	otherSlot.TimeSlot = "afternoon"
	if first.ConflictsWith(otherSlot) {
		t.Error("expected no conflict for a different time slot")
	}

	first.Cancel("changed plans")
	if first.ConflictsWith(sameDoctor) {
		t.Error("expected canceled appointment to never conflict")
	}
}

func TestAppointmentSummary(t *testing.T) {
	a := NewAppointment("user_sum")
	a.DoctorID = "doc_1001"
	a.DepartmentID = "Neurology"
	a.Date = "2026-09-07"
	a.TimeSlot = "morning"
	a.SymptomDescription = "recurring headaches"
	a.Confirm("booked")

	summary := a.Summary()
	for _, want := range []string{
		"Appointment ID: " + a.AppointmentID,
		"Scheduled: 2026-09-07 morning",
		"Department: Neurology",
		"Status: confirmed",
		"Reported symptoms: recurring headaches",
		"Latest status change: confirmed",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("expected summary to contain %q, got:\n%s", want, summary)
		}
	}
}

func TestAppointmentSummaryUnscheduledFallbacks(t *testing.T) {
	a := NewAppointment("user_bare")
	summary := a.Summary()
	if !strings.Contains(summary, "Scheduled: unscheduled unscheduled") {
		t.Errorf("expected unscheduled fallbacks, got:\n%s", summary)
	}
}

func TestAppointmentToRecord(t *testing.T) {
	a := NewAppointment("user_rec")
	a.DoctorID = "doc_2001"
	a.Date = "2026-09-07"
	a.Confirm("booked")

	record := a.ToRecord()
	if record["record_type"] != "appointment" {
		t.Errorf("expected appointment record type, got %v", record["record_type"])
	}
	if record["appointment_id"] != a.AppointmentID {
		t.Errorf("expected appointment id carried over, got %v", record["appointment_id"])
	}
	if record["status"] != AppointmentStatusConfirmed {
		t.Errorf("expected confirmed status, got %v", record["status"])
	}
}
