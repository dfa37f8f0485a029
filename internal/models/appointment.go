// Package models defines the appointment booking state for MedAssist.
package models

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/CareBridge/MedAssist/internal/util"
)

// Appointment lifecycle statuses. Pending appointments can be confirmed or
// canceled; confirmed appointments can be canceled or completed. Canceled and
// completed are terminal.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCanceled  = "canceled"
	AppointmentStatusCompleted = "completed"
)

// AppointmentTypeConsultation is the default appointment type.
const AppointmentTypeConsultation = "consultation"

// StatusChange is one entry in an appointment's status history.
type StatusChange struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Remark    string `json:"remark,omitempty"`
}

// Appointment holds one booking with a doctor: the slot, the patient details
// and the status history of the booking.
type Appointment struct {
	AppointmentID      string         `json:"appointment_id"`
	UserID             string         `json:"user_id"`
	DoctorID           string         `json:"doctor_id,omitempty"`
	DepartmentID       string         `json:"department_id,omitempty"`
	Date               string         `json:"date,omitempty"`
	TimeSlot           string         `json:"time_slot,omitempty"`
	SymptomDescription string         `json:"symptom_description,omitempty"`
	Type               string         `json:"appointment_type"`
	Status             string         `json:"status"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          string         `json:"updated_at"`
	StatusHistory      []StatusChange `json:"status_history"`
}

// NewAppointment creates a pending appointment for the user. The appointment
// ID is generated when empty.
func NewAppointment(userID string) *Appointment {
	now := Timestamp(time.Now().UTC())
	a := &Appointment{
		AppointmentID: util.GenerateAppointmentID(),
		UserID:        userID,
		Type:          AppointmentTypeConsultation,
		Status:        AppointmentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	a.addStatusHistory(AppointmentStatusPending, "appointment created")
	slog.Debug("Appointment.NewAppointment: appointment created", "appointmentID", a.AppointmentID, "userID", userID)
	return a
}

func (a *Appointment) addStatusHistory(status, remark string) {
	a.StatusHistory = append(a.StatusHistory, StatusChange{
		Status:    status,
		Timestamp: Timestamp(time.Now().UTC()),
		Remark:    remark,
	})
}

func (a *Appointment) transition(newStatus, remark string) {
	a.Status = newStatus
	a.UpdatedAt = Timestamp(time.Now().UTC())
	a.addStatusHistory(newStatus, remark)
}

// Confirm moves a pending appointment to confirmed. Returns whether the
// transition was applied.
func (a *Appointment) Confirm(remark string) bool {
	if a.Status != AppointmentStatusPending {
		slog.Warn("Appointment.Confirm: only pending appointments can be confirmed", "appointmentID", a.AppointmentID, "status", a.Status)
		return false
	}
	a.transition(AppointmentStatusConfirmed, remark)
	slog.Info("Appointment.Confirm: appointment confirmed", "appointmentID", a.AppointmentID)
	return true
}

// Cancel moves a pending or confirmed appointment to canceled. Returns
// whether the transition was applied.
func (a *Appointment) Cancel(remark string) bool {
	if a.Status != AppointmentStatusPending && a.Status != AppointmentStatusConfirmed {
		slog.Warn("Appointment.Cancel: only pending or confirmed appointments can be canceled", "appointmentID", a.AppointmentID, "status", a.Status)
		return false
	}
	a.transition(AppointmentStatusCanceled, remark)
	slog.Info("Appointment.Cancel: appointment canceled", "appointmentID", a.AppointmentID)
	return true
}

// Complete moves a confirmed appointment to completed. Returns whether the
// transition was applied.
func (a *Appointment) Complete(remark string) bool {
	if a.Status != AppointmentStatusConfirmed {
		slog.Warn("Appointment.Complete: only confirmed appointments can be completed", "appointmentID", a.AppointmentID, "status", a.Status)
		return false
	}
	a.transition(AppointmentStatusCompleted, remark)
	slog.Info("Appointment.Complete: appointment completed", "appointmentID", a.AppointmentID)
	return true
}

// ConflictsWith reports whether this appointment collides with another
// booking. Only pending and confirmed appointments participate; a collision
// is the same date and time slot with either the same doctor or the same user.
func (a *Appointment) ConflictsWith(other *Appointment) bool {
	if a.Status != AppointmentStatusPending && a.Status != AppointmentStatusConfirmed {
		return false
	}
	if a.Date != other.Date || a.TimeSlot != other.TimeSlot {
		return false
	}
	if a.DoctorID != "" && a.DoctorID == other.DoctorID {
		slog.Warn("Appointment.ConflictsWith: doctor already booked for slot", "appointmentID", a.AppointmentID, "doctorID", a.DoctorID)
		return true
	}
	if a.UserID != "" && a.UserID == other.UserID {
		slog.Warn("Appointment.ConflictsWith: user already booked for slot", "appointmentID", a.AppointmentID, "userID", a.UserID)
		return true
	}
	return false
}

// ToRecord converts the appointment into a visit record suitable for the
// user's medical records.
func (a *Appointment) ToRecord() Record {
	return Record{
		"record_type":    "appointment",
		"appointment_id": a.AppointmentID,
		"doctor_id":      a.DoctorID,
		"department_id":  a.DepartmentID,
		"date":           a.Date,
		"time_slot":      a.TimeSlot,
		"status":         a.Status,
	}
}

// Summary renders a deterministic text block describing the appointment.
func (a *Appointment) Summary() string {
	orDefault := func(value string) string {
		if value == "" {
			return "unscheduled"
		}
		return value
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Appointment ID: %s\n", a.AppointmentID)
	fmt.Fprintf(&b, "Scheduled: %s %s\n", orDefault(a.Date), orDefault(a.TimeSlot))
	fmt.Fprintf(&b, "Department: %s\n", orDefault(a.DepartmentID))
	fmt.Fprintf(&b, "Doctor: %s\n", orDefault(a.DoctorID))
	fmt.Fprintf(&b, "Status: %s\n", a.Status)

	if a.SymptomDescription != "" {
		fmt.Fprintf(&b, "\nReported symptoms: %s\n", a.SymptomDescription)
	}
	if len(a.StatusHistory) > 1 {
		latest := a.StatusHistory[len(a.StatusHistory)-1]
		fmt.Fprintf(&b, "\nLatest status change: %s (%s)\n", latest.Status, latest.Timestamp)
		if latest.Remark != "" {
			fmt.Fprintf(&b, "Remark: %s\n", latest.Remark)
		}
	}
	return b.String()
}
