package agent

import (
	"log/slog"
	"strings"
)

// Task types a turn can be routed to. Booking requests go to the appointment
// action menu, everything else to the consultation menu.
const (
	TaskAppointment  = "appointment booking"
	TaskConsultation = "medical consultation"
)

// appointmentKeywords mark a message as a booking request. Lowercase, matched
// as case-insensitive substrings.
var appointmentKeywords = []string{"预约", "挂号", "appointment", "book a", "booking"}

// RouteTask decides which action menu serves the message.
func RouteTask(message string) string {
	lowered := strings.ToLower(message)
	for _, keyword := range appointmentKeywords {
		if strings.Contains(lowered, keyword) {
			slog.Debug("agent.RouteTask: routed to appointment booking", "keyword", keyword)
			return TaskAppointment
		}
	}
	return TaskConsultation
}
