// Package util provides small helpers shared across MedAssist components.
package util

import (
	"math/rand"
	"strings"
)

// GenerateRandomHex generates a random hexadecimal string of the specified length.
// Uses math/rand/v2; ids are probabilistically unique, no global coordination.
func GenerateRandomHex(length int) string {
	if length <= 0 {
		return ""
	}

	const hexChars = "0123456789abcdef"
	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		builder.WriteByte(hexChars[rand.Intn(16)])
	}

	return builder.String()
}

// GenerateRandomID generates a random ID in the format "{prefix}{hex_string}".
func GenerateRandomID(prefix string, hexLength int) string {
	return prefix + GenerateRandomHex(hexLength)
}

// GenerateUserID generates a unique user ID with "user_" prefix.
func GenerateUserID() string {
	return GenerateRandomID("user_", 8)
}

// GenerateSymptomID generates a unique symptom record ID with "sym_" prefix.
func GenerateSymptomID() string {
	return GenerateRandomID("sym_", 6)
}

// GenerateHistoryID generates a unique medical history record ID with "his_" prefix.
func GenerateHistoryID() string {
	return GenerateRandomID("his_", 6)
}

// GenerateVisitID generates a unique visit record ID with "rec_" prefix.
func GenerateVisitID() string {
	return GenerateRandomID("rec_", 6)
}

// GenerateAppointmentID generates a unique appointment ID with "appt_" prefix.
func GenerateAppointmentID() string {
	return GenerateRandomID("appt_", 8)
}
