// Package models defines the per-user health record for MedAssist.
//
// A UserRecord stores basic info, categorized health data, visit records and
// the cumulative conversation context for one user. It serializes to and from
// a plain map so any storage backend can round-trip it without loss.
package models

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/CareBridge/MedAssist/internal/util"
)

// Recognized basic info keys. Updates carrying any other key are skipped.
const (
	BasicInfoKeyName      = "name"
	BasicInfoKeyGender    = "gender"
	BasicInfoKeyAge       = "age"
	BasicInfoKeyContact   = "contact"
	BasicInfoKeyAddress   = "address"
	BasicInfoKeyCreatedAt = "created_at"
	BasicInfoKeyUpdatedAt = "updated_at"
)

// Fixed health data categories.
const (
	HealthCategorySymptoms          = "symptoms"
	HealthCategoryMedicalHistory    = "medical_history"
	HealthCategoryAllergies         = "allergies"
	HealthCategoryMedications       = "medications"
	HealthCategoryChronicConditions = "chronic_conditions"
)

// Serialized record keys required by FromMap.
const (
	RecordKeyUserID              = "user_id"
	RecordKeyBasicInfo           = "basic_info"
	RecordKeyHealthData          = "health_data"
	RecordKeyMedicalRecords      = "medical_records"
	RecordKeyConversationContext = "conversation_context"
)

// timestampLayout is RFC 3339 with a fixed-width fraction so stored
// timestamps compare lexicographically in chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

var recognizedBasicInfoKeys = map[string]bool{
	BasicInfoKeyName:      true,
	BasicInfoKeyGender:    true,
	BasicInfoKeyAge:       true,
	BasicInfoKeyContact:   true,
	BasicInfoKeyAddress:   true,
	BasicInfoKeyCreatedAt: true,
	BasicInfoKeyUpdatedAt: true,
}

var healthCategories = []string{
	HealthCategorySymptoms,
	HealthCategoryMedicalHistory,
	HealthCategoryAllergies,
	HealthCategoryMedications,
	HealthCategoryChronicConditions,
}

// Record is a structured entry (symptom, history item, visit) appended to a
// user's health data. Values are opaque; merge semantics are last-write-wins.
type Record map[string]interface{}

// UserRecord stores and manages one user's basic info, health data and visit
// history. The user ID is immutable after creation.
type UserRecord struct {
	UserID              string                 `json:"user_id"`
	BasicInfo           map[string]interface{} `json:"basic_info"`
	HealthData          map[string][]Record    `json:"health_data"`
	MedicalRecords      []Record               `json:"medical_records"`
	ConversationContext map[string]interface{} `json:"conversation_context"`
}

// Timestamp formats t for storage inside records and basic info.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// NewUserRecord creates a record for the given user ID, generating a
// collision-resistant "user_" prefixed ID when none is supplied.
func NewUserRecord(userID string) *UserRecord {
	if userID == "" {
		userID = util.GenerateUserID()
		slog.Debug("UserRecord.NewUserRecord: generated user ID", "userID", userID)
	}

	now := Timestamp(time.Now())
	r := &UserRecord{
		UserID: userID,
		BasicInfo: map[string]interface{}{
			BasicInfoKeyCreatedAt: now,
			BasicInfoKeyUpdatedAt: now,
		},
		HealthData:          make(map[string][]Record, len(healthCategories)),
		MedicalRecords:      []Record{},
		ConversationContext: make(map[string]interface{}),
	}
	for _, category := range healthCategories {
		r.HealthData[category] = []Record{}
	}
	slog.Debug("UserRecord.NewUserRecord: record initialized", "userID", r.UserID)
	return r
}

// UpdateBasicInfo merges recognized fields into the basic info map.
// Unrecognized keys are logged and skipped, never an error. The updated_at
// timestamp is refreshed on every call.
func (r *UserRecord) UpdateBasicInfo(fields map[string]interface{}) error {
	slog.Debug("UserRecord.UpdateBasicInfo: updating basic info", "userID", r.UserID, "fields", len(fields))

	for key, value := range fields {
		if recognizedBasicInfoKeys[key] {
			r.BasicInfo[key] = value
		} else {
			slog.Warn("UserRecord.UpdateBasicInfo: unknown field skipped", "userID", r.UserID, "field", key)
		}
	}

	r.BasicInfo[BasicInfoKeyUpdatedAt] = Timestamp(time.Now())
	return nil
}

// AddSymptom appends a symptom record, assigning reported_at and symptom_id
// defaults when absent. A nil record fails with ErrValidation.
func (r *UserRecord) AddSymptom(symptom Record) error {
	if symptom == nil {
		slog.Error("UserRecord.AddSymptom: nil symptom record", "userID", r.UserID)
		return fmt.Errorf("%w: symptom record must be a structured map", ErrValidation)
	}

	if _, ok := symptom["reported_at"]; !ok {
		symptom["reported_at"] = Timestamp(time.Now())
	}
	if _, ok := symptom["symptom_id"]; !ok {
		symptom["symptom_id"] = util.GenerateSymptomID()
	}

	r.HealthData[HealthCategorySymptoms] = append(r.HealthData[HealthCategorySymptoms], symptom)
	slog.Info("UserRecord.AddSymptom: symptom recorded", "userID", r.UserID, "description", stringField(symptom, "description", "undescribed symptom"))
	return nil
}

// AddMedicalHistory appends a medical history record, assigning diagnosed_at
// and record_id defaults when absent. A nil record fails with ErrValidation.
func (r *UserRecord) AddMedicalHistory(item Record) error {
	if item == nil {
		slog.Error("UserRecord.AddMedicalHistory: nil history record", "userID", r.UserID)
		return fmt.Errorf("%w: medical history record must be a structured map", ErrValidation)
	}

	if _, ok := item["diagnosed_at"]; !ok {
		item["diagnosed_at"] = Timestamp(time.Now())
	}
	if _, ok := item["record_id"]; !ok {
		item["record_id"] = util.GenerateHistoryID()
	}

	r.HealthData[HealthCategoryMedicalHistory] = append(r.HealthData[HealthCategoryMedicalHistory], item)
	slog.Info("UserRecord.AddMedicalHistory: history recorded", "userID", r.UserID, "disease", stringField(item, "disease", "unknown disease"))
	return nil
}

// AddMedicalRecord appends a visit record, assigning created_at and record_id
// defaults when absent. A nil record fails with ErrValidation.
func (r *UserRecord) AddMedicalRecord(record Record) error {
	if record == nil {
		slog.Error("UserRecord.AddMedicalRecord: nil visit record", "userID", r.UserID)
		return fmt.Errorf("%w: visit record must be a structured map", ErrValidation)
	}

	if _, ok := record["record_id"]; !ok {
		record["record_id"] = util.GenerateVisitID()
	}
	if _, ok := record["created_at"]; !ok {
		record["created_at"] = Timestamp(time.Now())
	}

	r.MedicalRecords = append(r.MedicalRecords, record)
	slog.Info("UserRecord.AddMedicalRecord: visit recorded", "userID", r.UserID,
		"department", stringField(record, "department", "unknown department"),
		"doctor", stringField(record, "doctor", "unknown doctor"))
	return nil
}

// UpdateConversationContext merges fields into the conversation context.
// Later keys overwrite earlier ones; there is no deletion operation.
func (r *UserRecord) UpdateConversationContext(fields map[string]interface{}) error {
	if fields == nil {
		slog.Error("UserRecord.UpdateConversationContext: nil context map", "userID", r.UserID)
		return fmt.Errorf("%w: conversation context must be a structured map", ErrValidation)
	}

	for key, value := range fields {
		r.ConversationContext[key] = value
	}
	slog.Debug("UserRecord.UpdateConversationContext: context merged", "userID", r.UserID, "keys", len(fields))
	return nil
}

// ToMap exports the full record as a plain map for persistence.
func (r *UserRecord) ToMap() map[string]interface{} {
	return map[string]interface{}{
		RecordKeyUserID:              r.UserID,
		RecordKeyBasicInfo:           r.BasicInfo,
		RecordKeyHealthData:          r.HealthData,
		RecordKeyMedicalRecords:      r.MedicalRecords,
		RecordKeyConversationContext: r.ConversationContext,
	}
}

// FromMap replaces the in-memory state from a serialized map. All of user_id,
// basic_info, health_data and medical_records must be present; a missing
// conversation_context loads as an empty map.
func (r *UserRecord) FromMap(data map[string]interface{}) error {
	required := []string{RecordKeyUserID, RecordKeyBasicInfo, RecordKeyHealthData, RecordKeyMedicalRecords}
	for _, key := range required {
		if _, ok := data[key]; !ok {
			slog.Error("UserRecord.FromMap: missing required key", "key", key)
			return fmt.Errorf("%w: %s (%w)", ErrValidation, key, ErrMissingRequiredKey)
		}
	}

	userID, ok := data[RecordKeyUserID].(string)
	if !ok || userID == "" {
		slog.Error("UserRecord.FromMap: user_id is not a string")
		return fmt.Errorf("%w: user_id must be a non-empty string", ErrValidation)
	}

	basicInfo, ok := data[RecordKeyBasicInfo].(map[string]interface{})
	if !ok {
		slog.Error("UserRecord.FromMap: basic_info is not a map", "userID", userID)
		return fmt.Errorf("%w: basic_info must be a map", ErrValidation)
	}

	healthData, err := asHealthData(data[RecordKeyHealthData])
	if err != nil {
		slog.Error("UserRecord.FromMap: invalid health_data", "userID", userID, "error", err)
		return err
	}

	medicalRecords, err := asRecordList(data[RecordKeyMedicalRecords])
	if err != nil {
		slog.Error("UserRecord.FromMap: invalid medical_records", "userID", userID, "error", err)
		return err
	}

	context := make(map[string]interface{})
	if raw, ok := data[RecordKeyConversationContext]; ok {
		ctxMap, ok := raw.(map[string]interface{})
		if !ok {
			slog.Error("UserRecord.FromMap: conversation_context is not a map", "userID", userID)
			return fmt.Errorf("%w: conversation_context must be a map", ErrValidation)
		}
		context = ctxMap
	}

	r.UserID = userID
	r.BasicInfo = basicInfo
	r.HealthData = healthData
	r.MedicalRecords = medicalRecords
	r.ConversationContext = context

	slog.Debug("UserRecord.FromMap: record loaded", "userID", r.UserID)
	return nil
}

// asHealthData normalizes a serialized health data value. JSON deserialization
// yields map[string]interface{} with []interface{} entries; direct ToMap output
// keeps the typed shape. Missing categories are initialized empty.
func asHealthData(raw interface{}) (map[string][]Record, error) {
	result := make(map[string][]Record, len(healthCategories))
	for _, category := range healthCategories {
		result[category] = []Record{}
	}

	switch data := raw.(type) {
	case map[string][]Record:
		for category, records := range data {
			result[category] = records
		}
	case map[string]interface{}:
		for category, value := range data {
			records, err := asRecordList(value)
			if err != nil {
				return nil, fmt.Errorf("%w: health_data category %s", ErrValidation, category)
			}
			result[category] = records
		}
	default:
		return nil, fmt.Errorf("%w: health_data must be a map of record lists", ErrValidation)
	}

	return result, nil
}

// asRecordList normalizes a serialized record list. Non-map entries (e.g. a
// bare allergy string) are preserved as records with a single "value" key.
func asRecordList(raw interface{}) ([]Record, error) {
	switch list := raw.(type) {
	case nil:
		return []Record{}, nil
	case []Record:
		return list, nil
	case []interface{}:
		records := make([]Record, 0, len(list))
		for _, entry := range list {
			if m, ok := entry.(map[string]interface{}); ok {
				records = append(records, Record(m))
			} else {
				records = append(records, Record{"value": entry})
			}
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: record list has unsupported type", ErrValidation)
	}
}

// LatestSymptoms returns up to count symptom records ordered by reported_at
// descending. Ties keep original insertion order.
func (r *UserRecord) LatestSymptoms(count int) []Record {
	return latestByTimestamp(r.HealthData[HealthCategorySymptoms], "reported_at", count)
}

// LatestVisits returns up to count visit records ordered by created_at
// descending. Ties keep original insertion order.
func (r *UserRecord) LatestVisits(count int) []Record {
	return latestByTimestamp(r.MedicalRecords, "created_at", count)
}

func latestByTimestamp(records []Record, key string, count int) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return stringField(sorted[i], key, "") > stringField(sorted[j], key, "")
	})

	if count < 0 {
		count = 0
	}
	if count > len(sorted) {
		count = len(sorted)
	}
	return sorted[:count]
}

// Summary renders a deterministic human-readable health summary: header line,
// current symptoms, up to three history entries, allergies and medications.
// Absent sub-fields degrade to "unknown ..." labels.
func (r *UserRecord) Summary() string {
	name := stringField(r.BasicInfo, BasicInfoKeyName, "unknown user")
	gender := stringField(r.BasicInfo, BasicInfoKeyGender, "unknown")
	age := stringField(r.BasicInfo, BasicInfoKeyAge, "unknown")

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s, age %s\n\n", name, gender, age)

	symptoms := r.LatestSymptoms(3)
	if len(symptoms) > 0 {
		b.WriteString("Current symptoms:\n")
		for _, sym := range symptoms {
			desc := stringField(sym, "description", "undescribed symptom")
			duration := stringField(sym, "duration", "unknown")
			severity := stringField(sym, "severity", "unknown")
			fmt.Fprintf(&b, "- %s, duration %s, severity: %s\n", desc, duration, severity)
		}
	} else {
		b.WriteString("No symptoms on record.\n")
	}

	history := r.HealthData[HealthCategoryMedicalHistory]
	if len(history) > 0 {
		b.WriteString("\nMedical history:\n")
		if len(history) > 3 {
			history = history[:3]
		}
		for _, item := range history {
			disease := stringField(item, "disease", "unknown disease")
			diagnosedAt := stringField(item, "diagnosed_at", "unknown time")
			fmt.Fprintf(&b, "- %s (%s)\n", disease, diagnosedAt)
		}
	}

	allergies := r.HealthData[HealthCategoryAllergies]
	if len(allergies) > 0 {
		b.WriteString("\nAllergies:\n")
		for _, allergy := range allergies {
			if value, ok := allergy["value"]; ok && len(allergy) == 1 {
				fmt.Fprintf(&b, "- %v\n", value)
				continue
			}
			allergen := stringField(allergy, "allergen", "unknown allergen")
			reaction := stringField(allergy, "reaction", "unknown reaction")
			fmt.Fprintf(&b, "- %s: %s\n", allergen, reaction)
		}
	}

	medications := r.HealthData[HealthCategoryMedications]
	if len(medications) > 0 {
		b.WriteString("\nCurrent medications:\n")
		for _, med := range medications {
			if value, ok := med["value"]; ok && len(med) == 1 {
				fmt.Fprintf(&b, "- %v\n", value)
				continue
			}
			medName := stringField(med, "name", "unknown medication")
			dosage := stringField(med, "dosage", "unknown dosage")
			frequency := stringField(med, "frequency", "unknown frequency")
			fmt.Fprintf(&b, "- %s, %s, %s\n", medName, dosage, frequency)
		}
	}

	slog.Debug("UserRecord.Summary: summary rendered", "userID", r.UserID, "symptoms", len(symptoms))
	return b.String()
}

// stringField returns the string value of a map field, or fallback when the
// field is absent, empty or not a string.
func stringField(m map[string]interface{}, key, fallback string) string {
	if value, ok := m[key]; ok {
		if s, ok := value.(string); ok && s != "" {
			return s
		}
		if value != nil {
			if s := fmt.Sprintf("%v", value); s != "" {
				return s
			}
		}
	}
	return fallback
}
