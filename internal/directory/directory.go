// Package directory provides the hospital reference data consulted during
// appointment booking: departments, doctors and bookable time slots.
package directory

import (
	"log/slog"
	"strings"
)

// Department describes one hospital department and the symptom keywords it
// covers.
type Department struct {
	ID              string
	Name            string
	Category        string
	Description     string
	Location        string
	Expertise       string
	SymptomKeywords []string
}

// Doctor describes one doctor attached to a department.
type Doctor struct {
	ID             string
	Name           string
	Gender         string
	Title          string
	DepartmentID   string
	DepartmentName string
	Expertise      string
	Rating         float64
	Schedule       string
}

// Slot is one bookable appointment time slot for a doctor.
type Slot struct {
	ID         string
	DoctorID   string
	DoctorName string
	Department string
	Date       string
	TimeOfDay  string
	Location   string
	Fee        int
}

// Service answers department, doctor and slot queries over a fixed in-memory
// data set.
type Service struct {
	departments []Department
	doctors     []Doctor
	slots       []Slot
}

// NewService creates a directory service seeded with the hospital data set.
func NewService() *Service {
	s := &Service{
		departments: seedDepartments(),
		doctors:     seedDoctors(),
		slots:       seedSlots(),
	}
	slog.Debug("directory.NewService: directory loaded",
		"departments", len(s.departments), "doctors", len(s.doctors), "slots", len(s.slots))
	return s
}

// MatchDepartments returns the departments whose symptom keywords appear in
// the given symptom description, in seed order.
func (s *Service) MatchDepartments(symptoms string) []Department {
	lowered := strings.ToLower(symptoms)
	var matched []Department
	for _, dept := range s.departments {
		for _, keyword := range dept.SymptomKeywords {
			if strings.Contains(lowered, keyword) {
				matched = append(matched, dept)
				break
			}
		}
	}
	slog.Debug("directory.MatchDepartments: match complete", "matched", len(matched))
	return matched
}

// Doctors returns the doctors of a department, optionally filtered by gender
// and title. The department matches by ID or by name, case-insensitive.
func (s *Service) Doctors(department, gender, title string) []Doctor {
	var matched []Doctor
	for _, doc := range s.doctors {
		if !strings.EqualFold(doc.DepartmentID, department) && !strings.EqualFold(doc.DepartmentName, department) {
			continue
		}
		if gender != "" && !strings.EqualFold(doc.Gender, gender) {
			continue
		}
		if title != "" && !strings.EqualFold(doc.Title, title) {
			continue
		}
		matched = append(matched, doc)
	}
	slog.Debug("directory.Doctors: query complete", "department", department, "matched", len(matched))
	return matched
}

// Slots returns the bookable slots of a doctor, optionally filtered by date
// and time of day.
func (s *Service) Slots(doctorID, date, timeOfDay string) []Slot {
	var matched []Slot
	for _, slot := range s.slots {
		if !strings.EqualFold(slot.DoctorID, doctorID) {
			continue
		}
		if date != "" && slot.Date != date {
			continue
		}
		if timeOfDay != "" && !strings.EqualFold(slot.TimeOfDay, timeOfDay) {
			continue
		}
		matched = append(matched, slot)
	}
	slog.Debug("directory.Slots: query complete", "doctorID", doctorID, "matched", len(matched))
	return matched
}

// FindSlot looks up a slot by ID.
func (s *Service) FindSlot(slotID string) (Slot, bool) {
	for _, slot := range s.slots {
		if strings.EqualFold(slot.ID, slotID) {
			return slot, true
		}
	}
	slog.Warn("directory.FindSlot: slot not found", "slotID", slotID)
	return Slot{}, false
}

func seedDepartments() []Department {
	return []Department{
		{
			ID:              "dept_neuro",
			Name:            "Neurology",
			Category:        "internal medicine",
			Description:     "diseases of the nervous system",
			Location:        "Building A, floor 3",
			Expertise:       "headache, migraine, dizziness",
			SymptomKeywords: []string{"头痛", "头晕", "神经", "headache", "migraine", "dizz"},
		},
		{
			ID:              "dept_gastro",
			Name:            "Gastroenterology",
			Category:        "internal medicine",
			Description:     "diseases of the digestive system",
			Location:        "Building A, floor 2",
			Expertise:       "stomach pain, indigestion, diarrhea",
			SymptomKeywords: []string{"胃痛", "腹痛", "消化", "胃", "stomach", "abdominal", "digest", "diarrhea"},
		},
		{
			ID:              "dept_resp",
			Name:            "Respiratory Medicine",
			Category:        "internal medicine",
			Description:     "diseases of the respiratory system",
			Location:        "Building B, floor 1",
			Expertise:       "cough, asthma, pneumonia",
			SymptomKeywords: []string{"咳嗽", "呼吸", "肺", "cough", "breath", "lung"},
		},
		{
			ID:              "dept_derma",
			Name:            "Dermatology",
			Category:        "specialty",
			Description:     "skin conditions",
			Location:        "Building C, floor 2",
			Expertise:       "rash, eczema, itching",
			SymptomKeywords: []string{"皮肤", "痒", "疹", "skin", "rash", "itch"},
		},
		{
			ID:              "dept_cardio",
			Name:            "Cardiology",
			Category:        "internal medicine",
			Description:     "diseases of the heart and circulation",
			Location:        "Building A, floor 4",
			Expertise:       "chest pain, palpitations, hypertension",
			SymptomKeywords: []string{"心脏", "胸闷", "心悸", "血压", "heart", "chest", "palpitation", "blood pressure"},
		},
	}
}

func seedDoctors() []Doctor {
	return []Doctor{
		{ID: "doc_1001", Name: "Chen Wei", Gender: "male", Title: "chief physician", DepartmentID: "dept_neuro", DepartmentName: "Neurology", Expertise: "migraine and chronic headache", Rating: 4.8, Schedule: "Mon/Wed/Fri morning"},
		{ID: "doc_1002", Name: "Liu Fang", Gender: "female", Title: "attending physician", DepartmentID: "dept_neuro", DepartmentName: "Neurology", Expertise: "dizziness and sleep disorders", Rating: 4.6, Schedule: "Tue/Thu afternoon"},
		{ID: "doc_2001", Name: "Zhang Min", Gender: "female", Title: "chief physician", DepartmentID: "dept_gastro", DepartmentName: "Gastroenterology", Expertise: "gastritis and functional dyspepsia", Rating: 4.9, Schedule: "Mon/Tue morning"},
		{ID: "doc_3001", Name: "Wang Lei", Gender: "male", Title: "associate chief physician", DepartmentID: "dept_resp", DepartmentName: "Respiratory Medicine", Expertise: "chronic cough and asthma", Rating: 4.5, Schedule: "Wed/Fri afternoon"},
		{ID: "doc_4001", Name: "Zhao Jing", Gender: "female", Title: "attending physician", DepartmentID: "dept_derma", DepartmentName: "Dermatology", Expertise: "eczema and allergic rashes", Rating: 4.7, Schedule: "Mon/Thu morning"},
		{ID: "doc_5001", Name: "Sun Qiang", Gender: "male", Title: "chief physician", DepartmentID: "dept_cardio", DepartmentName: "Cardiology", Expertise: "hypertension and arrhythmia", Rating: 4.8, Schedule: "Tue/Fri morning"},
	}
}

func seedSlots() []Slot {
	return []Slot{
		{ID: "slot_n1", DoctorID: "doc_1001", DoctorName: "Chen Wei", Department: "Neurology", Date: "2026-09-07", TimeOfDay: "morning", Location: "Building A, floor 3, room 302", Fee: 50},
		{ID: "slot_n2", DoctorID: "doc_1001", DoctorName: "Chen Wei", Department: "Neurology", Date: "2026-09-09", TimeOfDay: "morning", Location: "Building A, floor 3, room 302", Fee: 50},
		{ID: "slot_n3", DoctorID: "doc_1002", DoctorName: "Liu Fang", Department: "Neurology", Date: "2026-09-08", TimeOfDay: "afternoon", Location: "Building A, floor 3, room 305", Fee: 30},
		{ID: "slot_g1", DoctorID: "doc_2001", DoctorName: "Zhang Min", Department: "Gastroenterology", Date: "2026-09-07", TimeOfDay: "morning", Location: "Building A, floor 2, room 201", Fee: 50},
		{ID: "slot_r1", DoctorID: "doc_3001", DoctorName: "Wang Lei", Department: "Respiratory Medicine", Date: "2026-09-09", TimeOfDay: "afternoon", Location: "Building B, floor 1, room 103", Fee: 40},
		{ID: "slot_d1", DoctorID: "doc_4001", DoctorName: "Zhao Jing", Department: "Dermatology", Date: "2026-09-10", TimeOfDay: "morning", Location: "Building C, floor 2, room 210", Fee: 30},
		{ID: "slot_c1", DoctorID: "doc_5001", DoctorName: "Sun Qiang", Department: "Cardiology", Date: "2026-09-08", TimeOfDay: "morning", Location: "Building A, floor 4, room 401", Fee: 60},
	}
}
