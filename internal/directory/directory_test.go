package directory

import "testing"

func TestMatchDepartmentsByKeyword(t *testing.T) {
	s := NewService()

	cases := []struct {
		symptoms string
		want     string
	}{
		{"我头痛三天了", "Neurology"},
		{"persistent headache", "Neurology"},
		{"胃痛和消化不良", "Gastroenterology"},
		{"皮肤很痒", "Dermatology"},
		{"咳嗽不停", "Respiratory Medicine"},
		{"胸闷心悸", "Cardiology"},
	}
	for _, c := range cases {
		matched := s.MatchDepartments(c.symptoms)
		if len(matched) == 0 {
			t.Errorf("expected a match for %q, got none", c.symptoms)
			continue
		}
		if matched[0].Name != c.want {
			t.Errorf("expected %q for %q, got %q", c.want, c.symptoms, matched[0].Name)
		}
	}
}

func TestMatchDepartmentsNoMatch(t *testing.T) {
	s := NewService()
	if matched := s.MatchDepartments("随便问问"); len(matched) != 0 {
		t.Errorf("expected no match, got %d departments", len(matched))
	}
}

func TestDoctorsByDepartment(t *testing.T) {
	s := NewService()

	doctors := s.Doctors("Neurology", "", "")
	if len(doctors) != 2 {
		t.Fatalf("expected 2 neurology doctors, got %d", len(doctors))
	}

	// Department matches by ID too.
	if byID := s.Doctors("dept_neuro", "", ""); len(byID) != len(doctors) {
		t.Errorf("expected ID lookup to match name lookup, got %d", len(byID))
	}
}

func TestDoctorsPreferenceFilters(t *testing.T) {
	s := NewService()

	female := s.Doctors("Neurology", "female", "")
	if len(female) != 1 || female[0].Name != "Liu Fang" {
		t.Errorf("expected only Liu Fang, got %v", female)
	}

	chiefs := s.Doctors("Neurology", "", "chief physician")
	if len(chiefs) != 1 || chiefs[0].Name != "Chen Wei" {
		t.Errorf("expected only Chen Wei, got %v", chiefs)
	}

	if none := s.Doctors("Neurology", "female", "chief physician"); len(none) != 0 {
		t.Errorf("expected no match for combined filters, got %v", none)
	}
}

func TestSlotsByDoctorAndPreferences(t *testing.T) {
	s := NewService()

	all := s.Slots("doc_1001", "", "")
	if len(all) != 2 {
		t.Fatalf("expected 2 slots for doc_1001, got %d", len(all))
	}

	byDate := s.Slots("doc_1001", "2026-09-07", "")
	if len(byDate) != 1 || byDate[0].ID != "slot_n1" {
		t.Errorf("expected slot_n1 for 2026-09-07, got %v", byDate)
	}

	if none := s.Slots("doc_1001", "", "afternoon"); len(none) != 0 {
		t.Errorf("expected no afternoon slots for doc_1001, got %v", none)
	}
}

func TestFindSlot(t *testing.T) {
	s := NewService()

	slot, found := s.FindSlot("slot_g1")
	if !found {
		t.Fatal("expected slot_g1 to exist")
	}
	if slot.DoctorName != "Zhang Min" || slot.Department != "Gastroenterology" {
		t.Errorf("unexpected slot data: %+v", slot)
	}

	if _, found := s.FindSlot("slot_nope"); found {
		t.Error("expected unknown slot to be absent")
	}
}
